package utils

// Coins accepted by the machine, largest first for change making
var Coins = []int{100, 50, 20, 10, 5}

// ValidCoin reports whether coin is one of the accepted denominations
func ValidCoin(coin int) bool {
	for _, c := range Coins {
		if coin == c {
			return true
		}
	}
	return false
}

// MakeChange converts an amount into coins, greedily from the largest
// denomination down. Balances are only ever built from the accepted coins,
// so the greedy split is exact and the returned coins always sum to amount.
func MakeChange(amount int) []int {
	change := []int{}
	remaining := amount
	for _, coin := range Coins {
		for remaining >= coin {
			change = append(change, coin)
			remaining -= coin
		}
	}
	return change
}
