package cart

// Key prefix matches what earlier deployments used, so live carts
// survive a rolling upgrade.
const cartKeyPrefix = "cart_user_"

func cartKey(username string) string {
	return cartKeyPrefix + username
}

type TotalResponse struct {
	Total float64 `json:"total"`
}
