package checkout

import "time"

type CheckoutStatus string

const (
	CheckoutStatusStarted   CheckoutStatus = "started"
	CheckoutStatusSuccess   CheckoutStatus = "success"
	CheckoutStatusCancelled CheckoutStatus = "cancelled"
)

type CheckoutSession struct {
	UID           string
	Username      string
	SessionID     string
	AmountInCents int64
	Currency      string
	CreatedAt     time.Time
	Status        CheckoutStatus
}

type CheckoutResponse struct {
	URL string `json:"url"`
}
