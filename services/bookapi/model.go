package bookapi

// BookRequest carries the price in major currency units, as submitted
// by the management UI. It is converted to cents once, on write.
type BookRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Cover       string  `json:"cover"`
	Price       float64 `json:"price"`
}
