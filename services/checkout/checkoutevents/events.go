package checkoutevents

const (
	TopicName           = "checkout"
	checkoutStartedName = TopicName + ".started"
)

type CheckoutStarted struct {
	CheckoutUID   string
	Username      string
	AmountInCents int64
	Currency      string
}

func (e CheckoutStarted) GetEventTypeName() string {
	return checkoutStartedName
}

func (e CheckoutStarted) GetAggregateName() string {
	return e.CheckoutUID
}
