package botapi

// Event is one inbound update. The set of variants is closed: TextMessage,
// CallbackQuery, ShippingQuery, PreCheckoutQuery and UnsupportedEvent for
// anything else the platform delivers.
type Event interface {
	event()
}

type User struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
}

// DisplayName renders "First Last (@username)", skipping empty parts.
func (u User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	if u.Username != "" {
		name += " (@" + u.Username + ")"
	}
	return name
}

type TextMessage struct {
	ChatID    int64
	MessageID int
	From      User
	Text      string
	Payment   PaymentOutcome
}

type CallbackQuery struct {
	ID        string
	Token     string
	ChatID    int64
	MessageID int
	From      User
}

type ShippingQuery struct {
	ID      string
	From    User
	Payload string
}

type PreCheckoutQuery struct {
	ID          string
	From        User
	Currency    string
	TotalAmount int
	Payload     string
}

type UnsupportedEvent struct {
	UpdateID int
	Kind     string
}

func (*TextMessage) event()      {}
func (*CallbackQuery) event()    {}
func (*ShippingQuery) event()    {}
func (*PreCheckoutQuery) event() {}
func (*UnsupportedEvent) event() {}

// PaymentOutcome is attached to a TextMessage when the platform reports a
// settled payment or refund. Nil for ordinary messages.
type PaymentOutcome interface {
	paymentOutcome()
}

type SuccessfulPayment struct {
	Currency                string
	TotalAmount             int
	Payload                 string
	TelegramPaymentChargeID string
	ProviderPaymentChargeID string
}

type RefundedPayment struct {
	Currency                string
	TotalAmount             int
	Payload                 string
	TelegramPaymentChargeID string
}

func (*SuccessfulPayment) paymentOutcome() {}
func (*RefundedPayment) paymentOutcome()   {}
