package botapi

const ChatActionTyping = "typing"

// Action is one outbound request to the platform.
type Action interface {
	Method() string
	action()
}

type LabeledPrice struct {
	Label  string
	Amount int
}

type Button struct {
	Text         string
	CallbackData string
}

type Invoice struct {
	Title               string
	Description         string
	Payload             string
	ProviderToken       string
	Currency            string
	Prices              []LabeledPrice
	MaxTipAmount        int
	SuggestedTipAmounts []int
	NeedEmail           bool
	SendEmailToProvider bool
	Flexible            bool
}

type ShippingOption struct {
	ID     string
	Title  string
	Prices []LabeledPrice
}

type ChatAction struct {
	ChatID int64
	Action string
}

type SendText struct {
	ChatID int64
	Text   string
}

type SendKeyboard struct {
	ChatID   int64
	Text     string
	Keyboard [][]Button
}

// EditText replaces the text of a message and drops its inline keyboard.
type EditText struct {
	ChatID    int64
	MessageID int
	Text      string
}

type SendInvoice struct {
	ChatID  int64
	Invoice Invoice
}

type CreateInvoiceLink struct {
	Invoice Invoice
}

type AnswerCallback struct {
	QueryID string
}

type AnswerShipping struct {
	QueryID      string
	OK           bool
	Options      []ShippingOption
	ErrorMessage string
}

type AnswerPreCheckout struct {
	QueryID      string
	OK           bool
	ErrorMessage string
}

type GetStarBalance struct{}

type GetStarTransactions struct {
	Offset int
	Limit  int
}

type RefundStarPayment struct {
	UserID   int64
	ChargeID string
}

func (ChatAction) Method() string          { return "sendChatAction" }
func (SendText) Method() string            { return "sendMessage" }
func (SendKeyboard) Method() string        { return "sendMessage" }
func (EditText) Method() string            { return "editMessageText" }
func (SendInvoice) Method() string         { return "sendInvoice" }
func (CreateInvoiceLink) Method() string   { return "createInvoiceLink" }
func (AnswerCallback) Method() string      { return "answerCallbackQuery" }
func (AnswerShipping) Method() string      { return "answerShippingQuery" }
func (AnswerPreCheckout) Method() string   { return "answerPreCheckoutQuery" }
func (GetStarBalance) Method() string      { return "getMyStarBalance" }
func (GetStarTransactions) Method() string { return "getStarTransactions" }
func (RefundStarPayment) Method() string   { return "refundStarPayment" }

func (ChatAction) action()          {}
func (SendText) action()            {}
func (SendKeyboard) action()        {}
func (EditText) action()            {}
func (SendInvoice) action()         {}
func (CreateInvoiceLink) action()   {}
func (AnswerCallback) action()      {}
func (AnswerShipping) action()      {}
func (AnswerPreCheckout) action()   {}
func (GetStarBalance) action()      {}
func (GetStarTransactions) action() {}
func (RefundStarPayment) action()   {}
