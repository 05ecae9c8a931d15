package constants

const (
	MsgGreeting   = "Hello, %s"
	MsgMenuPrompt = "What would you like to do?"

	MsgSendingInvoice           = "Sending invoice..."
	MsgCreatingInvoiceLink      = "Creating invoice link..."
	MsgSendingStarsInvoice      = "Sending Telegram Stars invoice..."
	MsgCreatingStarsInvoiceLink = "Creating Telegram Stars invoice link..."
	MsgProcessingRefund         = "Processing refund..."
	MsgFetchingStarBalance      = "Fetching star balance..."
	MsgFetchingNonRefunded      = "Fetching non-refunded transactions..."

	MsgInvoiceLink      = "Your invoice link: %s"
	MsgStarsInvoiceLink = "Your invoice link in stars: %s"
	MsgStarBalance      = "Your star balance: %d stars"
	MsgRefundProcessed  = "Refund processed for transaction %s"
	MsgNothingToRefund  = "No transaction found to refund"
	MsgNoNonRefunded    = "No non-refunded transactions found."
	MsgNonRefundedTitle = "Non-refunded transactions:\n\n"
)

const (
	LabelViaProvider   = "Pay via provider"
	LabelInvoiceLink   = "Pay via invoice link"
	LabelTelegramStars = "Pay by Telegram Stars"
	LabelStarsLink     = "Pay by Telegram Stars via invoice link"
	LabelRefundRecent  = "Refund recent transaction"
	LabelStarBalance   = "Get star balance"
	LabelNonRefunded   = "Get non-refunded transactions"
)

// TransactionDateLayout renders transaction dates in local time.
const TransactionDateLayout = "2006-01-02 15:04:05"
