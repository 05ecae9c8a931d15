package constants

const (
	ErrCodeEditFailed        = "EDIT_FAILED"
	ErrCodeSendFailed        = "SEND_FAILED"
	ErrCodeInvoiceFailed     = "INVOICE_FAILED"
	ErrCodeInvoiceLinkFailed = "INVOICE_LINK_FAILED"
	ErrCodeRefundFailed      = "REFUND_FAILED"
	ErrCodeBalanceFailed     = "BALANCE_FAILED"
	ErrCodeLedgerFailed      = "LEDGER_FAILED"
	ErrCodeAnswerFailed      = "ANSWER_FAILED"
	ErrCodePublishFailed     = "PUBLISH_FAILED"
	ErrCodeDatabase          = "DATABASE_ERROR"
)
