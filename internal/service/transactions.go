package service

import "github.com/Behyna/paymentbot/pkg/botapi"

// RefundableTransactions keeps the user-paid transactions whose id never
// shows up as a payment back to a user. A refund reuses the id of the
// payment it reverses, so those are already refunded. Ledger order is kept
// and the input is not modified.
func RefundableTransactions(ledger []botapi.StarTransaction) []botapi.StarTransaction {
	refunded := make(map[string]struct{})
	for _, tx := range ledger {
		if _, ok := botapi.AsUser(tx.Receiver); ok {
			refunded[tx.ID] = struct{}{}
		}
	}

	out := make([]botapi.StarTransaction, 0, len(ledger))
	for _, tx := range ledger {
		if _, ok := botapi.AsUser(tx.Source); !ok {
			continue
		}
		if _, done := refunded[tx.ID]; done {
			continue
		}
		out = append(out, tx)
	}

	return out
}

// MostRecent picks the transaction with the latest date. On equal dates the
// one later in the ledger wins.
func MostRecent(txs []botapi.StarTransaction) (botapi.StarTransaction, bool) {
	if len(txs) == 0 {
		return botapi.StarTransaction{}, false
	}

	latest := txs[0]
	for _, tx := range txs[1:] {
		if tx.Date >= latest.Date {
			latest = tx
		}
	}

	return latest, true
}
