package domain

import (
	"fmt"
	"strings"
)

type ClientID uint16

type TxID uint32

type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
	KindDispute    Kind = "dispute"
	KindResolve    Kind = "resolve"
	KindChargeback Kind = "chargeback"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindDeposit, KindWithdrawal, KindDispute, KindResolve, KindChargeback:
		return true
	}
	return false
}

// CarriesAmount reports whether events of this kind move money directly.
func (k Kind) CarriesAmount() bool {
	return k == KindDeposit || k == KindWithdrawal
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", fmt.Errorf("ParseKind: %q: %w", s, ErrUnknownKind)
	}
	return k, nil
}

// Event is one validated input record. Amount is only meaningful for
// deposits and withdrawals; dispute-family events always act on the
// originally recorded amount.
type Event struct {
	Kind   Kind
	Tx     TxID
	Client ClientID
	Amount Amount
}

func Deposit(tx TxID, client ClientID, amount Amount) Event {
	return Event{Kind: KindDeposit, Tx: tx, Client: client, Amount: amount}
}

func Withdrawal(tx TxID, client ClientID, amount Amount) Event {
	return Event{Kind: KindWithdrawal, Tx: tx, Client: client, Amount: amount}
}

func Dispute(tx TxID, client ClientID) Event {
	return Event{Kind: KindDispute, Tx: tx, Client: client}
}

func Resolve(tx TxID, client ClientID) Event {
	return Event{Kind: KindResolve, Tx: tx, Client: client}
}

func Chargeback(tx TxID, client ClientID) Event {
	return Event{Kind: KindChargeback, Tx: tx, Client: client}
}

// StoredEvent is a row of the ledger_events table before validation.
type StoredEvent struct {
	Seq    int64
	Kind   string
	Client int64
	Tx     int64
	Amount *string
}
