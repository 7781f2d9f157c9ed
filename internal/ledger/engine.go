// Package ledger routes events to client accounts and tracks the
// transactions that later disputes refer to.
package ledger

import (
	"fmt"
	"iter"
	"maps"

	"github.com/josh-kwaku/payments-engine/internal/domain"
)

type record struct {
	client   domain.ClientID
	kind     domain.Kind
	amount   domain.Amount
	disputed bool
}

type Stats struct {
	Processed int
	Applied   int
	Rejected  map[string]int
}

func (s Stats) RejectedTotal() int {
	n := 0
	for _, c := range s.Rejected {
		n += c
	}
	return n
}

// Engine is not safe for concurrent use; events are applied strictly one
// at a time in input order.
type Engine struct {
	accounts   map[domain.ClientID]*domain.Account
	records    map[domain.TxID]*record
	seen       map[domain.TxID]struct{}
	disputable map[domain.Kind]bool
	stats      Stats
}

type Option func(*Engine)

// WithDisputable replaces the set of transaction kinds a dispute may target.
// Only deposits and withdrawals are recorded, so other kinds have no effect.
func WithDisputable(kinds ...domain.Kind) Option {
	return func(e *Engine) {
		e.disputable = make(map[domain.Kind]bool, len(kinds))
		for _, k := range kinds {
			e.disputable[k] = true
		}
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		accounts:   make(map[domain.ClientID]*domain.Account),
		records:    make(map[domain.TxID]*record),
		seen:       make(map[domain.TxID]struct{}),
		disputable: map[domain.Kind]bool{domain.KindDeposit: true},
		stats:      Stats{Rejected: make(map[string]int)},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Process applies a single event. A non-nil error is a rejection: the
// event was dropped and no state changed.
func (e *Engine) Process(ev domain.Event) error {
	e.stats.Processed++

	if err := e.apply(ev); err != nil {
		e.stats.Rejected[err.Error()]++
		return fmt.Errorf("Process: %s tx=%d client=%d: %w", ev.Kind, ev.Tx, ev.Client, err)
	}

	e.stats.Applied++
	return nil
}

func (e *Engine) apply(ev domain.Event) error {
	switch ev.Kind {
	case domain.KindDeposit:
		return e.deposit(ev)
	case domain.KindWithdrawal:
		return e.withdraw(ev)
	case domain.KindDispute:
		return e.dispute(ev)
	case domain.KindResolve:
		return e.settle(ev, (*domain.Account).Resolve)
	case domain.KindChargeback:
		return e.settle(ev, (*domain.Account).Chargeback)
	default:
		return domain.ErrUnknownKind
	}
}

func (e *Engine) deposit(ev domain.Event) error {
	if _, dup := e.seen[ev.Tx]; dup {
		return domain.ErrDuplicateTransaction
	}

	account, exists := e.accounts[ev.Client]
	if !exists {
		account = domain.NewAccount(0)
	}
	if err := account.Deposit(ev.Amount); err != nil {
		return err
	}
	if !exists {
		e.accounts[ev.Client] = account
	}

	e.record(ev)
	return nil
}

func (e *Engine) withdraw(ev domain.Event) error {
	if _, dup := e.seen[ev.Tx]; dup {
		return domain.ErrDuplicateTransaction
	}

	account, ok := e.accounts[ev.Client]
	if !ok {
		return domain.ErrUnknownAccount
	}
	if err := account.Withdraw(ev.Amount); err != nil {
		return err
	}

	e.record(ev)
	return nil
}

func (e *Engine) record(ev domain.Event) {
	e.seen[ev.Tx] = struct{}{}
	e.records[ev.Tx] = &record{
		client: ev.Client,
		kind:   ev.Kind,
		amount: ev.Amount,
	}
}

func (e *Engine) dispute(ev domain.Event) error {
	rec, err := e.lookup(ev)
	if err != nil {
		return err
	}
	if rec.disputed {
		return domain.ErrInvalidDisputeState
	}
	if !e.disputable[rec.kind] {
		return domain.ErrNotDisputable
	}

	if err := e.accounts[rec.client].Dispute(rec.amount); err != nil {
		return err
	}
	rec.disputed = true
	return nil
}

// settle closes an open dispute. Resolve and chargeback differ only in
// what they do to the held funds.
func (e *Engine) settle(ev domain.Event, apply func(*domain.Account, domain.Amount) error) error {
	rec, err := e.lookup(ev)
	if err != nil {
		return err
	}
	if !rec.disputed {
		return domain.ErrInvalidDisputeState
	}

	if err := apply(e.accounts[rec.client], rec.amount); err != nil {
		return err
	}
	delete(e.records, ev.Tx)
	return nil
}

func (e *Engine) lookup(ev domain.Event) (*record, error) {
	rec, ok := e.records[ev.Tx]
	if !ok {
		return nil, domain.ErrUnknownTransaction
	}
	if rec.client != ev.Client {
		return nil, domain.ErrClientMismatch
	}
	return rec, nil
}

// Accounts yields a copy of every known account in unspecified order.
// The sequence may be iterated more than once.
func (e *Engine) Accounts() iter.Seq2[domain.ClientID, domain.Account] {
	return func(yield func(domain.ClientID, domain.Account) bool) {
		for id, account := range e.accounts {
			if !yield(id, *account) {
				return
			}
		}
	}
}

func (e *Engine) Len() int {
	return len(e.accounts)
}

func (e *Engine) Stats() Stats {
	s := e.stats
	s.Rejected = maps.Clone(e.stats.Rejected)
	return s
}
