// Package source reads ledger events from external inputs. Rows that
// cannot be turned into a valid event are logged and skipped; only
// failures of the underlying input are returned as errors.
package source

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/josh-kwaku/payments-engine/internal/domain"
)

var ErrMalformedRow = errors.New("malformed row")

// Source yields events in input order and returns io.EOF once drained.
type Source interface {
	Next(ctx context.Context) (domain.Event, error)
}

var validate = validator.New()

type row struct {
	Kind   string `validate:"required,oneof=deposit withdrawal dispute resolve chargeback"`
	Client string `validate:"required,number"`
	Tx     string `validate:"required,number"`
	Amount string `validate:"required_if=Kind deposit,required_if=Kind withdrawal"`
}

func newRow(kind, client, tx, amount string) row {
	return row{
		Kind:   strings.ToLower(strings.TrimSpace(kind)),
		Client: strings.TrimSpace(client),
		Tx:     strings.TrimSpace(tx),
		Amount: strings.TrimSpace(amount),
	}
}

func (r row) event() (domain.Event, error) {
	if err := validate.Struct(r); err != nil {
		return domain.Event{}, fmt.Errorf("%w: %v", ErrMalformedRow, err)
	}

	kind, err := domain.ParseKind(r.Kind)
	if err != nil {
		return domain.Event{}, fmt.Errorf("%w: %v", ErrMalformedRow, err)
	}
	client, err := strconv.ParseUint(r.Client, 10, 16)
	if err != nil {
		return domain.Event{}, fmt.Errorf("%w: client %q: %v", ErrMalformedRow, r.Client, err)
	}
	tx, err := strconv.ParseUint(r.Tx, 10, 32)
	if err != nil {
		return domain.Event{}, fmt.Errorf("%w: tx %q: %v", ErrMalformedRow, r.Tx, err)
	}

	ev := domain.Event{Kind: kind, Tx: domain.TxID(tx), Client: domain.ClientID(client)}
	if kind.CarriesAmount() {
		amount, err := domain.ParseAmount(r.Amount)
		if err != nil {
			return domain.Event{}, fmt.Errorf("%w: %v", ErrMalformedRow, err)
		}
		ev.Amount = amount
	}
	return ev, nil
}
