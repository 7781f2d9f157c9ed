package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/josh-kwaku/payments-engine/internal/domain"
	"github.com/josh-kwaku/payments-engine/internal/repository"
)

// SeedEvent appends one row to ledger_events. An empty amount is stored as NULL.
func SeedEvent(t *testing.T, db *sql.DB, kind string, client, tx int64, amount string) domain.StoredEvent {
	t.Helper()

	e := domain.StoredEvent{Kind: kind, Client: client, Tx: tx}
	if amount != "" {
		e.Amount = &amount
	}
	if err := repository.NewEventRepository(db).Create(context.Background(), &e); err != nil {
		t.Fatalf("seed event: %v", err)
	}
	return e
}

func SeedEvents(t *testing.T, db *sql.DB, events ...domain.Event) {
	t.Helper()

	for _, ev := range events {
		amount := ""
		if ev.Kind.CarriesAmount() {
			amount = ev.Amount.String()
		}
		SeedEvent(t, db, string(ev.Kind), int64(ev.Client), int64(ev.Tx), amount)
	}
}
