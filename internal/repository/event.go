package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/josh-kwaku/payments-engine/internal/domain"
)

const eventColumns = `seq, type, client, tx, amount`

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// ListAfter returns up to limit events with seq greater than afterSeq,
// oldest first.
func (r *EventRepository) ListAfter(ctx context.Context, afterSeq int64, limit int) ([]domain.StoredEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM ledger_events
		WHERE seq > $1 ORDER BY seq LIMIT $2`,
		afterSeq, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ListAfter: %w", err)
	}
	defer rows.Close()

	var events []domain.StoredEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("ListAfter: scan: %w", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListAfter: rows: %w", err)
	}
	return events, nil
}

func (r *EventRepository) Create(ctx context.Context, e *domain.StoredEvent) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO ledger_events (type, client, tx, amount)
		VALUES ($1, $2, $3, $4) RETURNING seq`,
		e.Kind, e.Client, e.Tx, e.Amount,
	).Scan(&e.Seq)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func scanEvent(s scanner) (*domain.StoredEvent, error) {
	var e domain.StoredEvent
	err := s.Scan(&e.Seq, &e.Kind, &e.Client, &e.Tx, &e.Amount)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
