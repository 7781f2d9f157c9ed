package source

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/josh-kwaku/payments-engine/internal/domain"
	"github.com/josh-kwaku/payments-engine/internal/logging"
)

const defaultPageSize = 500

type eventLister interface {
	ListAfter(ctx context.Context, afterSeq int64, limit int) ([]domain.StoredEvent, error)
}

// Postgres pages through the ledger_events table in seq order.
type Postgres struct {
	events   eventLister
	pageSize int
	page     []domain.StoredEvent
	pos      int
	lastSeq  int64
	drained  bool
	skipped  int
}

func NewPostgres(events eventLister, pageSize int) *Postgres {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Postgres{events: events, pageSize: pageSize}
}

func (s *Postgres) Next(ctx context.Context) (domain.Event, error) {
	log := logging.FromContext(ctx)

	for {
		if err := ctx.Err(); err != nil {
			return domain.Event{}, err
		}

		if s.pos >= len(s.page) {
			if s.drained {
				return domain.Event{}, io.EOF
			}
			if err := s.fetch(ctx); err != nil {
				return domain.Event{}, err
			}
			continue
		}

		stored := s.page[s.pos]
		s.pos++

		amount := ""
		if stored.Amount != nil {
			amount = *stored.Amount
		}
		ev, err := newRow(
			stored.Kind,
			strconv.FormatInt(stored.Client, 10),
			strconv.FormatInt(stored.Tx, 10),
			amount,
		).event()
		if err != nil {
			s.skipped++
			log.Warn("skipping invalid event row", "seq", stored.Seq, "error", err)
			continue
		}
		return ev, nil
	}
}

func (s *Postgres) Skipped() int {
	return s.skipped
}

func (s *Postgres) fetch(ctx context.Context) error {
	page, err := s.events.ListAfter(ctx, s.lastSeq, s.pageSize)
	if err != nil {
		return fmt.Errorf("Next: %w", err)
	}
	if len(page) < s.pageSize {
		s.drained = true
	}
	if len(page) > 0 {
		s.lastSeq = page[len(page)-1].Seq
	}
	s.page = page
	s.pos = 0
	return nil
}
