package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/josh-kwaku/payments-engine/internal/domain"
	"github.com/josh-kwaku/payments-engine/internal/ledger"
	"github.com/josh-kwaku/payments-engine/internal/logging"
)

type eventSource interface {
	Next(ctx context.Context) (domain.Event, error)
}

type eventProcessor interface {
	Process(ev domain.Event) error
	Stats() ledger.Stats
}

// Processor drains an event source into the ledger, one event at a time.
type Processor struct {
	source eventSource
	engine eventProcessor
}

func NewProcessor(source eventSource, engine eventProcessor) *Processor {
	return &Processor{source: source, engine: engine}
}

// Run returns once the source is exhausted. A read failure or cancellation
// aborts the run; rejected events are only logged.
func (p *Processor) Run(ctx context.Context) (ledger.Stats, error) {
	log := logging.FromContext(ctx)
	log.Info("processing started")

	for {
		if err := ctx.Err(); err != nil {
			return p.engine.Stats(), fmt.Errorf("Run: %w", err)
		}

		ev, err := p.source.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return p.engine.Stats(), fmt.Errorf("Run: read input: %w", err)
		}

		if err := p.engine.Process(ev); err != nil {
			log.Warn("event rejected",
				"kind", ev.Kind,
				"tx", ev.Tx,
				"client", ev.Client,
				"error", err,
			)
		}
	}

	stats := p.engine.Stats()
	log.Info("processing finished",
		"processed", stats.Processed,
		"applied", stats.Applied,
		"rejected", stats.RejectedTotal(),
	)
	for reason, n := range stats.Rejected {
		log.Debug("rejections", "reason", reason, "count", n)
	}
	return stats, nil
}
