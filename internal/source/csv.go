package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/josh-kwaku/payments-engine/internal/domain"
	"github.com/josh-kwaku/payments-engine/internal/logging"
)

var ErrInvalidHeader = errors.New("invalid csv header")

var requiredColumns = []string{"type", "client", "tx"}

// CSV reads events from comma-separated text with a header naming the
// type, client, tx and (optional per row) amount columns.
type CSV struct {
	r       *csv.Reader
	cols    map[string]int
	skipped int
}

func NewCSV(r io.Reader) (*CSV, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("NewCSV: empty input: %w", ErrInvalidHeader)
		}
		return nil, fmt.Errorf("NewCSV: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("NewCSV: missing column %q: %w", name, ErrInvalidHeader)
		}
	}

	return &CSV{r: cr, cols: cols}, nil
}

func (s *CSV) Next(ctx context.Context) (domain.Event, error) {
	log := logging.FromContext(ctx)

	for {
		if err := ctx.Err(); err != nil {
			return domain.Event{}, err
		}

		record, err := s.r.Read()
		if errors.Is(err, io.EOF) {
			return domain.Event{}, io.EOF
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			s.skipped++
			log.Warn("skipping unreadable row", "line", parseErr.Line, "error", err)
			continue
		}
		if err != nil {
			return domain.Event{}, fmt.Errorf("Next: %w", err)
		}

		line, _ := s.r.FieldPos(0)
		ev, err := newRow(
			s.field(record, "type"),
			s.field(record, "client"),
			s.field(record, "tx"),
			s.field(record, "amount"),
		).event()
		if err != nil {
			s.skipped++
			log.Warn("skipping invalid row", "line", line, "error", err)
			continue
		}
		return ev, nil
	}
}

// Skipped is the number of rows dropped so far.
func (s *CSV) Skipped() int {
	return s.skipped
}

func (s *CSV) field(record []string, name string) string {
	i, ok := s.cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}
