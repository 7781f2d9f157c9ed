package report

import (
	"cmp"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
	"strconv"

	"github.com/josh-kwaku/payments-engine/internal/domain"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

var ErrUnknownFormat = errors.New("unknown report format")

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatCSV, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("ParseFormat: %q: %w", s, ErrUnknownFormat)
}

var header = []string{"client", "available", "held", "total", "locked"}

type Line struct {
	Client    domain.ClientID `json:"client"`
	Available string          `json:"available"`
	Held      string          `json:"held"`
	Total     string          `json:"total"`
	Locked    bool            `json:"locked"`
}

func Lines(accounts iter.Seq2[domain.ClientID, domain.Account], sorted bool) []Line {
	var lines []Line
	for id, a := range accounts {
		lines = append(lines, Line{
			Client:    id,
			Available: a.Available().String(),
			Held:      a.Held().String(),
			Total:     a.Total().String(),
			Locked:    a.Locked(),
		})
	}
	if sorted {
		slices.SortFunc(lines, func(a, b Line) int { return cmp.Compare(a.Client, b.Client) })
	}
	return lines
}

func Write(w io.Writer, format Format, lines []Line) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, lines)
	case FormatJSON:
		return writeJSON(w, lines)
	default:
		return fmt.Errorf("Write: %q: %w", format, ErrUnknownFormat)
	}
}

func writeCSV(w io.Writer, lines []Line) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writeCSV: %w", err)
	}
	for _, l := range lines {
		err := cw.Write([]string{
			strconv.FormatUint(uint64(l.Client), 10),
			l.Available,
			l.Held,
			l.Total,
			strconv.FormatBool(l.Locked),
		})
		if err != nil {
			return fmt.Errorf("writeCSV: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writeCSV: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(lines); err != nil {
		return fmt.Errorf("writeJSON: %w", err)
	}
	return nil
}
