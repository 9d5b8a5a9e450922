// Package export writes generated telemetry to flat files.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/talgya/playersim/internal/engine"
)

// TimeLayout is the event_datetime column format.
const TimeLayout = "2006-01-02 15:04:05.000"

// Header lists the CSV columns in order.
var Header = []string{
	"event_datetime",
	"event_type",
	"player_id",
	"player_type",
	"session_id",
	"amount",
	"stage_score",
}

// ErrExists is returned by Create when the target exists and overwriting is
// off.
var ErrExists = errors.New("output file exists")

// CSVWriter is an engine.Sink that writes one row per event.
type CSVWriter struct {
	w      *csv.Writer
	closer io.Closer
	rows   int
}

// NewCSVWriter writes the header to w and returns a writer for the rows.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := &CSVWriter{w: csv.NewWriter(w)}
	if err := cw.w.Write(Header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	return cw, nil
}

// Create opens path for writing, adding a .csv extension if it has none.
func Create(path string, overwrite bool) (*CSVWriter, string, error) {
	if filepath.Ext(path) == "" {
		path += ".csv"
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, path, fmt.Errorf("%w: %s", ErrExists, path)
		}
		return nil, path, err
	}
	cw, err := NewCSVWriter(f)
	if err != nil {
		f.Close()
		return nil, path, err
	}
	cw.closer = f
	return cw, path, nil
}

// WriteEvents appends rows and flushes them.
func (c *CSVWriter) WriteEvents(events []engine.Event) error {
	for _, e := range events {
		if err := c.w.Write(record(e)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	c.rows += len(events)
	c.w.Flush()
	return c.w.Error()
}

// Rows returns the number of event rows written.
func (c *CSVWriter) Rows() int {
	return c.rows
}

// Close flushes and closes the underlying file, if Create opened one.
func (c *CSVWriter) Close() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return err
	}
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}

// record leaves fields blank where they do not apply to the event type.
func record(e engine.Event) []string {
	var session, amount, score string
	if e.SessionID != 0 {
		session = strconv.FormatInt(e.SessionID, 10)
	}
	if e.Type == engine.EventPurchase {
		amount = strconv.Itoa(e.Amount)
	}
	if e.Type == engine.EventStageEnd {
		score = strconv.Itoa(e.Score)
	}
	return []string{
		e.Time.Format(TimeLayout),
		string(e.Type),
		e.PlayerID,
		e.PlayerType,
		session,
		amount,
		score,
	}
}
