package normalize

import (
	"fmt"

	"github.com/pfrederiksen/mat-schedule/internal/blob"
	"github.com/pfrederiksen/mat-schedule/internal/logger"
	"github.com/pfrederiksen/mat-schedule/internal/match"
)

// Outcome describes how a page pipeline run ended
type Outcome string

const (
	OutcomeOK        Outcome = "ok"
	OutcomeNotFound  Outcome = "not_found"
	OutcomeMalformed Outcome = "malformed_payload"
)

// Batch is the ordered output of one pipeline run
type Batch[T any] struct {
	Records []T
	Skipped int
	Outcome Outcome
}

// Count returns the number of records produced
func (b Batch[T]) Count() int {
	return len(b.Records)
}

// Aggregate normalizes rows in order, skipping rows that fail or that keep
// rejects. A failing row never affects the rows after it.
func Aggregate[T any](rows []blob.Row, normalize func(blob.Row) (T, error), keep func(T) bool) Batch[T] {
	batch := Batch[T]{
		Records: make([]T, 0, len(rows)),
		Outcome: OutcomeOK,
	}

	for i, row := range rows {
		rec, err := isolate(normalize, row)
		if err == nil && !keep(rec) {
			err = fmt.Errorf("%w: no identifying fields", ErrMalformedRow)
		}
		if err != nil {
			batch.Skipped++
			logger.Warn("skipping row", logger.Fields{
				"index":  i,
				"fields": len(row),
				"reason": err.Error(),
			})
			continue
		}
		batch.Records = append(batch.Records, rec)
	}

	logger.AddCounter("rows.normalized", int64(len(batch.Records)))
	logger.AddCounter("rows.skipped", int64(batch.Skipped))

	return batch
}

// isolate runs normalize on a single row, converting a panic into ErrMalformedRow
func isolate[T any](normalize func(blob.Row) (T, error), row blob.Row) (rec T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			rec = zero
			err = fmt.Errorf("%w: %v", ErrMalformedRow, r)
		}
	}()
	return normalize(row)
}

// HasIdentity reports whether a record carries a date or an opponent
func HasIdentity(m match.MatchRecord) bool {
	return m.Date != "" || m.Opponent != ""
}

// Page runs the schedule pipeline over a fetched page: locate the data blob,
// parse it, normalize every row and aggregate the results. It never fails;
// pages without data yield an empty batch with a non-OK Outcome.
func (n *Normalizer) Page(raw string) Batch[match.MatchRecord] {
	return runPage(raw, "schedule", n.Row, HasIdentity)
}

func runPage[T any](raw, section string, normalize func(blob.Row) (T, error), keep func(T) bool) Batch[T] {
	empty := Batch[T]{Records: make([]T, 0)}

	payload, err := blob.Extract(raw)
	if err != nil {
		empty.Outcome = OutcomeNotFound
		logger.IncrCounter("blob.not_found")
		logger.Warn("data blob not found", logger.Fields{
			"section": section,
			"reason":  string(OutcomeNotFound),
			"bytes":   len(raw),
		})
		return empty
	}

	rows, err := blob.Parse(payload)
	if err != nil {
		empty.Outcome = OutcomeMalformed
		logger.IncrCounter("blob.malformed")
		logger.Error("data blob could not be parsed", logger.Fields{
			"section": section,
			"reason":  string(OutcomeMalformed),
			"preview": blob.Preview(payload, 200),
		}, err)
		return empty
	}

	batch := Aggregate(rows, normalize, keep)
	logger.Info("normalized data blob", logger.Fields{
		"section": section,
		"rows":    len(rows),
		"records": batch.Count(),
		"skipped": batch.Skipped,
	})
	return batch
}
