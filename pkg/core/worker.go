package core

import (
	"github.com/google/uuid"
)

// Progress is one best-effort progress notification from a worker.
type Progress struct {
	JobID    uuid.UUID
	Fraction float64
	Phase    string
}

// Result is the terminal message of a worker job. Text carries the produced
// artifact for derivations; Report is set for corrections batches.
type Result struct {
	JobID  uuid.UUID
	Text   string
	Report Report
	Err    error
}

// Job is a long operation running on a worker goroutine. Exactly one Result
// is delivered and then both channels are closed. Progress delivery is
// best-effort: notifications are dropped when the consumer is not keeping
// up, and there is no cancellation.
type Job struct {
	ID       uuid.UUID
	Progress <-chan Progress
	Result   <-chan Result
}

const progressBuffer = 16

// DeriveAsync runs the derivation pipeline on a worker goroutine. The
// worker reads its own index snapshot; results come back over the job's
// channels, never by shared mutation.
func (s *Session) DeriveAsync(filter string, leafOnly bool) (*Job, error) {
	if !s.Loaded() {
		return nil, notLoadedErr()
	}

	job, progressCh, resultCh := newJob()
	go func() {
		defer close(progressCh)
		defer close(resultCh)
		text, err := s.Derive(filter, leafOnly, notifier(job.ID, progressCh))
		resultCh <- Result{JobID: job.ID, Text: text, Err: err}
	}()
	return job, nil
}

// ApplyCorrectionsAsync runs a corrections batch on a worker goroutine. The
// busy check happens up front so an overlapping mutation fails fast at call
// time instead of inside the worker.
func (s *Session) ApplyCorrectionsAsync(correctionsText, intermediateText string) (*Job, error) {
	if s.busy.Load() {
		return nil, ErrBusy
	}
	if !s.Loaded() {
		return nil, notLoadedErr()
	}

	job, progressCh, resultCh := newJob()
	go func() {
		defer close(progressCh)
		defer close(resultCh)
		report, err := s.ApplyCorrections(correctionsText, intermediateText, notifier(job.ID, progressCh))
		resultCh <- Result{JobID: job.ID, Report: report, Err: err}
	}()
	return job, nil
}

func newJob() (*Job, chan Progress, chan Result) {
	id := uuid.New()
	progressCh := make(chan Progress, progressBuffer)
	resultCh := make(chan Result, 1)
	return &Job{ID: id, Progress: progressCh, Result: resultCh}, progressCh, resultCh
}

// notifier adapts a progress channel into a ProgressFunc with non-blocking
// sends, so a torn-down consumer never stalls the worker.
func notifier(id uuid.UUID, ch chan Progress) ProgressFunc {
	return func(fraction float64, phase string) {
		select {
		case ch <- Progress{JobID: id, Fraction: fraction, Phase: phase}:
		default:
		}
	}
}
