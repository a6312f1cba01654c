// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package importer

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Log is a logger customised for the import tool output.
// In particular, it attaches the time elapsed since its creation to every message.
type Log struct {
	start  time.Time
	logger zerolog.Logger
}

// NewLog creates a new logger writing to the given zerolog logger.
func NewLog(logger zerolog.Logger) *Log {
	return &Log{start: time.Now(), logger: logger}
}

// Print logs a message that includes the time elapsed since the start of the import.
func (l *Log) Print(msg string) {
	l.logger.Info().Str("elapsed", l.elapsed()).Msg(msg)
}

// Printf logs a formatted message that includes the time elapsed since the start of the import.
func (l *Log) Printf(format string, v ...any) {
	l.Print(fmt.Sprintf(format, v...))
}

// Warn logs a recoverable problem, e.g. a record that was skipped.
func (l *Log) Warn(err error, msg string) {
	l.logger.Warn().Str("elapsed", l.elapsed()).Err(err).Msg(msg)
}

func (l *Log) elapsed() string {
	t := uint64(time.Since(l.start).Seconds())
	return fmt.Sprintf("%4d:%02d", t/60, t%60)
}

// ProgressLogger is a logger that tracks the progress of a task.
// It logs the progress at regular intervals configured when creating this logger.
type ProgressLogger struct {
	log            *Log
	start          time.Time
	format         string
	window         int
	counter, steps int
}

// NewProgressTracker creates a new ProgressLogger. The format receives the
// number of processed items and the rate in items per second.
func (l *Log) NewProgressTracker(format string, window int) *ProgressLogger {
	return &ProgressLogger{log: l, start: time.Now(), format: format, window: window}
}

// Step increments the progress counter by the given number of steps.
// If the counter reaches the window size, the progress is logged.
func (p *ProgressLogger) Step(increment int) {
	p.counter += increment
	p.steps += increment

	if p.steps >= p.window {
		now := time.Now()

		count := p.counter / p.window * p.window // round down to the nearest window size
		p.log.Printf(p.format, count, float64(p.steps)/now.Sub(p.start).Seconds())

		p.steps = 0
		p.start = now
	}
}

// GetCounter returns the current value of the progress counter.
func (p *ProgressLogger) GetCounter() int {
	return p.counter
}
