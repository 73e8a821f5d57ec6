// Package roller implements the rolling file logger engine. It appends
// messages to a single active file and rolls it when a size or age
// threshold is crossed, handing the archived file over to the retention
// manager.
//
// All state lives on the serialized queue injected at construction.
// Producers hand messages off asynchronously and never block; only the
// configuration accessors round-trip through the queue.
package roller

import (
	"os"
	"time"

	"github.com/raoulx24/log-roller/internal/logfile"
	"github.com/raoulx24/log-roller/internal/logging"
	"github.com/raoulx24/log-roller/internal/retention"
	"github.com/raoulx24/log-roller/internal/serial"
)

// Roller is the rolling file logger. Zero or one file is open at a time;
// no file means the next message lazily resolves or creates one.
type Roller struct {
	q   *serial.Queue
	ret *retention.Manager
	log logging.Logger

	formatter Formatter

	maximumFileSize  int64
	rollingFrequency time.Duration

	current  *logfile.Info
	handle   *os.File
	written  int64
	ageTimer *time.Timer

	closed bool
}

// New creates a roller. maximumFileSize in bytes; a rollingFrequency of
// zero disables age-based rolling.
func New(q *serial.Queue, ret *retention.Manager, maximumFileSize int64, rollingFrequency time.Duration, log logging.Logger) *Roller {
	if log == nil {
		log = logging.Nop()
	}
	return &Roller{
		q:                q,
		ret:              ret,
		log:              log,
		maximumFileSize:  maximumFileSize,
		rollingFrequency: rollingFrequency,
	}
}

// Log hands a message to the processing queue and returns immediately.
func (r *Roller) Log(msg Message) {
	r.q.Async(func() { r.append(msg) })
}

// Roll requests an explicit roll of the active file. Asynchronous; the
// next message reopens a fresh file.
func (r *Roller) Roll() {
	r.q.Async(r.roll)
}

// Close flushes and closes the active file and stops the age timer.
// Idempotent. Messages logged after Close are dropped.
func (r *Roller) Close() {
	r.q.Sync(func() {
		if r.closed {
			return
		}
		r.closed = true
		r.stopAgeTimer()
		r.closeHandle()
	})
}

// append runs on the queue: format, write, then check the size threshold.
func (r *Roller) append(msg Message) {
	if r.closed || msg.Text == "" {
		return
	}

	line := msg.Text
	if r.formatter != nil {
		var ok bool
		line, ok = r.formatter.Format(msg)
		if !ok {
			return
		}
	}

	f := r.currentHandle()
	if f == nil {
		// open or create failed; already logged, message dropped
		return
	}

	data := []byte(line)
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	n, err := f.Write(data)
	r.written += int64(n)
	if err != nil {
		r.log.Error("writing log message failed", "file", r.current.Path(), "error", err)
		return
	}

	r.rollDueToSizeIfNeeded()
}

func (r *Roller) closeHandle() {
	if r.handle == nil {
		return
	}
	if err := r.handle.Sync(); err != nil {
		r.log.Error("syncing log file failed", "file", r.current.Path(), "error", err)
	}
	if err := r.handle.Close(); err != nil {
		r.log.Error("closing log file failed", "file", r.current.Path(), "error", err)
	}
	r.handle = nil
	r.current = nil
	r.written = 0
}
