// Package serial provides the single execution context that all logger and
// retention state mutation runs on. One goroutine drains a job channel, so
// the file handle, current-file pointer and timer state never need locks.
package serial

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/raoulx24/log-roller/internal/logging"
)

// Queue executes submitted functions one at a time, in submission order,
// on a dedicated goroutine.
type Queue struct {
	jobs    chan func()
	done    chan struct{}
	drained chan struct{}
	gid     atomic.Int64
	closing sync.Once
	log     logging.Logger
}

// New creates a queue and starts its processing goroutine.
func New(log logging.Logger) *Queue {
	if log == nil {
		log = logging.Nop()
	}
	q := &Queue{
		jobs:    make(chan func(), 1024),
		done:    make(chan struct{}),
		drained: make(chan struct{}),
		log:     log,
	}
	go q.run()
	return q
}

// Async submits fn for execution and returns immediately. Jobs submitted
// after Close may be dropped.
func (q *Queue) Async(fn func()) {
	select {
	case <-q.done:
	case q.jobs <- fn:
	}
}

// Sync executes fn on the queue and blocks until it completes. When the
// caller is already the queue goroutine, fn runs inline; a round trip there
// would deadlock against the very job being executed.
func (q *Queue) Sync(fn func()) {
	if q.gid.Load() == goid() {
		fn()
		return
	}

	ran := make(chan struct{})
	q.Async(func() {
		defer close(ran)
		fn()
	})

	select {
	case <-ran:
	case <-q.drained:
	}
}

// Close stops the queue after draining jobs already submitted. It blocks
// until the processing goroutine has exited.
func (q *Queue) Close() {
	q.closing.Do(func() {
		close(q.done)
	})
	<-q.drained
}

func (q *Queue) run() {
	q.gid.Store(goid())
	defer close(q.drained)

	for {
		select {
		case fn := <-q.jobs:
			q.exec(fn)
		case <-q.done:
			for {
				select {
				case fn := <-q.jobs:
					q.exec(fn)
				default:
					return
				}
			}
		}
	}
}

func (q *Queue) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			q.log.Error("job panic", "panic", r)
		}
	}()
	fn()
}

// goid parses the current goroutine id from the runtime stack header
// ("goroutine 123 [running]:"). Only used to detect re-entrant Sync calls.
func goid() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := strings.Fields(string(buf[:n]))
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return 0
	}
	return id
}
