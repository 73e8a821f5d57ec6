package roller

import "time"

// Message is one log record handed to the engine: raw text plus the
// timestamp assigned at dispatch.
type Message struct {
	Text string
	Time time.Time
}

// Formatter maps a message to the line written to disk. Returning ok=false
// drops the message. The engine tolerates a nil formatter and writes the
// raw text instead.
type Formatter interface {
	Format(m Message) (line string, ok bool)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc func(m Message) (string, bool)

func (f FormatterFunc) Format(m Message) (string, bool) { return f(m) }
