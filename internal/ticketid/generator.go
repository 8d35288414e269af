package ticketid

import (
	"strconv"
	"sync"
	"time"
)

// Prefix precedes the numeric part of every public ticket identifier.
const Prefix = "TCK-"

// Generator issues public ticket identifiers of the form "TCK-<epoch-millis>".
// The numeric part is the current wall-clock millisecond reading, floored at
// one past the previously issued value, so concurrent calls within the same
// millisecond still produce distinct, strictly increasing identifiers.
type Generator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewGenerator returns a generator backed by the system clock.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// Next issues the next ticket identifier.
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return Prefix + strconv.FormatInt(ms, 10)
}
