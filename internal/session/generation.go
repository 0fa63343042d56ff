package session

import "sync/atomic"

// Generations tags asynchronous loads. Each read takes a ticket from Next;
// when it completes, only the ticket from the latest Next may commit, so a
// slow earlier read cannot overwrite a faster later one.
type Generations struct {
	n atomic.Uint64
}

// Next returns a fresh ticket, invalidating all earlier ones.
func (g *Generations) Next() uint64 {
	return g.n.Add(1)
}

// IsCurrent reports whether ticket is the most recent one.
func (g *Generations) IsCurrent(ticket uint64) bool {
	return g.n.Load() == ticket
}
