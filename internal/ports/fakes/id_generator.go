package fakes

import (
	"fmt"
	"sync"
)

// SequentialIDs yields predictable ids ("<prefix>-1", "<prefix>-2", ...).
type SequentialIDs struct {
	Prefix string

	mu   sync.Mutex
	next int
}

func (g *SequentialIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.next++
	prefix := g.Prefix
	if prefix == "" {
		prefix = "id"
	}
	return fmt.Sprintf("%s-%d", prefix, g.next)
}
