package ident

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Generator produces ids for locally created records. Ids are prefixed with a
// per-resource tag (e.g. "patient") so existing stored data keeps its shape.
type Generator interface {
	NewID(prefix string) string
}

// TimestampGenerator builds ids of the form <prefix>-<unix millis>-<6 hex>.
type TimestampGenerator struct {
	now func() time.Time
}

func NewTimestampGenerator() *TimestampGenerator {
	return &TimestampGenerator{now: time.Now}
}

func (g *TimestampGenerator) NewID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("%s-%d-%s", prefix, g.now().UnixMilli(), suffix)
}

// SequenceGenerator builds deterministic ids of the form <prefix>-<n>.
type SequenceGenerator struct {
	mu   sync.Mutex
	next map[string]int
}

func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{next: make(map[string]int)}
}

func (g *SequenceGenerator) NewID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next[prefix]++
	return fmt.Sprintf("%s-%d", prefix, g.next[prefix])
}
