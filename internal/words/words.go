// Package words supplies the randomized word corpus the drawing rounds
// draw from. The corpus is injectable: built-in list, CSV file, or a
// Postgres table.
package words

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

var (
	ErrEmptyCorpus    = errors.New("word corpus is empty")
	ErrCorpusTooSmall = errors.New("word corpus smaller than the draw size")
)

// DefaultCorpus is the built-in word list used when no external source is
// configured.
var DefaultCorpus = []string{
	"APPLE", "GUITAR", "ELEPHANT", "PIZZA", "BICYCLE", "AIRPLANE", "DRAGON",
	"CHESS", "VOLCANO", "LIGHTHOUSE", "PENGUIN", "SUBMARINE", "EINSTEIN",
	"SKYSCRAPER", "MEDUSA", "FIREWORKS", "ASTRONAUT", "CAVE", "ZEBRA",
	"DIAMOND", "SANDWICH", "WIZARD", "CASTLE",
}

// Provider hands out randomized distinct words. Safe for concurrent use by
// many rooms.
type Provider struct {
	mu    sync.Mutex
	rng   *rand.Rand
	words []string
}

// NewProvider validates the corpus against the configured draw size.
// Undersized corpora are a startup configuration error, never a call-time
// one, so Pick can stay infallible.
func NewProvider(corpus []string, drawSize int) (*Provider, error) {
	cleaned := make([]string, 0, len(corpus))
	seen := make(map[string]bool, len(corpus))
	for _, w := range corpus {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		cleaned = append(cleaned, w)
	}
	if len(cleaned) == 0 {
		return nil, ErrEmptyCorpus
	}
	if drawSize > len(cleaned) {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrCorpusTooSmall, drawSize, len(cleaned))
	}
	return &Provider{
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		words: cleaned,
	}, nil
}

// Pick returns n distinct words drawn without replacement, in randomized
// order. n must not exceed the draw size the provider was validated for.
func (p *Provider) Pick(n int) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx := p.rng.Perm(len(p.words))
	out := make([]string, 0, n)
	for _, i := range idx[:n] {
		out = append(out, p.words[i])
	}
	return out
}

// Size reports the number of distinct words in the corpus.
func (p *Provider) Size() int {
	return len(p.words)
}
