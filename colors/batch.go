package colors

import (
	"golang.org/x/sync/errgroup"
)

// RGBAValues is the structured form of a match
type RGBAValues struct {
	R int     `json:"r"`
	G int     `json:"g"`
	B int     `json:"b"`
	A float64 `json:"a"`
}

// MatchResult pairs one input hex string with its match
type MatchResult struct {
	OriginalHex string     `json:"originalHex"`
	RGBA        string     `json:"rgba"`
	RGBAValues  RGBAValues `json:"rgbaValues"`
}

func NewMatchResult(originalHex string, m Match) MatchResult {
	return MatchResult{
		OriginalHex: originalHex,
		RGBA:        m.RGBA(),
		RGBAValues:  RGBAValues{R: m.R, G: m.G, B: m.B, A: m.Alpha()},
	}
}

// Hook observes batches. StartBatch is called before matching begins and the
// returned func when it ends.
type Hook interface {
	StartBatch(size int) func()
}

// Batcher matches many targets against one background
type Batcher struct {
	// Matcher defaults to Exact
	Matcher Matcher
	Hook    Hook
	// Workers > 1 matches targets concurrently
	Workers int
}

// MatchMany decodes background once and matches every target against it.
// Results follow the order of targets, duplicates included.
func (b Batcher) MatchMany(background string, targets ...string) ([]MatchResult, error) {
	bg, err := Decode(background)
	if err != nil {
		return nil, err
	}

	decoded := make([]RGB, len(targets))
	for i, hex := range targets {
		decoded[i], err = Decode(hex)
		if err != nil {
			return nil, err
		}
	}

	if b.Hook != nil {
		done := b.Hook.StartBatch(len(targets))
		defer done()
	}

	matcher := b.Matcher
	if matcher == nil {
		matcher = Exact
	}

	results := make([]MatchResult, len(targets))
	if b.Workers <= 1 {
		for i, target := range decoded {
			results[i] = NewMatchResult(targets[i], matcher.FindBestMatch(target, bg))
		}
		return results, nil
	}

	var g errgroup.Group
	g.SetLimit(b.Workers)
	for i, target := range decoded {
		g.Go(func() error {
			results[i] = NewMatchResult(targets[i], matcher.FindBestMatch(target, bg))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// MatchMany matches targets against background sequentially with no caching
func MatchMany(background string, targets ...string) ([]MatchResult, error) {
	return Batcher{}.MatchMany(background, targets...)
}
