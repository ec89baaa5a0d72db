package colors

import (
	"fmt"
	"math"
	"strconv"
)

const (
	AlphaSteps = 100
	// ChannelStep is the spacing of the quantization lattice
	ChannelStep = 8
	MaxChannel  = 248

	// earlyExitError is the "good enough" threshold; the first candidate
	// under it ends the search even if a later alpha would do better.
	earlyExitError = 2
)

var candidateOffsets = [3]int{-ChannelStep, 0, ChannelStep}

// Match is a quantized foreground color and alpha step that, composited over
// a background, approximates a target color
type Match struct {
	R, G, B int
	// Step is the alpha expressed in hundredths, in [1, AlphaSteps]
	Step int
	// Error is the squared RGB distance between the composite and the target
	Error int
}

func (m Match) Alpha() float64 {
	alpha, _ := strconv.ParseFloat(FormatAlpha(m.Step), 64)
	return alpha
}

// RGBA renders the match as a CSS rgba() token
func (m Match) RGBA() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", m.R, m.G, m.B, FormatAlpha(m.Step))
}

// Matcher finds the best quantized rgba for a target over a background
type Matcher interface {
	FindBestMatch(target, background RGB) Match
}

// MatcherFunc adapts a function to the Matcher interface
type MatcherFunc func(target, background RGB) Match

func (f MatcherFunc) FindBestMatch(target, background RGB) Match {
	return f(target, background)
}

// Exact is the uncached matcher
var Exact Matcher = MatcherFunc(FindBestMatch)

// FormatAlpha renders step/100 rounded to two decimals in its shortest form:
// 100 renders as "1", 50 as "0.5", 62 as "0.62".
func FormatAlpha(step int) string {
	fixed := strconv.FormatFloat(float64(step)/AlphaSteps, 'f', 2, 64)
	alpha, err := strconv.ParseFloat(fixed, 64)
	if err != nil {
		return fixed
	}
	return strconv.FormatFloat(alpha, 'f', -1, 64)
}

// BlendChannel composites one foreground channel over a background channel.
//
// The float64 conversions round each product on its own. Without them the
// compiler may emit a fused multiply-add on arm64, ppc64le and s390x, which
// moves results that land exactly on .5 and changes the chosen candidate.
func BlendChannel(bg, fg int, alpha float64) int {
	return int(math.RoundToEven(float64(alpha*float64(fg)) + float64((1-alpha)*float64(bg))))
}

func clampChannel(v int) int {
	return max(0, min(MaxChannel, v))
}

// snapChannel solves target = alpha*fg + (1-alpha)*bg for fg and snaps the
// result onto the lattice. The product is rounded before the subtraction so
// that no fused multiply-subtract is emitted.
func snapChannel(target, bg int, alpha float64) int {
	exact := (float64(target) - float64((1-alpha)*float64(bg))) / alpha
	return clampChannel(int(math.RoundToEven(exact/ChannelStep)) * ChannelStep)
}

func blendError(target, background RGB, r, g, b int, alpha float64) int {
	dr := BlendChannel(background.R, r, alpha) - target.R
	dg := BlendChannel(background.G, g, alpha) - target.G
	db := BlendChannel(background.B, b, alpha) - target.B
	return dr*dr + dg*dg + db*db
}

// FindBestMatch searches every alpha step from 0.01 to 1 and, for each, the
// 3x3x3 lattice neighbourhood around the exact foreground that would
// reproduce the target. Lower error wins; ties go to the higher alpha. The
// first candidate with an error under 2 is returned immediately.
func FindBestMatch(target, background RGB) Match {
	best := Match{Error: math.MaxInt}

	for step := 1; step <= AlphaSteps; step++ {
		alpha := float64(step) / AlphaSteps

		centerR := snapChannel(target.R, background.R, alpha)
		centerG := snapChannel(target.G, background.G, alpha)
		centerB := snapChannel(target.B, background.B, alpha)

		for _, dr := range candidateOffsets {
			for _, dg := range candidateOffsets {
				for _, db := range candidateOffsets {
					r := clampChannel(centerR + dr)
					g := clampChannel(centerG + dg)
					b := clampChannel(centerB + db)

					e := blendError(target, background, r, g, b, alpha)
					if e < best.Error || (e == best.Error && step > best.Step) {
						best = Match{R: r, G: g, B: b, Step: step, Error: e}
					}

					if e < earlyExitError {
						return best
					}
				}
			}
		}
	}

	return best
}
