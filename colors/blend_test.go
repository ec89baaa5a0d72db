package colors

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, hex string) RGB {
	t.Helper()
	c, err := Decode(hex)
	require.NoError(t, err)
	return c
}

// bestAtStep evaluates a single alpha step the same way the full search does,
// without early exit
func bestAtStep(target, background RGB, step int) int {
	alpha := float64(step) / AlphaSteps
	cr := snapChannel(target.R, background.R, alpha)
	cg := snapChannel(target.G, background.G, alpha)
	cb := snapChannel(target.B, background.B, alpha)

	best := math.MaxInt
	for _, dr := range candidateOffsets {
		for _, dg := range candidateOffsets {
			for _, db := range candidateOffsets {
				e := blendError(target, background,
					clampChannel(cr+dr), clampChannel(cg+dg), clampChannel(cb+db), alpha)
				best = min(best, e)
			}
		}
	}
	return best
}

func TestFormatAlpha(t *testing.T) {
	tests := []struct {
		step int
		want string
	}{
		{1, "0.01"},
		{7, "0.07"},
		{10, "0.1"},
		{29, "0.29"},
		{50, "0.5"},
		{62, "0.62"},
		{99, "0.99"},
		{100, "1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAlpha(tt.step), "step %d", tt.step)
	}
}

func TestBlendChannel(t *testing.T) {
	assert.Equal(t, 255, BlendChannel(255, 248, 0.01))
	assert.Equal(t, 200, BlendChannel(0, 200, 1))
	assert.Equal(t, 128, BlendChannel(128, 120, 0.01))
	// 0.5*1 + 0.5*0 = 0.5 rounds to even
	assert.Equal(t, 0, BlendChannel(0, 1, 0.5))
	// 0.5*3 + 0.5*0 = 1.5 rounds to even
	assert.Equal(t, 2, BlendChannel(0, 3, 0.5))
}

func TestBlendChannelHalfway(t *testing.T) {
	tests := []struct {
		bg, fg int
		alpha  float64
		want   int
	}{
		// each sum is exactly x.5 once both products are rounded
		{91, 216, 0.02, 94},
		{94, 144, 0.03, 96},
		{18, 48, 0.05, 20},
		{18, 88, 0.05, 22},
		{122, 232, 0.05, 128},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BlendChannel(tt.bg, tt.fg, tt.alpha), "bg %d fg %d alpha %v", tt.bg, tt.fg, tt.alpha)
	}
}

func TestFindBestMatchRoundingBoundaries(t *testing.T) {
	tests := []struct {
		target, background string
		want               Match
		rgba               string
	}{
		{"#5A16A4", "#FFFFFF", Match{R: 80, G: 8, B: 160, Step: 94, Error: 5}, "rgba(80, 8, 160, 0.94)"},
		{"#C73464", "#9E4246", Match{R: 216, G: 48, B: 112, Step: 71, Error: 1}, "rgba(216, 48, 112, 0.71)"},
	}

	for _, tt := range tests {
		t.Run(tt.target+"/"+tt.background, func(t *testing.T) {
			m := FindBestMatch(mustDecode(t, tt.target), mustDecode(t, tt.background))
			assert.Equal(t, tt.want, m)
			assert.Equal(t, tt.rgba, m.RGBA())
		})
	}
}

func TestFindBestMatchEndToEnd(t *testing.T) {
	target := mustDecode(t, "#7F66FF")
	background := mustDecode(t, "#FFFFFF")

	m := FindBestMatch(target, background)

	assert.Equal(t, Match{R: 48, G: 8, B: 248, Step: 62, Error: 16}, m)
	assert.Equal(t, "rgba(48, 8, 248, 0.62)", m.RGBA())
	assert.Equal(t, 0.62, m.Alpha())

	for step := 1; step <= AlphaSteps; step++ {
		if step == m.Step {
			continue
		}
		assert.Greater(t, bestAtStep(target, background, step), m.Error, "step %d", step)
	}
}

func TestFindBestMatchOpaque(t *testing.T) {
	m := FindBestMatch(mustDecode(t, "#ff0000"), mustDecode(t, "#ffffff"))

	assert.Equal(t, Match{R: 248, G: 0, B: 0, Step: 100, Error: 49}, m)
	assert.Equal(t, "rgba(248, 0, 0, 1)", m.RGBA())
	assert.Equal(t, 1.0, m.Alpha())
}

func TestFindBestMatchEarlyExit(t *testing.T) {
	gray := mustDecode(t, "#808080")

	m := FindBestMatch(gray, gray)

	// the very first candidate at alpha 0.01 already composites to the target
	assert.Equal(t, Match{R: 120, G: 120, B: 120, Step: 1, Error: 0}, m)
	assert.Equal(t, "rgba(120, 120, 120, 0.01)", m.RGBA())

	// a fully opaque exact hit exists and would win the tie, but is never reached
	assert.Equal(t, 0, blendError(gray, gray, 128, 128, 128, 1))
}

func TestFindBestMatchEarlyExitSkipsBetterAlpha(t *testing.T) {
	target := mustDecode(t, "#6496C8")
	background := mustDecode(t, "#FFFFFF")

	m := FindBestMatch(target, background)

	assert.Equal(t, Match{R: 8, G: 88, B: 168, Step: 63, Error: 1}, m)
	assert.Equal(t, "rgba(8, 88, 168, 0.63)", m.RGBA())

	// alpha 0.78 reproduces the target exactly but the search stopped at 0.63
	assert.Equal(t, 0, bestAtStep(target, background, 78))
}

func TestFindBestMatchIdentity(t *testing.T) {
	for _, hex := range []string{"#000000", "#ffffff", "#808080", "#7F66FF", "#123456", "#fc0"} {
		t.Run(hex, func(t *testing.T) {
			x := mustDecode(t, hex)
			m := FindBestMatch(x, x)
			assert.Less(t, m.Error, 2)
			assert.Equal(t, 1, m.Step)
		})
	}
}

func TestFindBestMatchDomain(t *testing.T) {
	backgrounds := []RGB{{255, 255, 255}, {0, 0, 0}, {18, 52, 86}, {240, 128, 16}}

	for _, bg := range backgrounds {
		for v := 0; v <= 255; v += 17 {
			target := RGB{R: v, G: 255 - v, B: (v * 7) % 256}
			m := FindBestMatch(target, bg)

			for _, ch := range []int{m.R, m.G, m.B} {
				assert.Zero(t, ch%ChannelStep, "channel %d for %v over %v", ch, target, bg)
				assert.GreaterOrEqual(t, ch, 0)
				assert.LessOrEqual(t, ch, MaxChannel)
			}
			assert.GreaterOrEqual(t, m.Step, 1)
			assert.LessOrEqual(t, m.Step, AlphaSteps)
			assert.Greater(t, m.Alpha(), 0.0)
			assert.Equal(t, blendError(target, bg, m.R, m.G, m.B, float64(m.Step)/AlphaSteps), m.Error)
		}
	}
}

func TestFindBestMatchDeterministic(t *testing.T) {
	target := mustDecode(t, "#653DE9")
	bg := mustDecode(t, "#fff")

	first := FindBestMatch(target, bg)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, FindBestMatch(target, bg))
	}
}

func TestFindBestMatchIsSearchMinimum(t *testing.T) {
	backgrounds := []RGB{{255, 255, 255}, {0, 0, 0}, {200, 30, 90}}

	for _, bg := range backgrounds {
		for v := 0; v <= 255; v += 15 {
			target := RGB{R: 255 - v, G: v, B: (v * 3) % 256}
			m := FindBestMatch(target, bg)
			if m.Error < earlyExitError {
				continue
			}

			for step := 1; step <= AlphaSteps; step++ {
				best := bestAtStep(target, bg, step)
				if step > m.Step {
					// an equal error at a higher alpha would have replaced m
					assert.Greater(t, best, m.Error, "%v over %v step %d", target, bg, step)
				} else {
					assert.GreaterOrEqual(t, best, m.Error, "%v over %v step %d", target, bg, step)
				}
			}
		}
	}
}
