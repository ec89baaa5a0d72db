package colors

import "fmt"

const (
	DefaultScaleBackground = "#FFF"
	DefaultScalePrefix     = "blueA"
)

// GenerateAlphaScale renders each target as a CSS custom property holding its
// transparent equivalent over background, numbered from 1:
//
//	--blueA1: rgba(r, g, b, a);
//
// Matching goes through b so its hook and workers apply.
func GenerateAlphaScale(b Batcher, targets []string, background, prefix string) ([]string, error) {
	if background == "" {
		background = DefaultScaleBackground
	}
	if prefix == "" {
		prefix = DefaultScalePrefix
	}

	results, err := b.MatchMany(background, targets...)
	if err != nil {
		return nil, err
	}

	variables := make([]string, 0, len(results))
	for i, result := range results {
		variables = append(variables, fmt.Sprintf("--%s%d: %s;", prefix, i+1, result.RGBA))
	}
	return variables, nil
}
