package sanitizer

import "strings"

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

func lower(s string) string {
	return strings.ToLower(s)
}

// NormalizeNameForComparison produces a lowercased, whitespace-collapsed key
// suitable for case-insensitive equality checks.
func NormalizeNameForComparison(input string) string {
	p := Pipeline{
		TrimAndNormalize,
		lower,
	}
	return p.Apply(input)
}
