package variants

import "strings"

// Split cuts raw bundle text at every byte-exact occurrence of delimiter and
// returns the segments between cut points, in order of appearance. A bundle
// with k delimiter occurrences always yields k+1 variants; a bundle with no
// occurrences yields a single variant equal to the whole input. Segments are
// returned verbatim: no trimming, no collapsing of adjacent delimiters, and
// empty segments at either boundary are preserved. Joining the result with
// the same delimiter reconstructs raw exactly.
func Split(raw, delimiter string) ([]string, error) {
	if delimiter == "" {
		return nil, ErrDelimiterRequired
	}
	return strings.Split(raw, delimiter), nil
}

// SplitVariants behaves like Split but attaches the 0-based ordinal to each
// segment so callers can track which variant a piece of text came from.
func SplitVariants(raw, delimiter string) ([]Variant, error) {
	segments, err := Split(raw, delimiter)
	if err != nil {
		return nil, err
	}
	variants := make([]Variant, len(segments))
	for i, text := range segments {
		variants[i] = Variant{Ordinal: i, Text: text}
	}
	return variants, nil
}

// Join is the inverse of Split: it re-inserts delimiter between every
// adjacent pair of variants, reproducing the original bundle text.
func Join(variants []string, delimiter string) string {
	return strings.Join(variants, delimiter)
}

// Count reports the number of delimiter occurrences in raw. Split returns
// Count(raw, delimiter)+1 segments for the same inputs.
func Count(raw, delimiter string) (int, error) {
	if delimiter == "" {
		return 0, ErrDelimiterRequired
	}
	return strings.Count(raw, delimiter), nil
}

// Variant is one document extracted from a bundle. Variants have no identity
// beyond their position within the bundle they were split from.
type Variant struct {
	Ordinal int
	Text    string
}
