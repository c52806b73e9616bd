package grid

import "golang.org/x/text/width"

// RuneWidth returns the number of cells r occupies: 2 for East Asian wide
// and fullwidth runes, 1 for everything else. Ambiguous-width runes count
// as narrow, matching the common terminal default.
func RuneWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}
