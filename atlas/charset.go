package atlas

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// ASCII covers the printable ASCII range, the usual working set for
// debug overlays and latin UI text.
var ASCII = rangetable.New(asciiRunes()...)

// Latin1 extends ASCII with the printable Latin-1 supplement.
var Latin1 = rangetable.Merge(ASCII, rangetable.New(latin1Runes()...))

func asciiRunes() []rune {
	runes := make([]rune, 0, 95)
	for r := rune(0x20); r <= 0x7e; r++ {
		runes = append(runes, r)
	}
	return runes
}

func latin1Runes() []rune {
	runes := make([]rune, 0, 96)
	for r := rune(0xa0); r <= 0xff; r++ {
		runes = append(runes, r)
	}
	return runes
}

// rangeTableRunes walks every rune of a unicode.RangeTable in ascending
// order.
func rangeTableRunes(t *unicode.RangeTable, fn func(r rune)) {
	for _, r16 := range t.R16 {
		for r := rune(r16.Lo); r <= rune(r16.Hi); r += rune(r16.Stride) {
			fn(r)
		}
	}
	for _, r32 := range t.R32 {
		for r := rune(r32.Lo); r <= rune(r32.Hi); r += rune(r32.Stride) {
			fn(r)
		}
	}
}
