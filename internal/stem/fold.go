package stem

import (
	"sync"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// zeroWidth matches the invisible characters that survive copy-paste from
// web pages and break prefix matching without being visible in a listing.
var zeroWidth = runes.Predicate(func(r rune) bool {
	switch r {
	case '\u200B', // Zero Width Space
		'\u200C', // Zero Width Non-Joiner
		'\u200D', // Zero Width Joiner
		'\uFEFF': // Zero Width No-Break Space (BOM)
		return true
	}
	return false
})

// foldPool hands out remove-zero-width → NFC transform chains.
// Chains carry state between Transform calls, so they cannot be shared.
var foldPool = sync.Pool{
	New: func() any {
		return transform.Chain(runes.Remove(zeroWidth), norm.NFC)
	},
}

// fold rewrites s into NFC form with zero-width characters removed.
// On a transform error the input is returned unchanged; the later cleanup
// stages still apply.
func fold(s string) string {
	t := foldPool.Get().(transform.Transformer)
	defer func() {
		t.Reset()
		foldPool.Put(t)
	}()

	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}

	return out
}
