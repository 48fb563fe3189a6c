package toc

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Anchor turns heading text into a fragment id: accents folded, lowercase,
// runs of anything other than letters and digits collapsed to "-".
func Anchor(heading string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, heading)
	if err != nil {
		folded = heading
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return "section"
	}
	return b.String()
}

// Anchors hands out unique anchors within one document.
type Anchors struct {
	seen map[string]int
}

// NewAnchors returns an allocator that already knows the given ids.
func NewAnchors(taken ...string) *Anchors {
	a := &Anchors{seen: make(map[string]int)}
	for _, id := range taken {
		a.seen[id] = 0
	}
	return a
}

// Next returns a unique anchor for heading, suffixing "-1", "-2", ... on collision.
func (a *Anchors) Next(heading string) string {
	base := Anchor(heading)
	id := base
	for {
		if _, ok := a.seen[id]; !ok {
			break
		}
		a.seen[base]++
		id = base + "-" + strconv.Itoa(a.seen[base])
	}
	a.seen[id] = 0
	return id
}
