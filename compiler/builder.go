package compiler

import (
	"github.com/nihei9/ucdc/spec"
	"github.com/nihei9/ucdc/ucd"
)

// nfdMapping is a sparse entry of the NFD table: the code point's full
// canonical decomposition starts with nfd.
type nfdMapping struct {
	code rune
	nfd  rune
}

// tables is the accumulator one compilation run populates. A fresh instance
// is built per run; instances are never shared.
type tables struct {
	// flags is dense: one slot per addressable code point. Slots stay
	// FlagUndefined unless the database mentions their code point.
	flags      []spec.Flag
	lowercase  []spec.CaseMapping
	uppercase  []spec.CaseMapping
	nfd        []nfdMapping
	whitespace []rune
}

// whiteSpaceCodePoints is the White_Space property list. It is a fixed,
// version-independent set; the builder does not derive it from the records.
//
// https://www.unicode.org/Public/UCD/latest/ucd/PropList.txt
var whiteSpaceCodePoints = []*ucd.CodePointRange{
	{From: 0x0009, To: 0x000D},
	{From: 0x0020, To: 0x0020},
	{From: 0x0085, To: 0x0085},
	{From: 0x00A0, To: 0x00A0},
	{From: 0x1680, To: 0x1680},
	{From: 0x2000, To: 0x200A},
	{From: 0x2028, To: 0x2028},
	{From: 0x2029, To: 0x2029},
	{From: 0x202F, To: 0x202F},
	{From: 0x205F, To: 0x205F},
	{From: 0x3000, To: 0x3000},
}

type builder struct {
	maxCodePoints int
	tabs          *tables

	// decompFirst records, per decomposable code point, the first code
	// point of its direct canonical decomposition. finish resolves chains
	// through this map to obtain the first code point under full NFD.
	decompFirst map[rune]rune
}

func newBuilder(maxCodePoints int) *builder {
	flags := make([]spec.Flag, maxCodePoints)
	for i := range flags {
		flags[i] = spec.FlagUndefined
	}
	return &builder{
		maxCodePoints: maxCodePoints,
		tabs: &tables{
			flags: flags,
		},
		decompFirst: map[rune]rune{},
	}
}

// addRecord consumes one record. Records must arrive in strictly increasing
// code point order; the database format and the First/Last expansion both
// guarantee this.
func (b *builder) addRecord(rec *ucd.Record) {
	if int(rec.Code) >= b.maxCodePoints {
		return
	}
	b.tabs.flags[rec.Code] = Classify(rec.GeneralCategory)
	if rec.Lowercase != 0 && rec.Lowercase != rec.Code {
		b.tabs.lowercase = append(b.tabs.lowercase, spec.CaseMapping{
			From: rec.Code,
			To:   rec.Lowercase,
		})
	}
	if rec.Uppercase != 0 && rec.Uppercase != rec.Code {
		b.tabs.uppercase = append(b.tabs.uppercase, spec.CaseMapping{
			From: rec.Code,
			To:   rec.Uppercase,
		})
	}
	first, ok := rec.CanonicalDecompositionFirst()
	if !ok {
		first, ok = hangulDecompositionFirst(rec.Code)
	}
	// Self-mappings are never recorded. A self-referencing entry would also
	// make the resolution walk in finish circular.
	if ok && first != rec.Code {
		b.decompFirst[rec.Code] = first
		b.tabs.nfd = append(b.tabs.nfd, nfdMapping{
			code: rec.Code,
			nfd:  first,
		})
	}
}

// Hangul syllable composition constants.
// https://www.unicode.org/versions/latest/ch03.pdf, section 3.12
const (
	hangulSBase  = 0xAC00
	hangulLBase  = 0x1100
	hangulSCount = 11172
	hangulNCount = 588
)

// hangulDecompositionFirst returns the leading consonant jamo of a Hangul
// syllable. Syllables decompose algorithmically; UnicodeData.txt carries no
// mapping for them.
func hangulDecompositionFirst(cp rune) (rune, bool) {
	if cp < hangulSBase || cp >= hangulSBase+hangulSCount {
		return 0, false
	}
	return hangulLBase + (cp-hangulSBase)/hangulNCount, true
}

// finish resolves the NFD table and populates the whitespace set, then hands
// the accumulated tables over. The builder must not be reused afterward.
func (b *builder) finish() *tables {
	nfd := b.tabs.nfd[:0]
	for _, m := range b.tabs.nfd {
		m.nfd = b.resolveNFDFirst(m.nfd)
		// Resolution can lead back to the code point itself when the
		// database contains a decomposition cycle. Such a mapping says
		// nothing and must stay out of the table.
		if m.nfd == m.code {
			continue
		}
		nfd = append(nfd, m)
	}
	b.tabs.nfd = nfd
	for _, r := range whiteSpaceCodePoints {
		for cp := r.From; cp <= r.To; cp++ {
			if int(cp) >= b.maxCodePoints {
				break
			}
			b.tabs.whitespace = append(b.tabs.whitespace, cp)
		}
	}
	return b.tabs
}

// resolveNFDFirst follows canonical decompositions until it reaches a code
// point that no longer decomposes. The first code point of a canonical
// decomposition may itself be decomposable, so a single hop is not enough
// for full NFD. The walk is bounded by the map size so a decomposition
// cycle in a corrupt database cannot stall it; an acyclic chain always
// terminates earlier.
func (b *builder) resolveNFDFirst(cp rune) rune {
	for i := 0; i <= len(b.decompFirst); i++ {
		first, ok := b.decompFirst[cp]
		if !ok {
			return cp
		}
		cp = first
	}
	return cp
}
