package driver

import (
	"fmt"
	"sort"

	"github.com/nihei9/ucdc/spec"
)

// Classifier answers per-code-point queries over a compiled table set. It
// never mutates the tables; one instance can serve any number of lookups.
type Classifier struct {
	tables     *spec.CompiledTables
	whitespace map[rune]struct{}
	lowercase  map[rune]rune
	uppercase  map[rune]rune
}

func NewClassifier(tables *spec.CompiledTables) (*Classifier, error) {
	err := tables.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid compiled tables: %w", err)
	}
	ws := make(map[rune]struct{}, len(tables.Whitespace))
	for _, cp := range tables.Whitespace {
		ws[cp] = struct{}{}
	}
	lower := make(map[rune]rune, len(tables.Lowercase))
	for _, m := range tables.Lowercase {
		lower[m.From] = m.To
	}
	upper := make(map[rune]rune, len(tables.Uppercase))
	for _, m := range tables.Uppercase {
		upper[m.From] = m.To
	}
	return &Classifier{
		tables:     tables,
		whitespace: ws,
		lowercase:  lower,
		uppercase:  upper,
	}, nil
}

// Flags returns the classification flag of cp. Code points outside
// [0, MaxCodePoints) report the zero flag.
func (c *Classifier) Flags(cp rune) spec.Flag {
	if cp < 0 || int(cp) >= c.tables.MaxCodePoints {
		return 0
	}
	rs := c.tables.FlagRanges
	// The first range starting after cp closes the run covering it.
	i := sort.Search(len(rs), func(i int) bool {
		return rs[i].Start > cp
	})
	return rs[i-1].Flags
}

func (c *Classifier) IsWhitespace(cp rune) bool {
	_, ok := c.whitespace[cp]
	return ok
}

// ToLower returns the lowercase form of cp, or cp itself when the tables
// record no mapping.
func (c *Classifier) ToLower(cp rune) rune {
	if lower, ok := c.lowercase[cp]; ok {
		return lower
	}
	return cp
}

// ToUpper returns the uppercase form of cp, or cp itself when the tables
// record no mapping.
func (c *Classifier) ToUpper(cp rune) rune {
	if upper, ok := c.uppercase[cp]; ok {
		return upper
	}
	return cp
}

// NFDFirst returns the first code point of cp's full canonical
// decomposition, or cp itself when cp does not decompose.
func (c *Classifier) NFDFirst(cp rune) rune {
	rs := c.tables.NFDRanges
	i := sort.Search(len(rs), func(i int) bool {
		return rs[i].Last >= cp
	})
	if i < len(rs) && rs[i].First <= cp {
		return rs[i].NFD
	}
	return cp
}
