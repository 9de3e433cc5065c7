package spec

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Flag identifies the coarse character class of one code point. Every code
// point gets exactly one class; the value is stored as a bit position so
// emitters can pack it into a fixed-width word.
type Flag uint16

const (
	FlagUndefined   Flag = 1 << iota // unassigned code points
	FlagNumber                       // \p{N}
	FlagLetter                       // \p{L}
	FlagSeparator                    // \p{Z}
	FlagMark                         // \p{M}
	FlagPunctuation                  // \p{P}
	FlagSymbol                       // \p{S}
	FlagControl                      // \p{C}
)

var flagNames = map[Flag]string{
	FlagUndefined:   "Undefined",
	FlagNumber:      "Number",
	FlagLetter:      "Letter",
	FlagSeparator:   "Separator",
	FlagMark:        "Mark",
	FlagPunctuation: "Punctuation",
	FlagSymbol:      "Symbol",
	FlagControl:     "Control",
}

func (f Flag) String() string {
	if name, ok := flagNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Flag(%#x)", uint16(f))
}

// Encode returns the flag word as read under the given byte order. Emitters
// that serialize the word as a fixed-width integer choose the order; the
// flag itself is order-independent.
func (f Flag) Encode(order binary.ByteOrder) uint16 {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(f))
	return order.Uint16(b[:])
}

// FlagRange is one maximal run of code points sharing a flag. The run is
// implicitly closed by the next range's Start: it spans
// [Start, nextStart).
type FlagRange struct {
	Start rune `json:"start"`
	Flags Flag `json:"flags"`
}

// CaseMapping maps a code point to its cased form. Self-mappings are never
// recorded.
type CaseMapping struct {
	From rune `json:"from"`
	To   rune `json:"to"`
}

// NFDRange is a maximal run [First, Last] of consecutive code points whose
// canonical decompositions all start with the code point NFD.
type NFDRange struct {
	First rune `json:"first"`
	Last  rune `json:"last"`
	NFD   rune `json:"nfd"`
}

// CompiledTables is the complete output of one compilation run. Once
// produced it is read-only; emitters and drivers must not mutate it.
type CompiledTables struct {
	UnicodeVersion string        `json:"unicode_version,omitempty"`
	MaxCodePoints  int           `json:"max_code_points"`
	FlagRanges     []FlagRange   `json:"flag_ranges"`
	Whitespace     []rune        `json:"whitespace"`
	Lowercase      []CaseMapping `json:"lowercase"`
	Uppercase      []CaseMapping `json:"uppercase"`
	NFDRanges      []NFDRange    `json:"nfd_ranges"`
}

// Validate checks the structural invariants every compiled table set must
// hold: flag ranges cover [0, MaxCodePoints) with maximal runs and end with
// a zero-flag sentinel at MaxCodePoints, NFD ranges are ordered, disjoint,
// and free of self-mappings, and the case tables contain no self-mappings.
func (t *CompiledTables) Validate() error {
	if t.MaxCodePoints <= 0 {
		return fmt.Errorf("max_code_points must be positive: %v", t.MaxCodePoints)
	}
	err := t.validateFlagRanges()
	if err != nil {
		return err
	}
	err = t.validateNFDRanges()
	if err != nil {
		return err
	}
	err = validateCaseMappings("lowercase", t.Lowercase)
	if err != nil {
		return err
	}
	return validateCaseMappings("uppercase", t.Uppercase)
}

func (t *CompiledTables) validateFlagRanges() error {
	if len(t.FlagRanges) < 2 {
		return fmt.Errorf("flag_ranges needs at least one run and the terminal sentinel, but has %v entries", len(t.FlagRanges))
	}
	if t.FlagRanges[0].Start != 0 {
		return fmt.Errorf("the first flag range must start at code point 0, but starts at %X", t.FlagRanges[0].Start)
	}
	for i := 1; i < len(t.FlagRanges); i++ {
		prev := t.FlagRanges[i-1]
		cur := t.FlagRanges[i]
		if cur.Start <= prev.Start {
			return fmt.Errorf("flag ranges must be strictly increasing, but %X follows %X", cur.Start, prev.Start)
		}
		if cur.Flags == prev.Flags {
			return fmt.Errorf("adjacent flag ranges at %X and %X share the flag %v; they must have merged", prev.Start, cur.Start, cur.Flags)
		}
	}
	sentinel := t.FlagRanges[len(t.FlagRanges)-1]
	if int(sentinel.Start) != t.MaxCodePoints || sentinel.Flags != 0 {
		return fmt.Errorf("the last flag range must be the zero-flag sentinel at %X, but is (%X, %v)", t.MaxCodePoints, sentinel.Start, sentinel.Flags)
	}
	return nil
}

func (t *CompiledTables) validateNFDRanges() error {
	last := rune(-1)
	for _, r := range t.NFDRanges {
		if r.Last < r.First {
			return fmt.Errorf("an NFD range is inverted: %X..%X", r.First, r.Last)
		}
		if r.First <= last {
			return fmt.Errorf("NFD ranges must be increasing and disjoint, but %X..%X follows a range ending at %X", r.First, r.Last, last)
		}
		// A mapped value inside its own range would make that code point
		// map to itself.
		if r.NFD >= r.First && r.NFD <= r.Last {
			return fmt.Errorf("the NFD range %X..%X contains a self-mapping: it maps %X to itself", r.First, r.Last, r.NFD)
		}
		last = r.Last
	}
	return nil
}

func validateCaseMappings(name string, mappings []CaseMapping) error {
	var b strings.Builder
	for _, m := range mappings {
		if m.From == m.To {
			fmt.Fprintf(&b, " %X", m.From)
		}
	}
	if b.Len() > 0 {
		return fmt.Errorf("the %v table contains self-mappings:%v", name, b.String())
	}
	return nil
}
