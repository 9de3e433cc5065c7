package compiler

import (
	"github.com/nihei9/ucdc/spec"
)

// generalCategoryFlags maps each General_Category abbreviation onto the
// coarse class its group belongs to.
//
// https://www.unicode.org/reports/tr44/#GC_Values_Table
var generalCategoryFlags = map[string]spec.Flag{
	// Letter
	"Lu": spec.FlagLetter,
	"Ll": spec.FlagLetter,
	"Lt": spec.FlagLetter,
	"Lm": spec.FlagLetter,
	"Lo": spec.FlagLetter,
	// Mark
	"Mn": spec.FlagMark,
	"Mc": spec.FlagMark,
	"Me": spec.FlagMark,
	// Number
	"Nd": spec.FlagNumber,
	"Nl": spec.FlagNumber,
	"No": spec.FlagNumber,
	// Punctuation
	"Pc": spec.FlagPunctuation,
	"Pd": spec.FlagPunctuation,
	"Ps": spec.FlagPunctuation,
	"Pe": spec.FlagPunctuation,
	"Pi": spec.FlagPunctuation,
	"Pf": spec.FlagPunctuation,
	"Po": spec.FlagPunctuation,
	// Symbol
	"Sm": spec.FlagSymbol,
	"Sc": spec.FlagSymbol,
	"Sk": spec.FlagSymbol,
	"So": spec.FlagSymbol,
	// Separator
	"Zs": spec.FlagSeparator,
	"Zl": spec.FlagSeparator,
	"Zp": spec.FlagSeparator,
	// Other. Cn is deliberately absent: unassigned code points keep
	// FlagUndefined.
	"Cc": spec.FlagControl,
	"Cf": spec.FlagControl,
	"Co": spec.FlagControl,
	"Cs": spec.FlagControl,
}

// Classify maps a General_Category abbreviation onto its coarse class.
// Unknown abbreviations, including Cn, classify as FlagUndefined; they are
// not an error because legitimately-unassigned code points take this path.
func Classify(generalCategory string) spec.Flag {
	if f, ok := generalCategoryFlags[generalCategory]; ok {
		return f
	}
	return spec.FlagUndefined
}
