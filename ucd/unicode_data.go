package ucd

import (
	"fmt"
	"io"
	"strings"
)

// Field layout of UnicodeData.txt.
// https://www.unicode.org/reports/tr44/#UnicodeData.txt
const (
	fieldCodePoint = iota
	fieldName
	fieldGeneralCategory
	fieldCombiningClass
	fieldBidiCategory
	fieldDecomposition
	fieldDecimalDigit
	fieldDigit
	fieldNumeric
	fieldMirrored
	fieldOldName
	fieldComment
	fieldUppercase
	fieldLowercase
	fieldTitlecase

	numUnicodeDataFields = 15
)

// Record is one code point's attributes as defined by one UnicodeData.txt
// line, or synthesized from a First/Last boundary pair.
type Record struct {
	Code            rune
	Name            string
	GeneralCategory string
	CombiningClass  int
	BidiCategory    string

	// DecompTag is the compatibility formatting tag (`<compat>`, `<wide>`,
	// and so on). It is empty when the decomposition is canonical.
	DecompTag string
	// Decomp is the decomposition mapping. For canonical decompositions it
	// holds the complete mapping; for compatibility ones, the code points
	// following the tag.
	Decomp []rune

	DecimalDigit int
	Digit        int
	Numeric      string
	Mirrored     bool
	OldName      string
	Comment      string

	// Case mappings, 0 when the record defines none.
	Uppercase rune
	Lowercase rune
	Titlecase rune
}

// CanonicalDecompositionFirst returns the first code point of the record's
// canonical decomposition. It reports false when the record has no
// decomposition or only a compatibility one.
func (r *Record) CanonicalDecompositionFirst() (rune, bool) {
	if r.DecompTag != "" || len(r.Decomp) == 0 {
		return 0, false
	}
	return r.Decomp[0], true
}

const (
	firstNameSuffix = ", First>"
	lastNameSuffix  = ", Last>"
)

// RecordReader reads UnicodeData.txt one record at a time, expanding
// First/Last boundary pairs into the individual code points they stand for.
//
// https://www.unicode.org/reports/tr44/#Code_Point_Ranges
type RecordReader struct {
	p *parser

	// First/Last expansion state. The reader buffers at most one boundary
	// record: pendingFirst holds a First record until its Last counterpart
	// arrives; any other record in between is a fatal pairing error.
	pendingFirst *Record

	// While a matched pair is being expanded, rangeLast holds the Last
	// record (the authoritative source of the shared attributes) and
	// rangeNext the next code point to synthesize.
	rangeLast *Record
	rangeNext rune
}

func NewRecordReader(r io.Reader) *RecordReader {
	return &RecordReader{
		p: newParser(r),
	}
}

// Next returns the next record in code point order. It returns io.EOF after
// the last record.
func (r *RecordReader) Next() (*Record, error) {
	if r.rangeLast != nil {
		if r.rangeNext < r.rangeLast.Code {
			rec := *r.rangeLast
			rec.Code = r.rangeNext
			r.rangeNext++
			return &rec, nil
		}
		rec := r.rangeLast
		r.rangeLast = nil
		return rec, nil
	}
	for {
		rec, err := r.read()
		if err != nil {
			return nil, err
		}
		switch {
		case strings.HasSuffix(rec.Name, firstNameSuffix):
			if r.pendingFirst != nil {
				return nil, fmt.Errorf("a First record %v appeared while %v was waiting for its Last counterpart", rec.Name, r.pendingFirst.Name)
			}
			r.pendingFirst = rec
		case strings.HasSuffix(rec.Name, lastNameSuffix):
			first := r.pendingFirst
			if first == nil {
				return nil, fmt.Errorf("a Last record %v appeared without a preceding First record", rec.Name)
			}
			r.pendingFirst = nil
			err := checkBoundaryPair(first, rec)
			if err != nil {
				return nil, err
			}
			r.rangeLast = rec
			r.rangeNext = first.Code
			return r.Next()
		default:
			if r.pendingFirst != nil {
				return nil, fmt.Errorf("a First record %v must be followed immediately by its Last counterpart, but %v appeared", r.pendingFirst.Name, rec.Name)
			}
			return rec, nil
		}
	}
}

func (r *RecordReader) read() (*Record, error) {
	for r.p.parse() {
		if len(r.p.fields) == 0 {
			continue
		}
		return parseRecordFields(r.p.fields)
	}
	if r.p.err != nil {
		return nil, r.p.err
	}
	if r.pendingFirst != nil {
		return nil, fmt.Errorf("a First record %v has no Last counterpart", r.pendingFirst.Name)
	}
	return nil, io.EOF
}

// checkBoundaryPair verifies that a First/Last pair really describes one
// uniform block: same name stem, same general category and bidi class, and
// no case mappings on either boundary.
func checkBoundaryPair(first, last *Record) error {
	firstStem := strings.TrimSuffix(first.Name, firstNameSuffix)
	lastStem := strings.TrimSuffix(last.Name, lastNameSuffix)
	if firstStem != lastStem {
		return fmt.Errorf("mismatched First/Last records: %v and %v", first.Name, last.Name)
	}
	if first.GeneralCategory != last.GeneralCategory {
		return fmt.Errorf("First/Last records %v and %v disagree on the general category: %v and %v", first.Name, last.Name, first.GeneralCategory, last.GeneralCategory)
	}
	if first.BidiCategory != last.BidiCategory {
		return fmt.Errorf("First/Last records %v and %v disagree on the bidi category: %v and %v", first.Name, last.Name, first.BidiCategory, last.BidiCategory)
	}
	if first.hasCaseMapping() || last.hasCaseMapping() {
		return fmt.Errorf("First/Last records %v and %v must not define case mappings", first.Name, last.Name)
	}
	if last.Code < first.Code {
		return fmt.Errorf("First/Last records %v and %v are out of order: %X..%X", first.Name, last.Name, first.Code, last.Code)
	}
	return nil
}

func (r *Record) hasCaseMapping() bool {
	return r.Uppercase != 0 || r.Lowercase != 0 || r.Titlecase != 0
}

func parseRecordFields(fields []field) (*Record, error) {
	if len(fields) != numUnicodeDataFields {
		return nil, fmt.Errorf("a UnicodeData.txt record must have exactly %v fields, but has %v", numUnicodeDataFields, len(fields))
	}
	code, err := fields[fieldCodePoint].codePoint()
	if err != nil {
		return nil, fmt.Errorf("invalid code point %v: %w", fields[fieldCodePoint], err)
	}
	rec := &Record{
		Code:            code,
		Name:            fields[fieldName].symbol(),
		GeneralCategory: fields[fieldGeneralCategory].symbol(),
		BidiCategory:    fields[fieldBidiCategory].symbol(),
		Numeric:         fields[fieldNumeric].symbol(),
		Mirrored:        fields[fieldMirrored].flag(),
		OldName:         fields[fieldOldName].symbol(),
		Comment:         fields[fieldComment].symbol(),
	}
	rec.CombiningClass, err = fields[fieldCombiningClass].intOrZero()
	if err != nil {
		return nil, fmt.Errorf("invalid combining class of %X: %w", code, err)
	}
	rec.DecompTag, rec.Decomp, err = parseDecomposition(fields[fieldDecomposition])
	if err != nil {
		return nil, fmt.Errorf("invalid decomposition of %X: %w", code, err)
	}
	rec.DecimalDigit, err = fields[fieldDecimalDigit].intOrZero()
	if err != nil {
		return nil, fmt.Errorf("invalid decimal digit value of %X: %w", code, err)
	}
	rec.Digit, err = fields[fieldDigit].intOrZero()
	if err != nil {
		return nil, fmt.Errorf("invalid digit value of %X: %w", code, err)
	}
	rec.Uppercase, err = fields[fieldUppercase].codePoint()
	if err != nil {
		return nil, fmt.Errorf("invalid uppercase mapping of %X: %w", code, err)
	}
	rec.Lowercase, err = fields[fieldLowercase].codePoint()
	if err != nil {
		return nil, fmt.Errorf("invalid lowercase mapping of %X: %w", code, err)
	}
	rec.Titlecase, err = fields[fieldTitlecase].codePoint()
	if err != nil {
		return nil, fmt.Errorf("invalid titlecase mapping of %X: %w", code, err)
	}
	return rec, nil
}

// parseDecomposition splits a decomposition field into an optional
// compatibility tag and the mapped code points.
//
// https://www.unicode.org/reports/tr44/#Character_Decomposition_Mappings
func parseDecomposition(f field) (string, []rune, error) {
	if f == "" {
		return "", nil, nil
	}
	tokens := strings.Fields(string(f))
	var tag string
	if strings.HasPrefix(tokens[0], "<") {
		tag = tokens[0]
		tokens = tokens[1:]
	}
	var cps []rune
	for _, t := range tokens {
		cp, err := decodeHexToRune(t)
		if err != nil {
			return "", nil, err
		}
		cps = append(cps, cp)
	}
	return tag, cps, nil
}
