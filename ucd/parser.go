package ucd

import (
	"bufio"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// CodePointRange is an inclusive range of code points.
type CodePointRange struct {
	From rune
	To   rune
}

var (
	reLine           = regexp.MustCompile(`^\s*(.*?)\s*(#.*)?$`)
	reCodePointRange = regexp.MustCompile(`^([[:xdigit:]]+)(?:..([[:xdigit:]]+))?$`)

	specialCommentPrefix = "# @missing:"
)

// This parser can parse data files of Unicode Character Database (UCD).
// Specifically, it has the following two functions:
// - Converts each line of the data files into a slice of fields.
// - Recognizes specially-formatted comments starting `@missing` and generates a slice of fields.
//
// However, for practical purposes, each field needs to be analyzed more specifically.
// For instance, in UnicodeData.txt, the first field represents a range of code points,
// so it needs to be recognized as a hexadecimal string.
// You can perform more specific parsing for each file by implementing a dedicated parser that wraps this parser.
//
// https://www.unicode.org/reports/tr44/#Format_Conventions
type parser struct {
	scanner       *bufio.Scanner
	fields        []field
	defaultFields []field
	err           error
}

func newParser(r io.Reader) *parser {
	return &parser{
		scanner: bufio.NewScanner(r),
	}
}

func (p *parser) parse() bool {
	for p.scanner.Scan() {
		p.fields, p.defaultFields, p.err = parseRecord(p.scanner.Text())
		if p.err != nil {
			return false
		}
		if p.fields != nil || p.defaultFields != nil {
			return true
		}
	}
	p.err = p.scanner.Err()
	return false
}

func parseRecord(src string) ([]field, []field, error) {
	ms := reLine.FindStringSubmatch(src)
	fields := ms[1]
	comment := ms[2]
	var fs []field
	if fields != "" {
		fs = parseFields(fields)
	}
	var defaultFs []field
	if strings.HasPrefix(comment, specialCommentPrefix) {
		fields := strings.Replace(comment, specialCommentPrefix, "", -1)
		defaultFs = parseFields(fields)
	}
	return fs, defaultFs, nil
}

func parseFields(src string) []field {
	var fields []field
	for _, f := range strings.Split(src, ";") {
		fields = append(fields, field(strings.TrimSpace(f)))
	}
	return fields
}

type field string

func (f field) symbol() string {
	return string(f)
}

// codePointRange parses a field of the form `hhhh` or `hhhh..hhhh`.
func (f field) codePointRange() (*CodePointRange, error) {
	var from, to rune
	var err error
	cp := reCodePointRange.FindStringSubmatch(string(f))
	if cp == nil {
		return nil, fmt.Errorf("invalid code point range: %v", f)
	}
	from, err = decodeHexToRune(cp[1])
	if err != nil {
		return nil, err
	}
	if cp[2] != "" {
		to, err = decodeHexToRune(cp[2])
		if err != nil {
			return nil, err
		}
	} else {
		to = from
	}
	return &CodePointRange{
		From: from,
		To:   to,
	}, nil
}

// codePoint parses a single hexadecimal code point. An empty field decodes
// to 0, which UnicodeData.txt uses to mean "no value".
func (f field) codePoint() (rune, error) {
	if f == "" {
		return 0, nil
	}
	return decodeHexToRune(string(f))
}

// intOrZero parses a decimal field, defaulting an empty field to 0.
func (f field) intOrZero() (int, error) {
	if f == "" {
		return 0, nil
	}
	return strconv.Atoi(string(f))
}

// flag recognizes the single-character boolean convention used by fields
// like Bidi_Mirrored.
func (f field) flag() bool {
	return f == "Y"
}

func decodeHexToRune(hexCodePoint string) (rune, error) {
	h := hexCodePoint
	if len(h)%2 != 0 {
		h = "0" + h
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return 0, err
	}
	l := len(b)
	for i := 0; i < 4-l; i++ {
		b = append([]byte{0}, b...)
	}
	n := binary.BigEndian.Uint32(b)
	return rune(n), nil
}
