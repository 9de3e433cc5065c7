package driver

import (
	"strings"
	"testing"

	"github.com/nihei9/ucdc/compiler"
	"github.com/nihei9/ucdc/spec"
)

const testUnicodeData = `0000;<control>;Cc;0;BN;;;;;N;NULL;;;;
0009;<control>;Cc;0;S;;;;;N;CHARACTER TABULATION;;;;
0020;SPACE;Zs;0;WS;;;;;N;;;;;
0031;DIGIT ONE;Nd;0;EN;;1;1;1;N;;;;;
0041;LATIN CAPITAL LETTER A;Lu;0;L;;;;;N;;;;0061;
0061;LATIN SMALL LETTER A;Ll;0;L;;;;;N;;;0041;;0041
00C0;LATIN CAPITAL LETTER A WITH GRAVE;Lu;0;L;0041 0300;;;;N;;;;00E0;
00C1;LATIN CAPITAL LETTER A WITH ACUTE;Lu;0;L;0041 0301;;;;N;;;;00E1;
`

func testClassifier(t *testing.T) *Classifier {
	t.Helper()
	tables, err := compiler.Compile(strings.NewReader(testUnicodeData), compiler.MaxCodePoints(0x100))
	if err != nil {
		t.Fatalf("unexpected error occurred: %v", err)
	}
	c, err := NewClassifier(tables)
	if err != nil {
		t.Fatalf("unexpected error occurred: %v", err)
	}
	return c
}

func TestClassifier_Flags(t *testing.T) {
	c := testClassifier(t)
	tests := []struct {
		cp   rune
		flag spec.Flag
	}{
		{cp: 0x0000, flag: spec.FlagControl},
		{cp: 0x0009, flag: spec.FlagControl},
		{cp: 0x0020, flag: spec.FlagSeparator},
		{cp: 0x0031, flag: spec.FlagNumber},
		{cp: 0x0041, flag: spec.FlagLetter},
		{cp: 0x0042, flag: spec.FlagUndefined},
		{cp: 0x00C1, flag: spec.FlagLetter},
		{cp: 0x00FF, flag: spec.FlagUndefined},
		// Outside the addressable space.
		{cp: 0x100, flag: 0},
		{cp: -1, flag: 0},
	}
	for _, tt := range tests {
		if flag := c.Flags(tt.cp); flag != tt.flag {
			t.Errorf("unexpected flag for %X: want: %v, got: %v", tt.cp, tt.flag, flag)
		}
	}
}

func TestClassifier_IsWhitespace(t *testing.T) {
	c := testClassifier(t)
	tests := []struct {
		cp rune
		ok bool
	}{
		{cp: 0x09, ok: true},
		{cp: 0x20, ok: true},
		{cp: 0x41, ok: false},
	}
	for _, tt := range tests {
		if ok := c.IsWhitespace(tt.cp); ok != tt.ok {
			t.Errorf("unexpected result for %X: want: %v, got: %v", tt.cp, tt.ok, ok)
		}
	}
}

func TestClassifier_caseMappings(t *testing.T) {
	c := testClassifier(t)
	if lower := c.ToLower(0x41); lower != 0x61 {
		t.Errorf("unexpected lowercase form: want: %X, got: %X", 0x61, lower)
	}
	if upper := c.ToUpper(0x61); upper != 0x41 {
		t.Errorf("unexpected uppercase form: want: %X, got: %X", 0x41, upper)
	}
	// Code points without a mapping map to themselves.
	if lower := c.ToLower(0x31); lower != 0x31 {
		t.Errorf("unexpected lowercase form: want: %X, got: %X", 0x31, lower)
	}
	if upper := c.ToUpper(0x41); upper != 0x41 {
		t.Errorf("unexpected uppercase form: want: %X, got: %X", 0x41, upper)
	}
}

func TestClassifier_NFDFirst(t *testing.T) {
	c := testClassifier(t)
	tests := []struct {
		cp  rune
		nfd rune
	}{
		{cp: 0x00C0, nfd: 0x0041},
		{cp: 0x00C1, nfd: 0x0041},
		// Code points outside every range map to themselves.
		{cp: 0x00BF, nfd: 0x00BF},
		{cp: 0x00C2, nfd: 0x00C2},
		{cp: 0x0041, nfd: 0x0041},
	}
	for _, tt := range tests {
		if nfd := c.NFDFirst(tt.cp); nfd != tt.nfd {
			t.Errorf("unexpected NFD first code point for %X: want: %X, got: %X", tt.cp, tt.nfd, nfd)
		}
	}
}

func TestNewClassifier_rejectsInvalidTables(t *testing.T) {
	_, err := NewClassifier(&spec.CompiledTables{
		MaxCodePoints: 0x100,
		FlagRanges: []spec.FlagRange{
			{Start: 0x00, Flags: spec.FlagUndefined},
		},
	})
	if err == nil {
		t.Fatalf("expected error didn't occur")
	}
}
