package compiler

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nihei9/ucdc/spec"
)

const testUnicodeData = `0000;<control>;Cc;0;BN;;;;;N;NULL;;;;
0009;<control>;Cc;0;S;;;;;N;CHARACTER TABULATION;;;;
0020;SPACE;Zs;0;WS;;;;;N;;;;;
0028;LEFT PARENTHESIS;Ps;0;ON;;;;;Y;;;;;
0031;DIGIT ONE;Nd;0;EN;;1;1;1;N;;;;;
0041;LATIN CAPITAL LETTER A;Lu;0;L;;;;;N;;;;0061;
0061;LATIN SMALL LETTER A;Ll;0;L;;;;;N;;;0041;;0041
00C0;LATIN CAPITAL LETTER A WITH GRAVE;Lu;0;L;0041 0300;;;;N;;;;00E0;
00C1;LATIN CAPITAL LETTER A WITH ACUTE;Lu;0;L;0041 0301;;;;N;;;;00E1;
00DC;LATIN CAPITAL LETTER U WITH DIAERESIS;Lu;0;L;0055 0308;;;;N;;;;00FC;
01D5;LATIN CAPITAL LETTER U WITH DIAERESIS AND MACRON;Lu;0;L;00DC 0304;;;;N;;;;01D6;
`

func compileTestTables(t *testing.T, src string, opts ...CompilerOption) *spec.CompiledTables {
	t.Helper()
	tables, err := Compile(strings.NewReader(src), opts...)
	if err != nil {
		t.Fatalf("unexpected error occurred: %v", err)
	}
	return tables
}

// flagAt reproduces the lookup consumers perform: the run covering cp
// determines its flag.
func flagAt(t *testing.T, ranges []spec.FlagRange, cp rune) spec.Flag {
	t.Helper()
	for i := 0; i < len(ranges)-1; i++ {
		if cp >= ranges[i].Start && cp < ranges[i+1].Start {
			return ranges[i].Flags
		}
	}
	t.Fatalf("no range covers %X", cp)
	return 0
}

func TestCompile(t *testing.T) {
	tables := compileTestTables(t, testUnicodeData, MaxCodePoints(0x200))

	err := tables.Validate()
	if err != nil {
		t.Fatalf("the compiled tables are invalid: %v", err)
	}

	t.Run("flag ranges cover every code point with its classification", func(t *testing.T) {
		wants := map[rune]spec.Flag{
			0x0000: spec.FlagControl,
			0x0009: spec.FlagControl,
			0x0020: spec.FlagSeparator,
			0x0028: spec.FlagPunctuation,
			0x0031: spec.FlagNumber,
			0x0041: spec.FlagLetter,
			0x0061: spec.FlagLetter,
			0x00C0: spec.FlagLetter,
			0x01D5: spec.FlagLetter,
			// Code points the database never mentions stay undefined.
			0x0001: spec.FlagUndefined,
			0x0042: spec.FlagUndefined,
			0x01FF: spec.FlagUndefined,
		}
		for cp, want := range wants {
			if got := flagAt(t, tables.FlagRanges, cp); got != want {
				t.Errorf("unexpected flag for %X: want: %v, got: %v", cp, want, got)
			}
		}
	})

	t.Run("the sentinel closes the address space", func(t *testing.T) {
		sentinel := tables.FlagRanges[len(tables.FlagRanges)-1]
		want := spec.FlagRange{Start: 0x200, Flags: 0}
		if sentinel != want {
			t.Errorf("unexpected sentinel: want: %v, got: %v", want, sentinel)
		}
	})

	t.Run("case tables record only non-self mappings", func(t *testing.T) {
		wantLower := []spec.CaseMapping{
			{From: 0x0041, To: 0x0061},
			{From: 0x00C0, To: 0x00E0},
			{From: 0x00C1, To: 0x00E1},
			{From: 0x00DC, To: 0x00FC},
			{From: 0x01D5, To: 0x01D6},
		}
		if diff := cmp.Diff(wantLower, tables.Lowercase); diff != "" {
			t.Errorf("unexpected lowercase table (-want +got):\n%v", diff)
		}
		wantUpper := []spec.CaseMapping{
			{From: 0x0061, To: 0x0041},
		}
		if diff := cmp.Diff(wantUpper, tables.Uppercase); diff != "" {
			t.Errorf("unexpected uppercase table (-want +got):\n%v", diff)
		}
	})

	t.Run("NFD ranges resolve decompositions transitively", func(t *testing.T) {
		want := []spec.NFDRange{
			{First: 0x00C0, Last: 0x00C1, NFD: 0x0041},
			{First: 0x00DC, Last: 0x00DC, NFD: 0x0055},
			// 01D5 decomposes to 00DC, which itself decomposes to 0055.
			{First: 0x01D5, Last: 0x01D5, NFD: 0x0055},
		}
		if diff := cmp.Diff(want, tables.NFDRanges); diff != "" {
			t.Errorf("unexpected NFD ranges (-want +got):\n%v", diff)
		}
	})

	t.Run("the whitespace set is the fixed White_Space list", func(t *testing.T) {
		want := []rune{0x0009, 0x000A, 0x000B, 0x000C, 0x000D, 0x0020, 0x0085, 0x00A0}
		if diff := cmp.Diff(want, tables.Whitespace); diff != "" {
			t.Errorf("unexpected whitespace set (-want +got):\n%v", diff)
		}
	})
}

func TestCompile_isDeterministic(t *testing.T) {
	a := compileTestTables(t, testUnicodeData, MaxCodePoints(0x200))
	b := compileTestTables(t, testUnicodeData, MaxCodePoints(0x200))
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("two runs over the same input disagree (-first +second):\n%v", diff)
	}
}

func TestCompile_emptyInput(t *testing.T) {
	tables := compileTestTables(t, "", MaxCodePoints(0x40))
	want := []spec.FlagRange{
		{Start: 0x0, Flags: spec.FlagUndefined},
		{Start: 0x40, Flags: 0},
	}
	if diff := cmp.Diff(want, tables.FlagRanges); diff != "" {
		t.Errorf("unexpected flag ranges (-want +got):\n%v", diff)
	}
	if len(tables.NFDRanges) != 0 {
		t.Errorf("unexpected NFD ranges: %v", tables.NFDRanges)
	}
}

func TestCompile_mergesExpandedRangesWithAdjacentRuns(t *testing.T) {
	// 00FF is a letter directly adjacent to the expanded 0100..010F block,
	// so the whole span must collapse into a single run.
	src := `00FF;LATIN SMALL LETTER Y WITH DIAERESIS;Ll;0;L;;;;;N;;;0178;;0178
0100;<Test Block, First>;Lo;0;L;;;;;N;;;;;
010F;<Test Block, Last>;Lo;0;L;;;;;N;;;;;
`
	tables := compileTestTables(t, src, MaxCodePoints(0x200))
	want := []spec.FlagRange{
		{Start: 0x0, Flags: spec.FlagUndefined},
		{Start: 0xFF, Flags: spec.FlagLetter},
		{Start: 0x110, Flags: spec.FlagUndefined},
		{Start: 0x200, Flags: 0},
	}
	if diff := cmp.Diff(want, tables.FlagRanges); diff != "" {
		t.Errorf("unexpected flag ranges (-want +got):\n%v", diff)
	}
}

func TestCompile_decomposesHangulSyllablesAlgorithmically(t *testing.T) {
	// The database carries no decomposition mappings for Hangul syllables;
	// their decompositions are algorithmic. Syllables sharing a leading
	// consonant form contiguous blocks of 588 code points.
	src := `AC00;<Hangul Syllable, First>;Lo;0;L;;;;;N;;;;;
D7A3;<Hangul Syllable, Last>;Lo;0;L;;;;;N;;;;;
`
	tables := compileTestTables(t, src)
	if len(tables.NFDRanges) != 19 {
		t.Fatalf("unexpected number of NFD ranges: want: %v, got: %v", 19, len(tables.NFDRanges))
	}
	first := tables.NFDRanges[0]
	if want := (spec.NFDRange{First: 0xAC00, Last: 0xAE4B, NFD: 0x1100}); first != want {
		t.Errorf("unexpected first NFD range: want: %v, got: %v", want, first)
	}
	last := tables.NFDRanges[18]
	if want := (spec.NFDRange{First: 0xD558, Last: 0xD7A3, NFD: 0x1112}); last != want {
		t.Errorf("unexpected last NFD range: want: %v, got: %v", want, last)
	}
}

func TestCompile_dropsNFDSelfMappings(t *testing.T) {
	tests := []struct {
		caption string
		src     string
	}{
		{
			caption: "a decomposition starting with its own code point",
			src:     "0041;LATIN CAPITAL LETTER A;Lu;0;L;0041 0300;;;;N;;;;;\n",
		},
		{
			caption: "a decomposition cycle",
			src: `0041;LATIN CAPITAL LETTER A;Lu;0;L;0042;;;;N;;;;;
0042;LATIN CAPITAL LETTER B;Lu;0;L;0041;;;;N;;;;;
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			tables := compileTestTables(t, tt.src, MaxCodePoints(0x100))
			if err := tables.Validate(); err != nil {
				t.Fatalf("the compiled tables are invalid: %v", err)
			}
			for _, r := range tables.NFDRanges {
				if r.NFD >= r.First && r.NFD <= r.Last {
					t.Errorf("the NFD range %X..%X maps %X to itself", r.First, r.Last, r.NFD)
				}
			}
			if len(tables.NFDRanges) != 0 {
				t.Errorf("unexpected NFD ranges: %v", tables.NFDRanges)
			}
		})
	}
}

func TestCompile_abortsOnMalformedDatabase(t *testing.T) {
	tests := []struct {
		caption string
		src     string
	}{
		{
			caption: "a structural error",
			src:     "0041;LATIN CAPITAL LETTER A;Lu\n",
		},
		{
			caption: "a pairing error",
			src:     "9FFF;<CJK Ideograph, Last>;Lo;0;L;;;;;N;;;;;\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			_, err := Compile(strings.NewReader(tt.src))
			if err == nil {
				t.Fatalf("expected error didn't occur")
			}
		})
	}
}

func TestMaxCodePoints_rejectsNonPositiveBounds(t *testing.T) {
	_, err := Compile(strings.NewReader(""), MaxCodePoints(0))
	if err == nil {
		t.Fatalf("expected error didn't occur")
	}
}
