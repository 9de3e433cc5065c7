package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"unicode"

	"github.com/nihei9/ucdc/driver"
	"github.com/nihei9/ucdc/spec"
	"github.com/nihei9/ucdc/ucd"
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"
)

var checkFlags = struct {
	propList  *string
	maxReport *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "check ucdtables",
		Short: "Cross-validate a compiled table set",
		Long: `check recomputes the properties a compiled table set encodes from independent
sources (the Go toolchain's Unicode tables and, when given, a PropList.txt)
and reports every disagreement. A disagreement is not necessarily a bug: the
sources may simply implement different Unicode versions.`,
		Example: `  ucdc check ucdtables.json
  ucdc check ucdtables.json --prop-list PropList.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runCheck,
	}
	checkFlags.propList = cmd.Flags().String("prop-list", "", "PropList.txt path to validate the whitespace set against")
	checkFlags.maxReport = cmd.Flags().Int("max-report", 20, "maximum number of disagreements to print per table")
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) (retErr error) {
	tables, err := readCompiledTables(args[0])
	if err != nil {
		return fmt.Errorf("Cannot read the compiled tables: %w", err)
	}
	c, err := driver.NewClassifier(tables)
	if err != nil {
		return err
	}

	total := 0
	total += checkNFD(c, tables)
	total += checkCaseMappings(tables)
	if *checkFlags.propList != "" {
		n, err := checkWhitespace(tables, *checkFlags.propList)
		if err != nil {
			return err
		}
		total += n
	}
	if total > 0 {
		return fmt.Errorf("found %v disagreements", total)
	}
	fmt.Fprintln(os.Stdout, "OK")
	return nil
}

// checkNFD recomputes the first code point of every code point's canonical
// decomposition with x/text and compares it against the compiled ranges.
func checkNFD(c *driver.Classifier, tables *spec.CompiledTables) int {
	n := 0
	reported := 0
	for cp := rune(0); int(cp) < tables.MaxCodePoints && cp <= unicode.MaxRune; cp++ {
		// Surrogates are not encodable as UTF-8, so x/text cannot
		// normalize them.
		if cp >= 0xD800 && cp <= 0xDFFF {
			continue
		}
		want := firstRune(norm.NFD.String(string(cp)))
		got := c.NFDFirst(cp)
		if got != want {
			n++
			if reported < *checkFlags.maxReport {
				fmt.Fprintf(os.Stdout, "nfd: %06X: tables say %06X, x/text says %06X\n", cp, got, want)
				reported++
			}
		}
	}
	return n
}

func checkCaseMappings(tables *spec.CompiledTables) int {
	n := 0
	reported := 0
	report := func(table string, from, got, want rune) {
		n++
		if reported < *checkFlags.maxReport {
			fmt.Fprintf(os.Stdout, "%v: %06X: tables say %06X, the Go toolchain says %06X\n", table, from, got, want)
			reported++
		}
	}
	for _, m := range tables.Lowercase {
		if want := unicode.ToLower(m.From); want != m.To {
			report("lowercase", m.From, m.To, want)
		}
	}
	for _, m := range tables.Uppercase {
		if want := unicode.ToUpper(m.From); want != m.To {
			report("uppercase", m.From, m.To, want)
		}
	}
	return n
}

// checkWhitespace diffs the compiled whitespace set against the White_Space
// property list of the given PropList.txt.
func checkWhitespace(tables *spec.CompiledTables, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("Cannot open the property list file %s: %w", path, err)
	}
	defer f.Close()
	propList, err := ucd.ParsePropList(f)
	if err != nil {
		return 0, fmt.Errorf("Cannot parse %s: %w", path, err)
	}
	want := map[rune]struct{}{}
	for _, r := range propList.WhiteSpace {
		for cp := r.From; cp <= r.To; cp++ {
			if int(cp) >= tables.MaxCodePoints {
				break
			}
			want[cp] = struct{}{}
		}
	}
	got := map[rune]struct{}{}
	for _, cp := range tables.Whitespace {
		got[cp] = struct{}{}
	}

	n := 0
	for cp := range got {
		if _, ok := want[cp]; !ok {
			fmt.Fprintf(os.Stdout, "whitespace: %06X: in the tables but not in %v\n", cp, path)
			n++
		}
	}
	for cp := range want {
		if _, ok := got[cp]; !ok {
			fmt.Fprintf(os.Stdout, "whitespace: %06X: in %v but not in the tables\n", cp, path)
			n++
		}
	}
	return n, nil
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func readCompiledTables(path string) (*spec.CompiledTables, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	tables := &spec.CompiledTables{}
	err = json.Unmarshal(data, tables)
	if err != nil {
		return nil, err
	}
	return tables, nil
}
