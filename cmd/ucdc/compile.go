package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/nihei9/ucdc/compiler"
	"github.com/nihei9/ucdc/spec"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	fetch          *string
	unicodeVersion *string
	maxCodePoints  *int
	debug          *bool
	output         *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "compile [UnicodeData.txt]",
		Short: "Compile UnicodeData.txt into compact runtime tables",
		Long: `compile takes a UnicodeData.txt and generates the compact runtime tables a
text-processing engine can query without bundling the full database.`,
		Example: `  Read from/Write to the specified file:
    ucdc compile UnicodeData.txt -o ucdtables.json
  Read from stdin and write to stdout:
    cat UnicodeData.txt | ucdc compile
  Fetch the database from unicode.org:
    ucdc compile --fetch 15.0.0 -o ucdtables.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompile,
	}
	compileFlags.fetch = cmd.Flags().String("fetch", "", "Unicode version to fetch the database for (instead of a file argument)")
	compileFlags.unicodeVersion = cmd.Flags().String("unicode-version", "", "Unicode version recorded in the output (informational)")
	compileFlags.maxCodePoints = cmd.Flags().Int("max-codepoints", compiler.MaxCodePointsDefault, "bound of the addressable code point space")
	compileFlags.debug = cmd.Flags().BoolP("debug", "d", false, "enable logging")
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) (retErr error) {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	if path != "" && *compileFlags.fetch != "" {
		return fmt.Errorf("a file argument and --fetch are mutually exclusive")
	}
	// The database is read completely before parsing begins; a fetch that
	// fails must abort the run before any output is produced.
	data, err := readDatabase(path, *compileFlags.fetch)
	if err != nil {
		return fmt.Errorf("Cannot read the Unicode database: %w", err)
	}

	opts := []compiler.CompilerOption{
		compiler.MaxCodePoints(*compileFlags.maxCodePoints),
	}
	if *compileFlags.debug {
		opts = append(opts, compiler.EnableLogging(os.Stderr))
	}
	tables, err := compiler.Compile(bytes.NewReader(data), opts...)
	if err != nil {
		return err
	}
	tables.UnicodeVersion = *compileFlags.unicodeVersion
	if tables.UnicodeVersion == "" {
		tables.UnicodeVersion = *compileFlags.fetch
	}

	err = writeCompiledTables(tables, *compileFlags.output)
	if err != nil {
		return fmt.Errorf("Cannot write the compiled tables: %w", err)
	}

	return nil
}

func readDatabase(path, fetchVersion string) ([]byte, error) {
	if fetchVersion != "" {
		url := fmt.Sprintf("https://www.unicode.org/Public/%v/ucd/UnicodeData.txt", fetchVersion)
		resp, err := http.Get(url)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%v responded with %v", url, resp.Status)
		}
		return io.ReadAll(resp.Body)
	}
	r := os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return io.ReadAll(r)
}

func writeCompiledTables(tables *spec.CompiledTables, path string) error {
	out, err := json.Marshal(tables)
	if err != nil {
		return err
	}
	w := os.Stdout
	if path != "" {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("Cannot open the output file %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}
	fmt.Fprintf(w, "%v\n", string(out))
	return nil
}
