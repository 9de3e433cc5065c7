package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ucdc",
	Short: "Compile the Unicode Character Database into compact runtime tables",
	Long: `ucdc provides two features:
* Compiles UnicodeData.txt into compact, queryable runtime tables: per-code-point
  classification flags, case mappings, NFD first-code-point ranges, and the
  whitespace set.
* Cross-validates a compiled table set against independent sources.
  This feature is primarily aimed at catching database or compiler regressions.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
