package main

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/nihei9/ucdc/driver"
	"github.com/nihei9/ucdc/spec"
	"github.com/spf13/cobra"
)

func Execute() error {
	err := generateCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}

	return nil
}

var generateFlags = struct {
	pkgName   *string
	output    *string
	bigEndian *bool
}{}

var generateCmd = &cobra.Command{
	Use:           "ucdc-go ucdtables",
	Short:         "Generate Unicode tables for Go",
	Long:          `ucdc-go generates Go source code declaring the compiled Unicode tables specified as the argument.`,
	Example:       `  ucdc-go ucdtables.json -p mypkg -o tables.go`,
	Args:          cobra.ExactArgs(1),
	RunE:          runGenerate,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	generateFlags.pkgName = generateCmd.Flags().StringP("package", "p", "main", "package name")
	generateFlags.output = generateCmd.Flags().StringP("output", "o", "", "output file path")
	generateFlags.bigEndian = generateCmd.Flags().Bool("big-endian", false, "emit the flag words in big-endian byte order")
}

func runGenerate(cmd *cobra.Command, args []string) (retErr error) {
	tables, err := readCompiledTables(args[0])
	if err != nil {
		return fmt.Errorf("Cannot read the compiled tables: %w", err)
	}

	var order binary.ByteOrder = binary.LittleEndian
	if *generateFlags.bigEndian {
		order = binary.BigEndian
	}
	b, err := driver.GenTables(tables, *generateFlags.pkgName, order)
	if err != nil {
		return fmt.Errorf("Failed to generate the tables: %v", err)
	}

	var filePath string
	if *generateFlags.output != "" {
		filePath = *generateFlags.output
	} else {
		filePath = fmt.Sprintf("%v_tables.go", *generateFlags.pkgName)
	}

	f, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("Failed to create an output file: %v", err)
	}
	defer f.Close()

	_, err = f.Write(b)
	if err != nil {
		return fmt.Errorf("Failed to write the table source code: %v", err)
	}

	return nil
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
