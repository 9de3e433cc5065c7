package compiler

import (
	"errors"
	"fmt"
	"io"

	"github.com/nihei9/ucdc/log"
	"github.com/nihei9/ucdc/spec"
	"github.com/nihei9/ucdc/ucd"
)

// MaxCodePointsDefault bounds the addressable code point space when no
// option overrides it.
const MaxCodePointsDefault = 0x110000

type CompilerOption func(c *compilerConfig) error

func EnableLogging(w io.Writer) CompilerOption {
	return func(c *compilerConfig) error {
		logger, err := log.NewLogger(w)
		if err != nil {
			return err
		}
		c.logger = logger
		return nil
	}
}

func MaxCodePoints(n int) CompilerOption {
	return func(c *compilerConfig) error {
		if n <= 0 {
			return fmt.Errorf("the maximum number of code points must be positive: %v", n)
		}
		c.maxCodePoints = n
		return nil
	}
}

type compilerConfig struct {
	logger        log.Logger
	maxCodePoints int
}

// Compile reads a UnicodeData.txt from r and compiles it into the compact
// runtime tables. Any structural or pairing error in the database aborts
// the run; no partial tables are ever returned.
func Compile(r io.Reader, opts ...CompilerOption) (*spec.CompiledTables, error) {
	config := &compilerConfig{
		logger:        log.NewNopLogger(),
		maxCodePoints: MaxCodePointsDefault,
	}
	for _, opt := range opts {
		err := opt(config)
		if err != nil {
			return nil, err
		}
	}

	b := newBuilder(config.maxCodePoints)
	reader := ucd.NewRecordReader(r)
	recordCount := 0
	for {
		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read a UnicodeData.txt record: %w", err)
		}
		b.addRecord(rec)
		recordCount++
	}
	tabs := b.finish()
	config.logger.Log(`Properties:
  Records: %v records
  Lowercase mappings: %v entries
  Uppercase mappings: %v entries
  NFD mappings: %v entries`, recordCount, len(tabs.lowercase), len(tabs.uppercase), len(tabs.nfd))

	flagRanges := groupFlagRanges(tabs.flags)
	nfdRanges := groupNFDRanges(tabs.nfd)
	config.logger.Log(`Ranges:
  Flag ranges: %v runs (sentinel included)
  NFD ranges: %v runs`, len(flagRanges), len(nfdRanges))

	return &spec.CompiledTables{
		MaxCodePoints: config.maxCodePoints,
		FlagRanges:    flagRanges,
		Whitespace:    tabs.whitespace,
		Lowercase:     tabs.lowercase,
		Uppercase:     tabs.uppercase,
		NFDRanges:     nfdRanges,
	}, nil
}
