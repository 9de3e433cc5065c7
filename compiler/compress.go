package compiler

import (
	"github.com/nihei9/ucdc/spec"
)

// codeRun is one maximal run of code points sharing a value.
type codeRun struct {
	start rune
	last  rune
	value uint32
}

// appendRun is the extend-or-open step both grouping passes share: it
// extends the open run when (code, value) continues it, and opens a new run
// otherwise. When contiguous is set, continuation additionally requires
// code to directly follow the run's last code point.
//
// Callers must feed code points in increasing order without duplicates;
// unsorted or duplicated input silently misrepresents the data.
func appendRun(runs []codeRun, code rune, value uint32, contiguous bool) []codeRun {
	if n := len(runs); n > 0 {
		r := &runs[n-1]
		if r.value == value && (!contiguous || code == r.last+1) {
			r.last = code
			return runs
		}
	}
	return append(runs, codeRun{
		start: code,
		last:  code,
		value: value,
	})
}

// groupFlagRanges collapses the dense flags array into maximal (start, flag)
// runs and closes the address space with a zero-flag sentinel, so consumers
// can read run i's span as [start_i, start_i+1).
func groupFlagRanges(flags []spec.Flag) []spec.FlagRange {
	var runs []codeRun
	for code, f := range flags {
		// The array is dense, so value equality alone closes runs.
		runs = appendRun(runs, rune(code), uint32(f), false)
	}
	ranges := make([]spec.FlagRange, 0, len(runs)+1)
	for _, r := range runs {
		ranges = append(ranges, spec.FlagRange{
			Start: r.start,
			Flags: spec.Flag(r.value),
		})
	}
	return append(ranges, spec.FlagRange{
		Start: rune(len(flags)),
		Flags: 0,
	})
}

// groupNFDRanges collapses the sparse NFD table into maximal
// (first, last, nfd) runs. The table is sparse, so a run only extends while
// the code points stay consecutive and the mapped value stays the same.
func groupNFDRanges(mappings []nfdMapping) []spec.NFDRange {
	var runs []codeRun
	for _, m := range mappings {
		runs = appendRun(runs, m.code, uint32(m.nfd), true)
	}
	ranges := make([]spec.NFDRange, 0, len(runs))
	for _, r := range runs {
		ranges = append(ranges, spec.NFDRange{
			First: r.start,
			Last:  r.last,
			NFD:   rune(r.value),
		})
	}
	return ranges
}
