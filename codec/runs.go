package codec

// RunKind tags a Run as unchanged-from-previous or changed.
type RunKind int

const (
	// SkipRun marks bytes identical to the previous frame.
	SkipRun RunKind = iota
	// DiffRun marks bytes that changed, carrying their new values.
	DiffRun
)

// Run is one maximal contiguous slice of a frame's bytes, classified as
// either identical to (Skip) or different from (Diff) the previous frame.
type Run struct {
	Kind  RunKind
	Len   int    // for SkipRun
	Bytes []byte // for DiffRun, len == Len
}

// walkRuns compares cur against prev byte-by-byte in display order and
// invokes emit for each maximal run. Runs of the same kind are never
// emitted adjacently, and the sum of emitted run lengths always equals
// FrameSize.
func walkRuns(prev, cur *Frame, emit func(Run)) {
	i := 0
	for i < FrameSize {
		if prev[i] == cur[i] {
			start := i
			for i < FrameSize && prev[i] == cur[i] {
				i++
			}
			emit(Run{Kind: SkipRun, Len: i - start})
		} else {
			start := i
			for i < FrameSize && prev[i] != cur[i] {
				i++
			}
			emit(Run{Kind: DiffRun, Bytes: cur[start:i], Len: i - start})
		}
	}
}

// Runs returns the full run sequence for cur against prev as a slice,
// exposed standalone (rather than only via the streaming walkRuns callback
// the Encoder uses) for tooling and tests that want to inspect a frame's
// diff independent of how it gets encoded.
func Runs(prev, cur *Frame) []Run {
	var runs []Run
	walkRuns(prev, cur, func(r Run) {
		runs = append(runs, r)
	})
	return runs
}
