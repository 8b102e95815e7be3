package timing

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// Sequence is an ordered list of benchmark durations in seconds,
// one entry per benchmark, in file order.
type Sequence []float64

// ParseError reports a token in a timing file that is not a number.
type ParseError struct {
	Path  string
	Token string
	Index int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("timing file %s: token %d (%q) is not a number", e.Path, e.Index, e.Token)
}

// LengthMismatchError reports two sample files that do not describe the
// same set of benchmarks.
type LengthMismatchError struct {
	LenA, LenB int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("timing samples have different lengths: %d vs %d", e.LenA, e.LenB)
}

// ReadSequence reads a whitespace-separated list of decimal durations
// from path. No upper bound on length is enforced.
func ReadSequence(path string) (Sequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing file: %w", err)
	}

	tokens := strings.Fields(string(data))
	seq := make(Sequence, 0, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, &ParseError{Path: path, Token: tok, Index: i}
		}
		seq = append(seq, v)
	}
	return seq, nil
}

// Reduce collapses two samples of the same benchmark set into one
// sequence by keeping the faster time at each index. Running every
// benchmark twice and keeping the minimum discards transient slowdowns
// from scheduler jitter or thermal throttling.
func Reduce(a, b Sequence) (Sequence, error) {
	if len(a) != len(b) {
		return nil, &LengthMismatchError{LenA: len(a), LenB: len(b)}
	}

	out := make(Sequence, len(a))
	for i := range a {
		out[i] = math.Min(a[i], b[i])
	}
	return out, nil
}

// LoadReduced reads the two sample files for one run and reduces them.
func LoadReduced(path1, path2 string) (Sequence, error) {
	s1, err := ReadSequence(path1)
	if err != nil {
		return nil, err
	}
	s2, err := ReadSequence(path2)
	if err != nil {
		return nil, err
	}
	return Reduce(s1, s2)
}
