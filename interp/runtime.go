package interp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Runtime provides the builtins a program calls into.
type Runtime interface {
	// Print outputs x.  Its result is the result of the `print` call.
	Print(x int32) (int32, error)

	// Qmark produces the next input value.
	Qmark() (int32, error)
}

// ErrNoInput is returned by Qmark when the input is exhausted.
var ErrNoInput = errors.New("qmark: no more input")

// StreamRuntime is a Runtime which prints one integer per line to a writer and
// reads whitespace separated integers from a reader.
type StreamRuntime struct {
	out io.Writer
	in  *bufio.Scanner
}

// NewStreamRuntime creates a new stream runtime.  in may be nil, in which
// case every qmark call fails with ErrNoInput.
func NewStreamRuntime(out io.Writer, in io.Reader) *StreamRuntime {
	sr := &StreamRuntime{out: out}
	if in != nil {
		sr.in = bufio.NewScanner(in)
		sr.in.Split(bufio.ScanWords)
	}

	return sr
}

// Print writes x followed by a newline and returns x.
func (sr *StreamRuntime) Print(x int32) (int32, error) {
	if _, err := fmt.Fprintf(sr.out, "%d\n", x); err != nil {
		return 0, err
	}

	return x, nil
}

// Qmark reads the next integer from the input.
func (sr *StreamRuntime) Qmark() (int32, error) {
	if sr.in == nil || !sr.in.Scan() {
		if sr.in != nil && sr.in.Err() != nil {
			return 0, sr.in.Err()
		}

		return 0, ErrNoInput
	}

	x, err := strconv.ParseInt(sr.in.Text(), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("qmark: invalid input `%s`", sr.in.Text())
	}

	return int32(x), nil
}
