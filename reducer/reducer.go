package reducer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
)

const DefaultTop = 3

// MaxLineSize bounds a single input line read by Reduce.
const MaxLineSize = 1 << 20

type Result struct {
	Sums []int
	Top  int
}

type options struct {
	top     int
	literal bool
}

type Option func(*options)

// WithTop sets how many of the largest sums are added into Result.Top.
func WithTop(n int) Option {
	return func(o *options) {
		o.top = n
	}
}

// WithLiteral drops a trailing block that is not followed by a blank line.
func WithLiteral() Option {
	return func(o *options) {
		o.literal = true
	}
}

type accumulator struct {
	opts    options
	line    int
	current int
	open    bool
	sums    []int
}

func newAccumulator(opts []Option) *accumulator {
	acc := &accumulator{
		opts: options{top: DefaultTop},
		sums: []int{},
	}
	for _, opt := range opts {
		opt(&acc.opts)
	}
	return acc
}

func (acc *accumulator) add(text string) error {
	acc.line++
	if text == "" {
		acc.sums = append(acc.sums, acc.current)
		acc.current = 0
		acc.open = false
		return nil
	}

	n, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return &ParseError{Line: acc.line, Text: text, Err: err}
	}

	sum, ok := add32(acc.current, int(n))
	if !ok {
		return &ParseError{Line: acc.line, Text: text, Err: ErrOverflow}
	}
	acc.current = sum
	acc.open = true
	return nil
}

func (acc *accumulator) finish() (*Result, error) {
	if acc.open && !acc.opts.literal {
		acc.sums = append(acc.sums, acc.current)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(acc.sums)))

	if acc.opts.top < 0 || len(acc.sums) < acc.opts.top {
		return nil, &BoundsError{Want: acc.opts.top, Have: len(acc.sums)}
	}

	top := 0
	for _, s := range acc.sums[:acc.opts.top] {
		var ok bool
		top, ok = add32(top, s)
		if !ok {
			return nil, fmt.Errorf("sum of top %d: %w", acc.opts.top, ErrOverflow)
		}
	}

	return &Result{Sums: acc.sums, Top: top}, nil
}

// Compute sums every blank-line separated block of lines, sorts the sums
// descending and adds up the largest ones.
func Compute(lines []string, opts ...Option) (*Result, error) {
	acc := newAccumulator(opts)
	for _, line := range lines {
		err := acc.add(line)
		if err != nil {
			return nil, err
		}
	}
	return acc.finish()
}

// Reduce is Compute over the lines read from r.
func Reduce(name string, r io.Reader, opts ...Option) (*Result, error) {
	acc := newAccumulator(opts)
	input := bufio.NewScanner(r)
	input.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	for input.Scan() {
		err := acc.add(input.Text())
		if err != nil {
			return nil, err
		}
	}

	if err := input.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &ParseError{Line: acc.line + 1, Text: "", Err: err}
		}
		return nil, &ResourceError{Name: name, Err: err}
	}

	return acc.finish()
}

func add32(a, b int) (int, bool) {
	sum := int64(a) + int64(b)
	if sum > math.MaxInt32 || sum < math.MinInt32 {
		return 0, false
	}
	return int(sum), true
}
