package processbar

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"
)

type Bar struct {
	w         io.Writer
	total     int
	count     int
	percent   int
	tag       string
	format    string
	startTime time.Time
	mut       sync.Mutex
}

// New returns a bar for total datasets drawn on w.
func New(w io.Writer, total int) *Bar {
	bar := &Bar{
		w:         w,
		total:     total,
		tag:       "#",
		format:    "\r[%-50s] %3d%% %" + fmt.Sprintf("%d", digitCount(total)) + "d/%d datasets %-11s",
		startTime: time.Now(),
	}

	return bar
}

func (b *Bar) Incr() {
	b.mut.Lock()
	b.count++
	b.mut.Unlock()
}

func (b *Bar) Flush() {
	b.calculate()
	b.display()
}

func (b *Bar) calculate() {
	b.mut.Lock()
	if b.count >= b.total {
		b.percent = 100
	} else {
		b.percent = b.count * 100 / b.total
	}
	b.mut.Unlock()
}

func (b *Bar) display() {
	b.mut.Lock()
	elapsed := time.Since(b.startTime).Truncate(time.Millisecond)
	fmt.Fprintf(b.w, b.format, strings.Repeat(b.tag, b.percent/2), b.percent, b.count, b.total, elapsed)
	b.mut.Unlock()
}

func (b *Bar) Finish() {
	fmt.Fprintln(b.w)
}

func digitCount(n int) int {
	if n < 1 {
		return 1
	}
	return int(math.Floor(math.Log10(float64(n)))) + 1
}
