package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/greyh4t/groupsum/reducer"
	"github.com/greyh4t/groupsum/zhttp"
)

// DefaultPath is read when no dataset is named.
const DefaultPath = "data/2022/day1"

// Stdin names the standard input as a dataset.
const Stdin = "-"

type Fetcher interface {
	Get(url string, headers map[string]string, retry int) (int, []byte, error)
}

type Opener struct {
	HTTP    Fetcher
	Headers map[string]string
	Retry   int
	Stdin   io.Reader
}

// New returns an Opener that reads URLs through z.
func New(z *zhttp.Zhttp, headers map[string]string, retry int) *Opener {
	o := &Opener{
		Headers: headers,
		Retry:   retry,
		Stdin:   os.Stdin,
	}
	if z != nil {
		o.HTTP = z
	}
	return o
}

func IsURL(name string) bool {
	return strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://")
}

// Open returns the contents of a dataset. Every failure is a
// *reducer.ResourceError.
func (o *Opener) Open(name string) (io.ReadCloser, error) {
	switch {
	case name == Stdin:
		if o.Stdin == nil {
			return nil, &reducer.ResourceError{Name: name, Err: fmt.Errorf("stdin not available")}
		}
		return io.NopCloser(o.Stdin), nil
	case IsURL(name):
		return o.fetch(name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, &reducer.ResourceError{Name: name, Err: err}
	}
	return f, nil
}

func (o *Opener) fetch(url string) (io.ReadCloser, error) {
	if o.HTTP == nil {
		return nil, &reducer.ResourceError{Name: url, Err: fmt.Errorf("http client not configured")}
	}

	statusCode, data, err := o.HTTP.Get(url, o.Headers, o.Retry)
	if err != nil {
		return nil, &reducer.ResourceError{Name: url, Err: err}
	}

	if statusCode/100 != 2 {
		return nil, &reducer.ResourceError{Name: url, Err: fmt.Errorf("http status code: %d", statusCode)}
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Reduce opens name and reduces its blocks.
func (o *Opener) Reduce(name string, opts ...reducer.Option) (*reducer.Result, error) {
	r, err := o.Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return reducer.Reduce(name, r, opts...)
}
