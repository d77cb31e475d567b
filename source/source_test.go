package source

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greyh4t/groupsum/reducer"
	"github.com/greyh4t/groupsum/zhttp"
)

const input = "100\n200\n\n300\n\n50\n50\n\n"

type stubFetcher struct {
	code int
	body string
	err  error
}

func (s stubFetcher) Get(string, map[string]string, int) (int, []byte, error) {
	return s.code, []byte(s.body), s.err
}

func TestReduceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "day1")
	require.NoError(t, os.WriteFile(path, []byte(input), 0644))

	o := &Opener{}
	res, err := o.Reduce(path)
	require.NoError(t, err)
	assert.Equal(t, []int{300, 300, 100}, res.Sums)
	assert.Equal(t, 700, res.Top)
}

func TestReduceMissingFile(t *testing.T) {
	o := &Opener{}
	_, err := o.Reduce(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, reducer.ErrResource)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReduceStdin(t *testing.T) {
	o := &Opener{Stdin: strings.NewReader(input)}
	res, err := o.Reduce(Stdin)
	require.NoError(t, err)
	assert.Equal(t, 700, res.Top)

	o = &Opener{}
	_, err = o.Reduce(Stdin)
	assert.ErrorIs(t, err, reducer.ErrResource)
}

func TestReduceURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2022/day/1/input" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(input))
	}))
	defer srv.Close()

	z, err := zhttp.New(time.Second, "", false)
	require.NoError(t, err)
	o := New(z, nil, 1)

	res, err := o.Reduce(srv.URL + "/2022/day/1/input")
	require.NoError(t, err)
	assert.Equal(t, []int{300, 300, 100}, res.Sums)

	_, err = o.Reduce(srv.URL + "/nope")
	require.ErrorIs(t, err, reducer.ErrResource)
	assert.Contains(t, err.Error(), "404")
}

func TestReduceURLErrors(t *testing.T) {
	o := &Opener{}
	_, err := o.Reduce("https://example.invalid/input")
	assert.ErrorIs(t, err, reducer.ErrResource)

	o = &Opener{HTTP: stubFetcher{err: errors.New("dial failed")}}
	_, err = o.Reduce("https://example.invalid/input")
	assert.ErrorIs(t, err, reducer.ErrResource)

	o = &Opener{HTTP: stubFetcher{code: 200, body: "1\n\nx\n"}}
	_, err = o.Reduce("http://example.invalid/input")
	assert.ErrorIs(t, err, reducer.ErrParse)
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://adventofcode.com/2022/day/1/input"))
	assert.True(t, IsURL("http://localhost/x"))
	assert.False(t, IsURL("data/2022/day1"))
	assert.False(t, IsURL(Stdin))
}
