package joiner

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryJoinerOrder(t *testing.T) {
	var buf bytes.Buffer
	j := NewMem(&buf)

	require.NoError(t, j.Add(2, []byte("c")))
	require.NoError(t, j.Add(1, []byte("b")))
	assert.Empty(t, buf.String())

	require.NoError(t, j.Add(0, []byte("a")))
	assert.Equal(t, "abc", buf.String())
	require.NoError(t, j.Merge())
}

func TestMemoryJoinerConcurrent(t *testing.T) {
	var buf bytes.Buffer
	j := NewMem(&buf)

	var wg sync.WaitGroup
	for i := 9; i >= 0; i-- {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			assert.NoError(t, j.Add(id, []byte{byte('0' + id)}))
		}(i)
	}
	wg.Wait()

	require.NoError(t, j.Merge())
	assert.Equal(t, "0123456789", buf.String())
}

func TestMemoryJoinerMissing(t *testing.T) {
	j := NewMem(&bytes.Buffer{})
	require.NoError(t, j.Add(1, []byte("b")))
	assert.Error(t, j.Merge())
}

func TestMemoryJoinerDuplicate(t *testing.T) {
	j := NewMem(&bytes.Buffer{})
	require.NoError(t, j.Add(0, []byte("a")))
	assert.Error(t, j.Add(0, []byte("a")))

	require.NoError(t, j.Add(2, []byte("c")))
	assert.Error(t, j.Add(2, []byte("c")))
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestMemoryJoinerWriteError(t *testing.T) {
	j := NewMem(failWriter{})
	assert.EqualError(t, j.Add(0, []byte("a")), "disk full")
}

var _ Joiner = (*MemoryJoiner)(nil)
