package joiner

import (
	"fmt"
	"io"
	"sync"
)

type MemoryJoiner struct {
	l      sync.Mutex
	blocks map[int][]byte
	w      io.Writer
	index  int
}

func NewMem(w io.Writer) *MemoryJoiner {
	return &MemoryJoiner{
		blocks: map[int][]byte{},
		w:      w,
	}
}

func (j *MemoryJoiner) Add(id int, block []byte) error {
	j.l.Lock()
	defer j.l.Unlock()

	if id < j.index {
		return fmt.Errorf("block %d already written", id)
	}
	if _, ok := j.blocks[id]; ok {
		return fmt.Errorf("block %d added twice", id)
	}
	j.blocks[id] = block
	return j.flush()
}

// flush writes every buffered block that directly follows the last one written.
func (j *MemoryJoiner) flush() error {
	for {
		block, ok := j.blocks[j.index]
		if !ok {
			return nil
		}
		_, err := j.w.Write(block)
		if err != nil {
			return err
		}
		delete(j.blocks, j.index)
		j.index++
	}
}

// Merge fails if a block is still waiting for a lower id.
func (j *MemoryJoiner) Merge() error {
	j.l.Lock()
	defer j.l.Unlock()

	if len(j.blocks) > 0 {
		return fmt.Errorf("missing block %d, %d blocks pending", j.index, len(j.blocks))
	}
	return nil
}
