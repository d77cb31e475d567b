package joiner

// Joiner collects numbered report blocks and emits them in id order.
type Joiner interface {
	Add(id int, block []byte) error
	Merge() error
}
