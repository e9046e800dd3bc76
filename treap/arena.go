package treap

import (
	"fmt"
	"math/rand/v2"
)

// Handle references the root node of a sequence within the arena of a Treap.
// The zero Handle is the empty sequence.
//
// Handles are values, but the nodes behind them are not: every mutating
// operation consumes the handle it is given and returns the handle of the
// resulting sequence. Clients must not use a consumed handle again.
type Handle uint32

// Nil is the handle of the empty sequence.
const Nil Handle = 0

// maxNodes limits the arena to what a Handle is able to address.
const maxNodes = 1<<31 - 1

type node[T Scalar] struct {
	value T
	sum   T // sum of values in this subtree
	size  int
	prio  uint64
	left  Handle
	right Handle
	// pending operations for the children of this node
	rev      bool
	assigned bool
	assignTo T
	add      T
}

// Treap is an arena of treap nodes together with the random source which
// draws node priorities. Any number of sequences may share an arena; they
// are kept apart by their root handles.
type Treap[T Scalar] struct {
	cfg   Config
	rnd   *rand.Rand
	nodes []node[T] // nodes[0] is a sentinel for Nil with size and sum 0
	free  []Handle
}

// New creates an empty arena with validated configuration.
func New[T Scalar](cfg Config) (*Treap[T], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	t := &Treap[T]{
		cfg:   cfg,
		rnd:   rand.New(cfg.Source),
		nodes: make([]node[T], 1, cfg.Capacity+1),
	}
	return t, nil
}

// Config returns a copy of the effective configuration.
func (t *Treap[T]) Config() Config {
	return t.cfg
}

// Allocated returns the number of node slots the arena has grown to.
func (t *Treap[T]) Allocated() int {
	return len(t.nodes) - 1
}

// Live returns the number of nodes currently owned by some sequence.
func (t *Treap[T]) Live() int {
	return len(t.nodes) - 1 - len(t.free)
}

// Size returns the number of elements of the sequence h.
func (t *Treap[T]) Size(h Handle) int {
	if t.validate(h) != nil {
		return 0
	}
	return t.nodes[h].size
}

// Sum returns the sum of all elements of the sequence h.
func (t *Treap[T]) Sum(h Handle) T {
	if t.validate(h) != nil {
		return 0
	}
	return t.nodes[h].sum
}

// newNode allocates a single-element node with a fresh priority.
// Pointers into t.nodes are invalid after a call to newNode.
func (t *Treap[T]) newNode(v T) Handle {
	var h Handle
	if n := len(t.free); n > 0 {
		h = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		assert(len(t.nodes) <= maxNodes, "treap arena exhausted")
		t.nodes = append(t.nodes, node[T]{})
		h = Handle(len(t.nodes) - 1)
	}
	t.nodes[h] = node[T]{
		value: v,
		sum:   v,
		size:  1,
		prio:  t.rnd.Uint64(),
	}
	return h
}

// release returns a single node to the free list. Links of the node are lost.
func (t *Treap[T]) release(h Handle) {
	assert(h != Nil, "release called for Nil")
	t.nodes[h] = node[T]{}
	t.free = append(t.free, h)
}

// validate checks that h is Nil or references a live node. It cannot tell a
// root from an inner node, nor a recycled slot from the original owner.
func (t *Treap[T]) validate(h Handle) error {
	if h == Nil {
		return nil
	}
	if int(h) >= len(t.nodes) || t.nodes[h].size == 0 {
		return fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}
	return nil
}
