package lazyseq

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"fmt"
	"io"
	"iter"

	"github.com/npillmayer/lazyseq/treap"
)

// Sequence is an ordered sequence of scalars with positional editing and
// lazy range updates.
//
// A sequence created by
//
//	Sequence[int]{}
//
// is a valid object and behaves like the empty sequence. It allocates its
// arena on first use.
//
// Methods that take positions are 0-based; ranges are half-open [l, r).
// Positions outside the sequence are reported as treap.ErrIndexOutOfRange.
// A failing operation leaves the sequence unchanged.
//
// A Sequence must not be copied after first use, as copies would share
// nodes without knowing of each other.
type Sequence[T treap.Scalar] struct {
	tr   *treap.Treap[T]
	root treap.Handle
}

// New creates a sequence of values within arena tr.
func New[T treap.Scalar](tr *treap.Treap[T], values ...T) (*Sequence[T], error) {
	if tr == nil {
		return nil, fmt.Errorf("%w: arena is nil", ErrIllegalArguments)
	}
	return &Sequence[T]{tr: tr, root: tr.Build(values...)}, nil
}

// Of creates a sequence of values within a new arena with default
// configuration.
func Of[T treap.Scalar](values ...T) *Sequence[T] {
	seq := &Sequence[T]{}
	seq.root = seq.arena().Build(values...)
	return seq
}

func (seq *Sequence[T]) arena() *treap.Treap[T] {
	if seq.tr == nil {
		tr, err := treap.New[T](treap.Config{})
		assert(err == nil, "Sequence: cannot create default arena")
		seq.tr = tr
	}
	return seq.tr
}

// Treap returns the arena of the sequence together with the handle of its
// root, for clients which want to use the handle based API.
func (seq *Sequence[T]) Treap() (*treap.Treap[T], treap.Handle) {
	return seq.arena(), seq.root
}

// Len returns the number of elements.
func (seq *Sequence[T]) Len() int {
	if seq.tr == nil {
		return 0
	}
	return seq.tr.Size(seq.root)
}

// IsVoid reports whether the sequence has no elements.
func (seq *Sequence[T]) IsVoid() bool {
	return seq.root == treap.Nil
}

// At returns the element at position i.
func (seq *Sequence[T]) At(i int) (T, error) {
	return seq.arena().Get(seq.root, i)
}

// Sum returns the sum of all elements.
func (seq *Sequence[T]) Sum() T {
	if seq.tr == nil {
		return 0
	}
	return seq.tr.Sum(seq.root)
}

// RangeSum returns the sum of the elements in [l, r).
func (seq *Sequence[T]) RangeSum(l, r int) (T, error) {
	return seq.arena().RangeSum(seq.root, l, r)
}

// Insert inserts values right before position pos. pos may equal Len().
func (seq *Sequence[T]) Insert(pos int, values ...T) error {
	return seq.update(seq.arena().Insert(seq.root, pos, values...))
}

// Append appends values at the end of the sequence.
func (seq *Sequence[T]) Append(values ...T) error {
	return seq.Insert(seq.Len(), values...)
}

// Erase removes the elements in [l, r).
func (seq *Sequence[T]) Erase(l, r int) error {
	return seq.update(seq.arena().Erase(seq.root, l, r))
}

// Add adds delta to every element in [l, r).
func (seq *Sequence[T]) Add(l, r int, delta T) error {
	return seq.update(seq.arena().RangeAdd(seq.root, l, r, delta))
}

// Assign sets every element in [l, r) to value.
func (seq *Sequence[T]) Assign(l, r int, value T) error {
	return seq.update(seq.arena().RangeAssign(seq.root, l, r, value))
}

// Reverse reverses the order of the elements in [l, r).
func (seq *Sequence[T]) Reverse(l, r int) error {
	return seq.update(seq.arena().RangeReverse(seq.root, l, r))
}

func (seq *Sequence[T]) update(h treap.Handle, err error) error {
	if err != nil {
		return err
	}
	seq.root = h
	return nil
}

// Values returns all elements in order.
func (seq *Sequence[T]) Values() []T {
	if seq.tr == nil {
		return nil
	}
	return seq.tr.ToSequence(seq.root)
}

// All returns an iterator over positions and elements in order.
func (seq *Sequence[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if seq.tr == nil {
			return
		}
		seq.tr.ForEach(seq.root, yield)
	}
}

// String returns the elements in the format of a Go slice.
func (seq *Sequence[T]) String() string {
	return fmt.Sprint(seq.Values())
}

// Split splits the sequence right before position i into two new sequences
// of the same arena. Split(S,i) => S1=s0,...,si-1 and S2=si,...,sn.
// On success seq is left empty.
func (seq *Sequence[T]) Split(i int) (*Sequence[T], *Sequence[T], error) {
	tr := seq.arena()
	left, right, err := tr.Split(seq.root, i)
	if err != nil {
		return nil, nil, err
	}
	seq.root = treap.Nil
	tracer().Debugf("sequence split at %d", i)
	return &Sequence[T]{tr: tr, root: left}, &Sequence[T]{tr: tr, root: right}, nil
}

// Concat appends the elements of others to seq. All sequences must share
// seq's arena; a zero sequence adopts the arena of the first of others.
// On success the others are left empty.
func (seq *Sequence[T]) Concat(others ...*Sequence[T]) error {
	tr := seq.tr
	for _, other := range others {
		if other == nil || other == seq {
			return fmt.Errorf("%w: cannot concat nil or self", ErrIllegalArguments)
		}
		if other.tr == nil {
			continue
		}
		if tr == nil {
			tr = other.tr
		}
		if other.tr != tr {
			return ErrForeignSequence
		}
	}
	seq.tr = tr
	for _, other := range others {
		if other.tr == nil || other.root == treap.Nil {
			continue
		}
		h, err := tr.Merge(seq.root, other.root)
		if err != nil {
			return err
		}
		seq.root, other.root = h, treap.Nil
	}
	return nil
}

// Release returns all nodes of the sequence to its arena and leaves the
// sequence empty.
func (seq *Sequence[T]) Release() {
	if seq.tr == nil {
		return
	}
	err := seq.tr.Teardown(seq.root)
	assert(err == nil, "Sequence.Release: invalid root")
	seq.root = treap.Nil
}

// Check validates the internal structure of the sequence.
func (seq *Sequence[T]) Check() error {
	return seq.arena().Check(seq.root)
}

// Stats reports the shape of the sequence's tree.
func (seq *Sequence[T]) Stats() treap.Stats {
	return seq.arena().Stats(seq.root)
}

// WriteDot outputs the internal structure of the sequence in Graphviz DOT
// format (for debugging purposes).
func (seq *Sequence[T]) WriteDot(w io.Writer) error {
	return seq.arena().WriteDot(seq.root, w)
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
