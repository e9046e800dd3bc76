package treap

import "fmt"

// Split splits sequence h right before position k and returns the handles of
// the first k elements and of the remainder. h is consumed.
func (t *Treap[T]) Split(h Handle, k int) (Handle, Handle, error) {
	if err := t.validate(h); err != nil {
		return h, Nil, err
	}
	if size := t.nodes[h].size; k < 0 || k > size {
		return h, Nil, fmt.Errorf("%w: split at %d, length %d", ErrIndexOutOfRange, k, size)
	}
	left, right := t.split(h, k)
	t.verify(left, "split")
	t.verify(right, "split")
	return left, right, nil
}

// Merge concatenates sequences a and b, consuming both. a and b must be
// distinct sequences of this arena.
func (t *Treap[T]) Merge(a, b Handle) (Handle, error) {
	if err := t.validate(a); err != nil {
		return Nil, err
	}
	if err := t.validate(b); err != nil {
		return Nil, err
	}
	if a != Nil && a == b {
		return Nil, fmt.Errorf("%w: cannot merge %d with itself", ErrInvalidHandle, a)
	}
	h := t.merge(a, b)
	t.verify(h, "merge")
	return h, nil
}

func (t *Treap[T]) split(h Handle, k int) (Handle, Handle) {
	if h == Nil {
		return Nil, Nil
	}
	t.push(h)
	n := &t.nodes[h]
	leftSize := t.nodes[n.left].size
	if leftSize >= k {
		a, b := t.split(n.left, k)
		n.left = b
		t.pull(h)
		return a, h
	}
	a, b := t.split(n.right, k-leftSize-1)
	n.right = a
	t.pull(h)
	return h, b
}

func (t *Treap[T]) merge(a, b Handle) Handle {
	if a == Nil {
		return b
	}
	if b == Nil {
		return a
	}
	if t.nodes[a].prio > t.nodes[b].prio {
		t.push(a)
		n := &t.nodes[a]
		n.right = t.merge(n.right, b)
		t.pull(a)
		return a
	}
	t.push(b)
	n := &t.nodes[b]
	n.left = t.merge(a, n.left)
	t.pull(b)
	return b
}
