package treap

import "fmt"

// All mutating operations below consume h and return the handle of the
// resulting sequence. On error nothing is changed and h is returned as is.

// Insert inserts values into sequence h right before position pos.
// pos may equal the length of h, which appends the values.
func (t *Treap[T]) Insert(h Handle, pos int, values ...T) (Handle, error) {
	if err := t.validate(h); err != nil {
		return h, err
	}
	if size := t.nodes[h].size; pos < 0 || pos > size {
		return h, fmt.Errorf("%w: insert at %d, length %d", ErrIndexOutOfRange, pos, size)
	}
	if len(values) == 0 {
		return h, nil
	}
	a, b := t.split(h, pos)
	mid := t.Build(values...)
	out := t.merge(t.merge(a, mid), b)
	t.verify(out, "insert")
	return out, nil
}

// Erase removes the elements in [l, r) from sequence h. The nodes of the
// removed elements are returned to the arena.
func (t *Treap[T]) Erase(h Handle, l, r int) (Handle, error) {
	return t.onRange(h, l, r, "erase", func(mid Handle) Handle {
		n := t.teardown(mid)
		tracer().Debugf("treap: erased [%d,%d), released %d nodes", l, r, n)
		return Nil
	})
}

// RangeAdd adds delta to every element in [l, r).
func (t *Treap[T]) RangeAdd(h Handle, l, r int, delta T) (Handle, error) {
	return t.onRange(h, l, r, "add", func(mid Handle) Handle {
		t.applyAdd(mid, delta)
		return mid
	})
}

// RangeAssign sets every element in [l, r) to value.
func (t *Treap[T]) RangeAssign(h Handle, l, r int, value T) (Handle, error) {
	return t.onRange(h, l, r, "assign", func(mid Handle) Handle {
		t.applyAssign(mid, value)
		return mid
	})
}

// RangeReverse reverses the order of the elements in [l, r).
func (t *Treap[T]) RangeReverse(h Handle, l, r int) (Handle, error) {
	return t.onRange(h, l, r, "reverse", func(mid Handle) Handle {
		t.applyReverse(mid)
		return mid
	})
}

// RangeSum returns the sum of the elements in [l, r). The structure of h is
// left as it is, so h remains valid.
func (t *Treap[T]) RangeSum(h Handle, l, r int) (T, error) {
	if err := t.checkRange(h, l, r); err != nil {
		return 0, err
	}
	return t.rangeSum(h, l, r), nil
}

// Get returns the element at position pos. h remains valid.
func (t *Treap[T]) Get(h Handle, pos int) (T, error) {
	if err := t.validate(h); err != nil {
		return 0, err
	}
	if size := t.nodes[h].size; pos < 0 || pos >= size {
		return 0, fmt.Errorf("%w: get at %d, length %d", ErrIndexOutOfRange, pos, size)
	}
	for h != Nil {
		t.push(h)
		n := &t.nodes[h]
		leftSize := t.nodes[n.left].size
		switch {
		case pos < leftSize:
			h = n.left
		case pos == leftSize:
			return n.value, nil
		default:
			pos -= leftSize + 1
			h = n.right
		}
	}
	assert(false, "Get: position routing exceeded subtree size")
	return 0, ErrInvariantViolation
}

// onRange cuts [l, r) out of h, hands it to fn and glues fn's result back
// in place.
func (t *Treap[T]) onRange(h Handle, l, r int, op string, fn func(mid Handle) Handle) (Handle, error) {
	if err := t.checkRange(h, l, r); err != nil {
		return h, err
	}
	if l == r {
		return h, nil
	}
	a, rest := t.split(h, l)
	mid, c := t.split(rest, r-l)
	mid = fn(mid)
	out := t.merge(t.merge(a, mid), c)
	t.verify(out, op)
	return out, nil
}

func (t *Treap[T]) checkRange(h Handle, l, r int) error {
	if err := t.validate(h); err != nil {
		return err
	}
	if size := t.nodes[h].size; l < 0 || l > r || r > size {
		return fmt.Errorf("%w: range [%d,%d), length %d", ErrIndexOutOfRange, l, r, size)
	}
	return nil
}

// rangeSum sums [l, r) of subtree h, with 0 <= l <= r <= size(h). Tags are
// pushed on the way down but no node changes its place.
func (t *Treap[T]) rangeSum(h Handle, l, r int) T {
	if h == Nil || l >= r {
		return 0
	}
	if l == 0 && r == t.nodes[h].size {
		return t.nodes[h].sum
	}
	t.push(h)
	n := &t.nodes[h]
	leftSize := t.nodes[n.left].size
	var sum T
	if l < leftSize {
		sum += t.rangeSum(n.left, l, min(r, leftSize))
	}
	if l <= leftSize && leftSize < r {
		sum += n.value
	}
	if r > leftSize+1 {
		sum += t.rangeSum(n.right, max(l-leftSize-1, 0), r-leftSize-1)
	}
	return sum
}

// verify runs the invariant checker on h if the arena is in debug mode.
func (t *Treap[T]) verify(h Handle, op string) {
	if !t.cfg.Debug {
		return
	}
	if err := t.Check(h); err != nil {
		tracer().Errorf("treap: %s left a corrupt tree: %v", op, err)
		assert(false, err.Error())
	}
}
