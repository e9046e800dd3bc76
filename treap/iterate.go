package treap

import "iter"

// ToSequence returns the elements of sequence h in order.
func (t *Treap[T]) ToSequence(h Handle) []T {
	if t.validate(h) != nil || h == Nil {
		return nil
	}
	out := make([]T, 0, t.nodes[h].size)
	t.ForEach(h, func(_ int, v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// ForEach walks the elements of sequence h in order.
//
// Iteration stops early if fn returns false. fn must not modify the arena.
func (t *Treap[T]) ForEach(h Handle, fn func(pos int, v T) bool) {
	if fn == nil || t.validate(h) != nil {
		return
	}
	// Explicit stack: the walk must not depend on the shape of the tree.
	stack := make([]Handle, 0, 64)
	pos := 0
	for h != Nil || len(stack) > 0 {
		for h != Nil {
			t.push(h)
			stack = append(stack, h)
			h = t.nodes[h].left
		}
		h = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(pos, t.nodes[h].value) {
			return
		}
		pos++
		h = t.nodes[h].right
	}
}

// All returns an iterator over positions and elements of sequence h.
func (t *Treap[T]) All(h Handle) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		t.ForEach(h, yield)
	}
}

// Teardown releases all nodes of sequence h to the arena. h is consumed.
func (t *Treap[T]) Teardown(h Handle) error {
	if err := t.validate(h); err != nil {
		return err
	}
	n := t.teardown(h)
	tracer().Debugf("treap: teardown released %d nodes", n)
	return nil
}

// teardown releases subtree h and returns the number of released nodes.
func (t *Treap[T]) teardown(h Handle) int {
	if h == Nil {
		return 0
	}
	count := 0
	stack := []Handle{h}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[cur]
		if n.left != Nil {
			stack = append(stack, n.left)
		}
		if n.right != Nil {
			stack = append(stack, n.right)
		}
		t.release(cur)
		count++
	}
	return count
}
