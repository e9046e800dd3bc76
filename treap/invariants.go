package treap

import (
	"fmt"
	"math"
)

// Check validates the structural invariants of sequence h:
//
//   - every node is live and owned exactly once,
//   - no child has a higher priority than its parent,
//   - size and sum of every node agree with its children and pending tags.
//
// Violations are reported as ErrInvariantViolation. Check does not push tags
// and does not modify the arena.
func (t *Treap[T]) Check(h Handle) error {
	if err := t.validate(h); err != nil {
		return err
	}
	seen := make([]bool, len(t.nodes))
	_, err := t.checkNode(h, seen)
	return err
}

func (t *Treap[T]) checkNode(h Handle, seen []bool) (depth int, err error) {
	if h == Nil {
		return 0, nil
	}
	if int(h) >= len(t.nodes) {
		return 0, fmt.Errorf("%w: handle %d outside of arena", ErrInvariantViolation, h)
	}
	if seen[h] {
		return 0, fmt.Errorf("%w: node %d reachable twice", ErrInvariantViolation, h)
	}
	seen[h] = true
	n := &t.nodes[h]
	if n.size == 0 {
		return 0, fmt.Errorf("%w: node %d has been released", ErrInvariantViolation, h)
	}
	l, r := &t.nodes[n.left], &t.nodes[n.right]
	if n.left != Nil && l.prio > n.prio || n.right != Nil && r.prio > n.prio {
		return 0, fmt.Errorf("%w: heap order broken at node %d", ErrInvariantViolation, h)
	}
	if n.size != 1+l.size+r.size {
		return 0, fmt.Errorf("%w: node %d has size %d, children sum up to %d",
			ErrInvariantViolation, h, n.size, 1+l.size+r.size)
	}
	below := T(l.size + r.size)
	var want T
	switch {
	case n.assigned:
		if n.value != n.assignTo {
			return 0, fmt.Errorf("%w: node %d value differs from pending assign", ErrInvariantViolation, h)
		}
		want = n.value + n.assignTo*below
	default:
		want = n.value + l.sum + r.sum + n.add*below
	}
	if !sameScalar(n.sum, want) {
		return 0, fmt.Errorf("%w: node %d has sum %v, expected %v", ErrInvariantViolation, h, n.sum, want)
	}
	ldepth, err := t.checkNode(n.left, seen)
	if err != nil {
		return 0, err
	}
	rdepth, err := t.checkNode(n.right, seen)
	if err != nil {
		return 0, err
	}
	return 1 + max(ldepth, rdepth), nil
}

// sameScalar compares sums. Floating point sums depend on the order of
// additions, which is different for a node and its children.
func sameScalar[T Scalar](a, b T) bool {
	switch any(a).(type) {
	case float32, float64:
		x, y := float64(a), float64(b)
		tol := 1e-9 * max(1, math.Abs(x), math.Abs(y))
		return math.Abs(x-y) <= tol
	}
	return a == b
}

// Stats describes the shape of a sequence's tree.
type Stats struct {
	Size   int // number of elements
	Height int // 0 for the empty sequence
	Tagged int // nodes with operations pending for their children
}

// Stats returns shape statistics for sequence h. It does not push tags.
func (t *Treap[T]) Stats(h Handle) Stats {
	var st Stats
	if t.validate(h) != nil || h == Nil {
		return st
	}
	type entry struct {
		h     Handle
		depth int
	}
	stack := []entry{{h, 1}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[e.h]
		st.Size++
		st.Height = max(st.Height, e.depth)
		if n.tagged() {
			st.Tagged++
		}
		if n.left != Nil {
			stack = append(stack, entry{n.left, e.depth + 1})
		}
		if n.right != Nil {
			stack = append(stack, entry{n.right, e.depth + 1})
		}
	}
	return st
}
