package treap

// pull recomputes size and sum of h from its children. The children have to
// be up to date; tags of h itself are not looked at, as they only concern
// the children.
func (t *Treap[T]) pull(h Handle) {
	if h == Nil {
		return
	}
	n := &t.nodes[h]
	l, r := &t.nodes[n.left], &t.nodes[n.right]
	n.size = 1 + l.size + r.size
	n.sum = n.value + l.sum + r.sum
}

// applyAssign sets every value in subtree h to x. An add pending for the
// children is dropped, as it would be overwritten anyway.
func (t *Treap[T]) applyAssign(h Handle, x T) {
	if h == Nil {
		return
	}
	n := &t.nodes[h]
	n.assigned = true
	n.assignTo = x
	n.add = 0
	n.value = x
	n.sum = T(n.size) * x
}

// applyAdd adds d to every value in subtree h. If an assign is pending, d is
// folded into the assigned value instead of being tracked separately.
func (t *Treap[T]) applyAdd(h Handle, d T) {
	if h == Nil {
		return
	}
	n := &t.nodes[h]
	if n.assigned {
		n.assignTo += d
	} else {
		n.add += d
	}
	n.value += d
	n.sum += T(n.size) * d
}

// applyReverse flips the order of subtree h. Value and sum of h do not
// change; the children are swapped when h is pushed.
func (t *Treap[T]) applyReverse(h Handle) {
	if h == Nil {
		return
	}
	t.nodes[h].rev = !t.nodes[h].rev
}

// push hands the pending operations of h down to its children, in the order
// assign, add, reverse. It must be called before any child of h is
// inspected.
func (t *Treap[T]) push(h Handle) {
	if h == Nil {
		return
	}
	n := &t.nodes[h]
	if n.assigned {
		t.applyAssign(n.left, n.assignTo)
		t.applyAssign(n.right, n.assignTo)
		n.assigned = false
		n.assignTo = 0
	}
	if n.add != 0 {
		t.applyAdd(n.left, n.add)
		t.applyAdd(n.right, n.add)
		n.add = 0
	}
	if n.rev {
		n.left, n.right = n.right, n.left
		t.applyReverse(n.left)
		t.applyReverse(n.right)
		n.rev = false
	}
}

// tagged reports whether h carries pending operations for its children.
func (n *node[T]) tagged() bool {
	return n.rev || n.assigned || n.add != 0
}
