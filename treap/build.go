package treap

// Build creates a sequence from values in expected linear time and returns
// its handle. Build of no values returns Nil.
//
// Nodes are linked as a Cartesian tree: the stack holds the right spine of
// the tree built so far, with non-increasing priorities from bottom to top.
func (t *Treap[T]) Build(values ...T) Handle {
	if len(values) == 0 {
		return Nil
	}
	spine := make([]Handle, 0, 32)
	for _, v := range values {
		cur := t.newNode(v)
		last := Nil
		for len(spine) > 0 && t.nodes[spine[len(spine)-1]].prio < t.nodes[cur].prio {
			last = spine[len(spine)-1]
			spine = spine[:len(spine)-1]
			t.pull(last)
		}
		t.nodes[cur].left = last
		if len(spine) > 0 {
			t.nodes[spine[len(spine)-1]].right = cur
		}
		spine = append(spine, cur)
	}
	for i := len(spine) - 1; i >= 0; i-- {
		t.pull(spine[i])
	}
	tracer().Debugf("treap: built sequence of %d elements", len(values))
	t.verify(spine[0], "build")
	return spine[0]
}
