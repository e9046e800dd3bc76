/*
Package treap implements sequences of scalars as implicit-key treaps with
lazy range updates.

A treap is a binary tree which is ordered by position (inorder traversal
yields the sequence) and heap-ordered by a random priority per node. The
random priorities keep the expected height logarithmic without any
rotation bookkeeping. Every operation is composed from two primitives:

	Split(h, k)  =>  first k elements, remainder
	Merge(a, b)  =>  concatenation of a and b

Range updates (add a constant, assign a constant, reverse) are recorded as
tags on the root of the affected subtree and pushed one level down only
when an operation descends into that subtree. Each node carries the size
and the sum of its subtree, so range sums are answered from aggregates.

Nodes live in an arena owned by a Treap value. A sequence is referenced by
the Handle of its root node; mutating operations consume a handle and
return the handle of the resulting sequence:

	tr, _ := treap.New[int64](treap.Config{Seed: 42})
	h := tr.Build(1, 2, 3, 4, 5)
	h, _ = tr.Insert(h, 2, 10, 20)     // 1 2 10 20 3 4 5
	h, _ = tr.RangeAdd(h, 1, 4, 5)     // 1 7 15 25 3 4 5
	s, _ := tr.RangeSum(h, 0, 3)       // 23

Positions are 0-based, ranges are half-open [l, r). Out of range arguments
are rejected with ErrIndexOutOfRange, never clamped.

A Treap is not safe for concurrent use.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package treap

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'lazyseq'
func tracer() tracing.Trace {
	return tracing.Select("lazyseq")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
