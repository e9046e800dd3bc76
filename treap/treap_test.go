package treap

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	expect "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTreap(t *testing.T, seed uint64) *Treap[int64] {
	t.Helper()
	tr, err := New[int64](Config{Seed: seed, Debug: true})
	require.NoError(t, err)
	return tr
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New[int64](Config{Capacity: -1})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for negative capacity, got %v", err)
	}
}

func TestNewStoresSource(t *testing.T) {
	tr, err := New[int64](Config{Seed: 3})
	require.NoError(t, err)
	expect.NotNil(t, tr.Config().Source, "expected default source in normalized config")
	expect.Equal(t, 0, tr.Allocated())
	expect.Equal(t, 0, tr.Live())
}

func TestScenario(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lazyseq")
	defer teardown()
	//
	tr := newTestTreap(t, 1)
	h := tr.Build(1, 2, 3, 4, 5)
	require.Equal(t, []int64{1, 2, 3, 4, 5}, tr.ToSequence(h))

	h, err := tr.Insert(h, 2, 10, 20)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 10, 20, 3, 4, 5}, tr.ToSequence(h))

	h, err = tr.RangeAdd(h, 1, 4, 5)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 7, 15, 25, 3, 4, 5}, tr.ToSequence(h))

	h, err = tr.RangeAssign(h, 3, 5, 7)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 7, 15, 7, 7, 4, 5}, tr.ToSequence(h))

	h, err = tr.RangeReverse(h, 0, 4)
	require.NoError(t, err)
	require.Equal(t, []int64{7, 15, 7, 1, 7, 4, 5}, tr.ToSequence(h))

	sum, err := tr.RangeSum(h, 1, 5)
	require.NoError(t, err)
	expect.Equal(t, int64(30), sum)

	v, err := tr.Get(h, 2)
	require.NoError(t, err)
	expect.Equal(t, int64(7), v)

	h, err = tr.Erase(h, 2, 4)
	require.NoError(t, err)
	require.Equal(t, []int64{7, 15, 7, 4, 5}, tr.ToSequence(h))
	expect.Equal(t, 5, tr.Size(h))
	expect.Equal(t, int64(38), tr.Sum(h))
	expect.Equal(t, 5, tr.Live())
	require.NoError(t, tr.Check(h))
}

func TestRoundTrip(t *testing.T) {
	tr := newTestTreap(t, 2)
	for _, n := range []int{0, 1, 2, 3, 17, 1000} {
		values := make([]int64, n)
		for i := range values {
			values[i] = int64(i*7 - 50)
		}
		h := tr.Build(values...)
		if n == 0 {
			expect.Equal(t, Nil, h)
			expect.Nil(t, tr.ToSequence(h))
			continue
		}
		expect.Equal(t, values, tr.ToSequence(h), "round trip of %d values", n)
		expect.Equal(t, n, tr.Size(h))
		require.NoError(t, tr.Check(h))
	}
}

func TestSplitMergeInverse(t *testing.T) {
	tr := newTestTreap(t, 3)
	values := []int64{5, -3, 8, 1, 9, 2, 6, 4}
	h := tr.Build(values...)
	total := tr.Sum(h)
	for k := 0; k <= len(values); k++ {
		a, b, err := tr.Split(h, k)
		require.NoError(t, err)
		expect.Equal(t, values[:k], append([]int64{}, tr.ToSequence(a)...), "left part at k=%d", k)
		expect.Equal(t, k, tr.Size(a))
		expect.Equal(t, len(values)-k, tr.Size(b))
		h, err = tr.Merge(a, b)
		require.NoError(t, err)
		expect.Equal(t, values, tr.ToSequence(h))
		expect.Equal(t, total, tr.Sum(h))
	}
}

func TestSplitRejectsOutOfRange(t *testing.T) {
	tr := newTestTreap(t, 4)
	h := tr.Build(1, 2, 3)
	for _, k := range []int{-1, 4} {
		a, b, err := tr.Split(h, k)
		expect.ErrorIs(t, err, ErrIndexOutOfRange)
		expect.Equal(t, h, a)
		expect.Equal(t, Nil, b)
	}
	expect.Equal(t, []int64{1, 2, 3}, tr.ToSequence(h))
}

func TestMergeRejectsSelf(t *testing.T) {
	tr := newTestTreap(t, 4)
	h := tr.Build(1, 2, 3)
	_, err := tr.Merge(h, h)
	expect.ErrorIs(t, err, ErrInvalidHandle)
	m, err := tr.Merge(Nil, Nil)
	require.NoError(t, err)
	expect.Equal(t, Nil, m)
}

func TestBounds(t *testing.T) {
	tr := newTestTreap(t, 5)
	h := tr.Build(1, 2, 3, 4)
	_, err := tr.Get(h, tr.Size(h))
	expect.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = tr.Get(h, -1)
	expect.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = tr.Get(Nil, 0)
	expect.ErrorIs(t, err, ErrIndexOutOfRange)

	ranges := [][2]int{{3, 2}, {-1, 2}, {0, 5}, {5, 5}}
	for _, rg := range ranges {
		l, r := rg[0], rg[1]
		_, err = tr.RangeSum(h, l, r)
		expect.ErrorIs(t, err, ErrIndexOutOfRange, "sum [%d,%d)", l, r)
		out, err := tr.RangeAdd(h, l, r, 1)
		expect.ErrorIs(t, err, ErrIndexOutOfRange, "add [%d,%d)", l, r)
		expect.Equal(t, h, out)
		_, err = tr.RangeAssign(h, l, r, 1)
		expect.ErrorIs(t, err, ErrIndexOutOfRange)
		_, err = tr.RangeReverse(h, l, r)
		expect.ErrorIs(t, err, ErrIndexOutOfRange)
		_, err = tr.Erase(h, l, r)
		expect.ErrorIs(t, err, ErrIndexOutOfRange)
	}
	_, err = tr.Insert(h, 5, 9)
	expect.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = tr.Insert(h, -1, 9)
	expect.ErrorIs(t, err, ErrIndexOutOfRange)
	// nothing has been clamped or changed
	expect.Equal(t, []int64{1, 2, 3, 4}, tr.ToSequence(h))
}

func TestEmptyRangesAreNoOps(t *testing.T) {
	tr := newTestTreap(t, 6)
	h := tr.Build(1, 2, 3)
	for pos := 0; pos <= 3; pos++ {
		out, err := tr.RangeAssign(h, pos, pos, 100)
		require.NoError(t, err)
		expect.Equal(t, h, out)
		sum, err := tr.RangeSum(h, pos, pos)
		require.NoError(t, err)
		expect.Zero(t, sum)
	}
	out, err := tr.Insert(h, 1)
	require.NoError(t, err)
	expect.Equal(t, h, out)
	expect.Equal(t, []int64{1, 2, 3}, tr.ToSequence(h))
}

func TestInsertIntoEmpty(t *testing.T) {
	tr := newTestTreap(t, 7)
	h, err := tr.Insert(Nil, 0, 4, 5, 6)
	require.NoError(t, err)
	h, err = tr.Insert(h, 3, 7)
	require.NoError(t, err)
	h, err = tr.Insert(h, 0, 3)
	require.NoError(t, err)
	expect.Equal(t, []int64{3, 4, 5, 6, 7}, tr.ToSequence(h))
}

func TestAdditiveConsistency(t *testing.T) {
	tr := newTestTreap(t, 8)
	values := []int64{4, 8, 15, 16, 23, 42, 0, -7}
	h := tr.Build(values...)
	before, err := tr.RangeSum(h, 2, 6)
	require.NoError(t, err)
	h, err = tr.RangeAdd(h, 2, 6, -3)
	require.NoError(t, err)
	after, err := tr.RangeSum(h, 2, 6)
	require.NoError(t, err)
	expect.Equal(t, before-3*4, after)
	got := tr.ToSequence(h)
	for i, v := range values {
		if i >= 2 && i < 6 {
			expect.Equal(t, v-3, got[i])
		} else {
			expect.Equal(t, v, got[i], "element %d outside of range changed", i)
		}
	}
}

func TestAssignConsistency(t *testing.T) {
	tr := newTestTreap(t, 9)
	h := tr.Build(9, 8, 7, 6, 5, 4, 3, 2, 1)
	h, err := tr.RangeAssign(h, 1, 7, 11)
	require.NoError(t, err)
	for i := 1; i < 7; i++ {
		v, err := tr.Get(h, i)
		require.NoError(t, err)
		expect.Equal(t, int64(11), v)
	}
	sum, err := tr.RangeSum(h, 1, 7)
	require.NoError(t, err)
	expect.Equal(t, int64(66), sum)
	expect.Equal(t, []int64{9, 11, 11, 11, 11, 11, 11, 2, 1}, tr.ToSequence(h))
}

func TestReverseInvolution(t *testing.T) {
	tr := newTestTreap(t, 10)
	values := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	h := tr.Build(values...)
	h, err := tr.RangeReverse(h, 2, 9)
	require.NoError(t, err)
	expect.Equal(t, []int64{1, 2, 9, 8, 7, 6, 5, 4, 3, 10}, tr.ToSequence(h))
	h, err = tr.RangeReverse(h, 2, 9)
	require.NoError(t, err)
	expect.Equal(t, values, tr.ToSequence(h))
}

func TestComposedTagsOnSingleNode(t *testing.T) {
	tr := newTestTreap(t, 11)
	h := tr.Build(1, 2, 3)
	// assign, then add: the add folds into the pending assign
	tr.applyAssign(h, 5)
	tr.applyAdd(h, 2)
	n := tr.nodes[h]
	expect.True(t, n.assigned)
	expect.Equal(t, int64(7), n.assignTo)
	expect.Zero(t, n.add)
	expect.Equal(t, int64(21), n.sum)
	require.NoError(t, tr.Check(h))
	// add, then assign: the assign wins
	tr.push(h)
	tr.applyAdd(h, 4)
	tr.applyAssign(h, 1)
	n = tr.nodes[h]
	expect.Zero(t, n.add)
	expect.Equal(t, int64(3), n.sum)
	// two reverses cancel
	tr.applyReverse(h)
	tr.applyReverse(h)
	expect.False(t, tr.nodes[h].rev)
	expect.Equal(t, []int64{1, 1, 1}, tr.ToSequence(h))
}

func TestOverlappingPendingOperations(t *testing.T) {
	tr := newTestTreap(t, 12)
	h := tr.Build(0, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	var err error
	h, err = tr.RangeAdd(h, 0, 10, 10) // 10..19
	require.NoError(t, err)
	h, err = tr.RangeReverse(h, 0, 6) // 15 14 13 12 11 10 16 17 18 19
	require.NoError(t, err)
	h, err = tr.RangeAssign(h, 4, 8, 0) // 15 14 13 12 0 0 0 0 18 19
	require.NoError(t, err)
	h, err = tr.RangeAdd(h, 2, 6, 1) // 15 14 14 13 1 1 0 0 18 19
	require.NoError(t, err)
	h, err = tr.RangeReverse(h, 3, 10) // 15 14 14 19 18 0 0 1 1 13
	require.NoError(t, err)
	want := []int64{15, 14, 14, 19, 18, 0, 0, 1, 1, 13}
	expect.Equal(t, want, tr.ToSequence(h))
	for l := 0; l <= len(want); l++ {
		for r := l; r <= len(want); r++ {
			var expect int64
			for _, v := range want[l:r] {
				expect += v
			}
			got, err := tr.RangeSum(h, l, r)
			require.NoError(t, err)
			expect.Equal(t, expect, got, "sum [%d,%d)", l, r)
		}
	}
}

func TestRangeSumKeepsHandle(t *testing.T) {
	tr := newTestTreap(t, 13)
	h := tr.Build(3, 1, 4, 1, 5, 9, 2, 6)
	h, err := tr.RangeAdd(h, 0, 8, 1)
	require.NoError(t, err)
	for l := 0; l < 8; l++ {
		_, err := tr.RangeSum(h, l, 8)
		require.NoError(t, err)
		_, err = tr.Get(h, l)
		require.NoError(t, err)
	}
	expect.Equal(t, 8, tr.Size(h))
	expect.Equal(t, []int64{4, 2, 5, 2, 6, 10, 3, 7}, tr.ToSequence(h))
}

func TestTeardownReleasesAllNodes(t *testing.T) {
	tr := newTestTreap(t, 14)
	h := tr.Build(1, 2, 3, 4, 5, 6)
	g := tr.Build(7, 8)
	expect.Equal(t, 8, tr.Live())
	h, err := tr.Erase(h, 1, 4)
	require.NoError(t, err)
	expect.Equal(t, 5, tr.Live())
	require.NoError(t, tr.Teardown(h))
	require.NoError(t, tr.Teardown(g))
	expect.Equal(t, 0, tr.Live())
	expect.Equal(t, 8, tr.Allocated())
	// released handles are rejected until their slot is reused
	_, err = tr.Get(g, 0)
	expect.ErrorIs(t, err, ErrInvalidHandle)
	expect.ErrorIs(t, tr.Teardown(Handle(999)), ErrInvalidHandle)
	// slots are recycled
	k := tr.Build(1, 2, 3)
	expect.Equal(t, 8, tr.Allocated())
	expect.Equal(t, []int64{1, 2, 3}, tr.ToSequence(k))
}

func TestEraseAll(t *testing.T) {
	tr := newTestTreap(t, 15)
	h := tr.Build(1, 2, 3)
	h, err := tr.Erase(h, 0, 3)
	require.NoError(t, err)
	expect.Equal(t, Nil, h)
	expect.Equal(t, 0, tr.Size(h))
	expect.Equal(t, 0, tr.Live())
}

// ascending is a priority source which makes every new node outrank all
// earlier ones, resulting in a degenerate tree.
type ascending struct{ n uint64 }

func (s *ascending) Uint64() uint64 {
	s.n++
	return s.n
}

func TestInjectedSourceDegenerateShape(t *testing.T) {
	tr, err := New[int64](Config{Source: &ascending{}})
	require.NoError(t, err)
	const n = 2000
	values := make([]int64, n)
	for i := range values {
		values[i] = int64(i)
	}
	h := tr.Build(values...)
	st := tr.Stats(h)
	expect.Equal(t, n, st.Size)
	expect.Equal(t, n, st.Height, "ascending priorities should build a chain")
	expect.Equal(t, values, tr.ToSequence(h))
	require.NoError(t, tr.Check(h))
	require.NoError(t, tr.Teardown(h))
	expect.Equal(t, 0, tr.Live())
}

func TestSameSeedSameShape(t *testing.T) {
	build := func() (*Treap[int64], Handle) {
		tr := newTestTreap(t, 77)
		h := tr.Build(1, 2, 3, 4, 5, 6, 7, 8, 9)
		h, err := tr.Insert(h, 4, 10, 11, 12)
		require.NoError(t, err)
		return tr, h
	}
	tr1, h1 := build()
	tr2, h2 := build()
	var dot1, dot2 bytes.Buffer
	require.NoError(t, tr1.WriteDot(h1, &dot1))
	require.NoError(t, tr2.WriteDot(h2, &dot2))
	expect.Equal(t, dot1.String(), dot2.String())
	expect.Equal(t, tr1.Stats(h1), tr2.Stats(h2))
}

func TestStatsCountsTags(t *testing.T) {
	tr := newTestTreap(t, 16)
	h := tr.Build(1, 2, 3, 4, 5, 6, 7, 8)
	expect.Zero(t, tr.Stats(h).Tagged)
	h, err := tr.RangeReverse(h, 0, 8)
	require.NoError(t, err)
	expect.Equal(t, 1, tr.Stats(h).Tagged)
	_ = tr.ToSequence(h)
	expect.Zero(t, tr.Stats(h).Tagged)
	expect.Equal(t, Stats{}, tr.Stats(Nil))
}

func TestCheckDetectsCorruption(t *testing.T) {
	tr, err := New[int64](Config{Seed: 17})
	require.NoError(t, err)
	h := tr.Build(1, 2, 3, 4, 5)
	require.NoError(t, tr.Check(h))
	tr.nodes[h].sum++
	expect.ErrorIs(t, tr.Check(h), ErrInvariantViolation)
	tr.nodes[h].sum--
	tr.nodes[h].size++
	expect.ErrorIs(t, tr.Check(h), ErrInvariantViolation)
	tr.nodes[h].size--
	require.NoError(t, tr.Check(h))
}

// descending is a priority source which makes every new node rank below all
// earlier ones, resulting in a chain of right children.
type descending struct{ n uint64 }

func (s *descending) Uint64() uint64 {
	s.n++
	return ^s.n
}

func TestDebugModePanicsOnCorruption(t *testing.T) {
	tr, err := New[int64](Config{Source: &descending{}, Debug: true})
	require.NoError(t, err)
	h := tr.Build(1, 2, 3, 4, 5)
	// handles are allocated in build order; node 4 is off the path of an
	// edit at the front, so no pull repairs it
	tr.nodes[Handle(4)].sum += 100
	expect.Panics(t, func() {
		_, _ = tr.RangeAdd(h, 0, 1, 1)
	})
}

func TestFloatScalars(t *testing.T) {
	tr, err := New[float64](Config{Seed: 19, Debug: true})
	require.NoError(t, err)
	h := tr.Build(0.5, 1.5, 2.5, 3.5)
	h, err = tr.RangeAdd(h, 1, 3, 0.25)
	require.NoError(t, err)
	h, err = tr.RangeReverse(h, 0, 4)
	require.NoError(t, err)
	expect.Equal(t, []float64{3.5, 2.75, 1.75, 0.5}, tr.ToSequence(h))
	sum, err := tr.RangeSum(h, 1, 3)
	require.NoError(t, err)
	expect.InDelta(t, 4.5, sum, 1e-12)
}

func TestForEachStopsEarly(t *testing.T) {
	tr := newTestTreap(t, 20)
	h := tr.Build(10, 20, 30, 40)
	var seen []int64
	tr.ForEach(h, func(pos int, v int64) bool {
		seen = append(seen, v)
		return pos < 1
	})
	expect.Equal(t, []int64{10, 20}, seen)
	var positions []int
	for pos, v := range tr.All(h) {
		positions = append(positions, pos)
		expect.Equal(t, int64(10*(pos+1)), v)
	}
	expect.Equal(t, []int{0, 1, 2, 3}, positions)
}

func TestWriteDot(t *testing.T) {
	tr := newTestTreap(t, 21)
	h := tr.Build(1, 2, 3)
	h, err := tr.RangeAssign(h, 0, 3, 4)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, tr.WriteDot(h, &buf))
	out := buf.String()
	expect.True(t, strings.HasPrefix(out, "strict digraph {"))
	expect.Contains(t, out, "Σ12 #3")
	expect.Contains(t, out, "=4", "pending assign should be visible at the root")
	buf.Reset()
	require.NoError(t, tr.WriteDot(Nil, &buf))
	expect.Equal(t, "strict digraph {\n\tnode [fontname=Arial,fontsize=12];\n}\n", buf.String())
}
