/*
Package lazyseq offers sequences of numbers with fast positional editing
and fast range updates.

Sequences

A Sequence holds scalars (any Go integer or float type) in a fixed order
and supports editing by position: insert a run of values anywhere, erase a
range, and apply an operation to a whole range at once. Range operations
are add a constant, assign a constant and reverse; the sum over any range
may be queried.

Internally, sequences are implicit-key treaps (see package treap): binary
trees ordered by position and balanced by random priorities. Range updates
are recorded on the root of the affected subtree and handed down lazily,
which makes every range operation cost the same as a single insertion.

	Operation     |   Sequence      |  Slice
	--------------+-----------------+--------
	Index         |   O(log n)      |   O(1)
	Insert        |   O(log n + k)  |   O(n)
	Erase         |   O(log n + k)  |   O(n)
	Add/Assign    |   O(log n)      |   O(k)
	Reverse       |   O(log n)      |   O(k)
	Range sum     |   O(log n)      |   O(k)
	Iterate       |   O(n)          |   O(n)

All bounds are expected bounds for random priorities; k is the length of
the run or range in question.

Sequences are not safe for concurrent use. Sequences created from the same
treap share its node arena and may be split and concatenated with each
other.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package lazyseq

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// tracer writes to trace with key 'lazyseq'. Generic code has to use this
// instead of T(), which is shadowed by type parameters.
func tracer() tracing.Trace {
	return tracing.Select("lazyseq")
}

// SequenceError is an error type for the lazyseq module
type SequenceError string

func (e SequenceError) Error() string {
	return string(e)
}

// ErrForeignSequence is flagged whenever sequences of different arenas are
// combined.
const ErrForeignSequence = SequenceError("sequences do not share an arena")

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = SequenceError("illegal arguments")
