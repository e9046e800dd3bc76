package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/lazyseq"
)

var (
	// ErrUnknownOp signals an operation name seqdemo does not know.
	ErrUnknownOp = errors.New("unknown operation")
	// ErrMalformedOp signals an operation token with wrong arguments.
	ErrMalformedOp = errors.New("malformed operation")
)

// arity is the number of position arguments per operation. insert takes a
// list of values after its position, add and assign a single value after
// their range.
var arity = map[string]int{
	"insert":  1,
	"erase":   2,
	"add":     2,
	"assign":  2,
	"reverse": 2,
	"sum":     2,
	"get":     1,
}

type operation struct {
	token  string
	name   string
	pos    []int
	values []int64
}

func (op operation) String() string {
	return op.token
}

func parseOps(tokens []string) ([]operation, error) {
	ops := make([]operation, 0, len(tokens))
	for _, token := range tokens {
		op, err := parseOp(token)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func parseOp(token string) (operation, error) {
	fields := strings.Split(token, ":")
	op := operation{token: token, name: fields[0]}
	n, ok := arity[op.name]
	if !ok {
		return op, fmt.Errorf("%w: %q", ErrUnknownOp, token)
	}
	want := n + 1
	if op.name == "insert" || op.name == "add" || op.name == "assign" {
		want++
	}
	if len(fields) != want {
		return op, fmt.Errorf("%w: %q needs %d arguments", ErrMalformedOp, token, want-1)
	}
	for _, f := range fields[1 : n+1] {
		p, err := strconv.Atoi(f)
		if err != nil {
			return op, fmt.Errorf("%w: %q: %v", ErrMalformedOp, token, err)
		}
		op.pos = append(op.pos, p)
	}
	if want > n+1 {
		for _, f := range strings.Split(fields[n+1], ",") {
			v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
			if err != nil {
				return op, fmt.Errorf("%w: %q: %v", ErrMalformedOp, token, err)
			}
			op.values = append(op.values, v)
		}
		if op.name != "insert" && len(op.values) != 1 {
			return op, fmt.Errorf("%w: %q takes a single value", ErrMalformedOp, token)
		}
	}
	return op, nil
}

// apply performs op on seq. Queries return their result as a string, edits
// return an empty string.
func (op operation) apply(seq *lazyseq.Sequence[int64]) (string, error) {
	switch op.name {
	case "insert":
		return "", seq.Insert(op.pos[0], op.values...)
	case "erase":
		return "", seq.Erase(op.pos[0], op.pos[1])
	case "add":
		return "", seq.Add(op.pos[0], op.pos[1], op.values[0])
	case "assign":
		return "", seq.Assign(op.pos[0], op.pos[1], op.values[0])
	case "reverse":
		return "", seq.Reverse(op.pos[0], op.pos[1])
	case "sum":
		sum, err := seq.RangeSum(op.pos[0], op.pos[1])
		return strconv.FormatInt(sum, 10), err
	case "get":
		v, err := seq.At(op.pos[0])
		return strconv.FormatInt(v, 10), err
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOp, op.token)
}

type result struct {
	step     int
	op       string
	output   string
	sequence string
	err      error
}

// execute applies ops one after the other, stopping at the first error.
// The first result shows the initial sequence.
func execute(seq *lazyseq.Sequence[int64], ops []operation) []result {
	results := []result{{step: 0, op: "build", sequence: seq.String()}}
	for i, op := range ops {
		out, err := op.apply(seq)
		res := result{step: i + 1, op: op.token, output: out, sequence: seq.String()}
		if err != nil {
			res.output, res.err = "", err
			results = append(results, res)
			break
		}
		results = append(results, res)
	}
	return results
}
