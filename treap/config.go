package treap

import (
	"fmt"
	"math/rand/v2"

	"golang.org/x/exp/constraints"
)

// Scalar is the type set of element values. Every element holds exactly one
// scalar, and subtrees aggregate the sum of their elements.
type Scalar interface {
	constraints.Integer | constraints.Float
}

// Config configures a Treap.
type Config struct {
	// Seed seeds the default priority generator. Equal seeds produce equal
	// tree shapes for equal sequences of operations.
	Seed uint64
	// Source overrides the priority generator. If set, Seed is ignored.
	Source rand.Source
	// Capacity is a hint for the number of nodes to pre-allocate.
	Capacity int
	// Debug turns on an invariant check after every structural operation.
	// A failing check panics.
	Debug bool
}

func (cfg Config) normalized() Config {
	if cfg.Source == nil {
		cfg.Source = rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)
	}
	return cfg
}

func (cfg Config) validate() error {
	if cfg.Capacity < 0 {
		return fmt.Errorf("%w: negative capacity %d", ErrInvalidConfig, cfg.Capacity)
	}
	if cfg.Capacity > maxNodes {
		return fmt.Errorf("%w: capacity %d exceeds arena limit", ErrInvalidConfig, cfg.Capacity)
	}
	return nil
}
