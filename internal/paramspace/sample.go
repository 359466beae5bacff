package paramspace

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/vk/expgrid/internal/param"
)

// Distribution draws one parameter value per call.
type Distribution interface {
	Draw(rng *rand.Rand) param.Value
}

// Uniform draws numbers uniformly from the half-open interval [Min, Max).
type Uniform struct {
	Min, Max float64
}

// Draw implements Distribution.
func (u Uniform) Draw(rng *rand.Rand) param.Value {
	return param.Number((u.Max-u.Min)*rng.Float64() + u.Min)
}

// Choice draws uniformly from a discrete list of values.
type Choice []param.Value

// Draw implements Distribution.
func (c Choice) Draw(rng *rand.Rand) param.Value {
	return c[rng.IntN(len(c))]
}

// Func adapts an arbitrary generator. The random source is not passed in;
// the function owns its own randomness.
type Func func() param.Value

// Draw implements Distribution.
func (f Func) Draw(*rand.Rand) param.Value { return f() }

// Constant always yields the same value.
type Constant param.Value

// Draw implements Distribution.
func (c Constant) Draw(*rand.Rand) param.Value { return param.Value(c) }

// NewRand returns a deterministic random source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Sample draws n parameter sets. For each set the names are visited in
// sorted order, so a given rng state always produces the same samples.
func Sample(n int, dists map[string]Distribution, rng *rand.Rand) ([]*param.Set, error) {
	if n < 0 {
		return nil, fmt.Errorf("sample count must not be negative, got %d", n)
	}
	if n > 0 && len(dists) == 0 {
		return nil, fmt.Errorf("sample count is %d but no distributions are declared", n)
	}
	names := make([]string, 0, len(dists))
	for name, d := range dists {
		if err := validate(name, d); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*param.Set, 0, n)
	for range n {
		s := param.New()
		for _, name := range names {
			s.Set(name, dists[name].Draw(rng))
		}
		out = append(out, s)
	}
	return out, nil
}

func validate(name string, d Distribution) error {
	switch d := d.(type) {
	case nil:
		return fmt.Errorf("parameter %q: no distribution", name)
	case Uniform:
		if !finite(d.Min) || !finite(d.Max) {
			return fmt.Errorf("parameter %q: uniform bounds must be finite, got [%g, %g)", name, d.Min, d.Max)
		}
		if d.Max < d.Min {
			return fmt.Errorf("parameter %q: uniform range [%g, %g) is empty", name, d.Min, d.Max)
		}
	case Choice:
		if len(d) == 0 {
			return fmt.Errorf("parameter %q: choice has no values", name)
		}
	case Func:
		if d == nil {
			return fmt.Errorf("parameter %q: generator function is nil", name)
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
