package cpu

import "math/rand"

// Quirks selects between the behaviours historical interpreters disagree on.
// The zero value is the modern interpretation most ROMs expect.
type Quirks struct {
	// ShiftUsesVy makes 8XY6/8XYE shift Vy and store the result in Vx,
	// as the COSMAC VIP did. Otherwise Vx is shifted in place.
	ShiftUsesVy bool
	// LoadStoreIncrementsI leaves I pointing past the last register
	// transferred by FX55/FX65.
	LoadStoreIncrementsI bool
	// LogicResetsVF clears VF after 8XY1, 8XY2 and 8XY3.
	LogicResetsVF bool
}

// ModernQuirks is the default behaviour.
func ModernQuirks() Quirks {
	return Quirks{}
}

// VIPQuirks matches the original COSMAC VIP interpreter.
func VIPQuirks() Quirks {
	return Quirks{
		ShiftUsesVy:          true,
		LoadStoreIncrementsI: true,
		LogicResetsVF:        true,
	}
}

// Option configures a CPU at construction.
type Option func(*CPU)

// WithQuirks sets the compatibility behaviour.
func WithQuirks(q Quirks) Option {
	return func(c *CPU) {
		c.quirks = q
	}
}

// WithRandom sets the source used by CXNN, mostly so tests are deterministic.
func WithRandom(r *rand.Rand) Option {
	return func(c *CPU) {
		c.rng = r
	}
}
