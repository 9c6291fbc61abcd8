package engine

// Board size and palette limits.
const (
	MinSize   = 2
	MaxSize   = 10
	MinColors = 1
	MaxColors = 6
)

// Thresholds are the group sizes at which tiers A, B and C begin.
type Thresholds struct {
	A int
	B int
	C int
}

// Config describes a board: its dimensions, palette size and tier thresholds.
type Config struct {
	Rows    int
	Columns int
	Colors  int
	Thresholds
}

// DefaultConfig returns the configuration used when nothing else is supplied.
func DefaultConfig() Config {
	return Config{
		Rows:       8,
		Columns:    8,
		Colors:     4,
		Thresholds: Thresholds{A: 4, B: 7, C: 9},
	}
}

// Validate checks the configuration invariants. The first violation is
// returned as a *ConfigError.
func (c Config) Validate() error {
	switch {
	case c.Rows < MinSize || c.Rows > MaxSize:
		return &ConfigError{Field: "rows", Message: "Rows and Columns must be between 2 and 10!"}
	case c.Columns < MinSize || c.Columns > MaxSize:
		return &ConfigError{Field: "columns", Message: "Rows and Columns must be between 2 and 10!"}
	case c.Colors < MinColors || c.Colors > MaxColors:
		return &ConfigError{Field: "colors", Message: "Colors must be between 1 and 6!"}
	case c.A <= 0:
		return &ConfigError{Field: "A", Message: "A must be greater than 0!"}
	case c.B <= c.A:
		return &ConfigError{Field: "B", Message: "B must be greater than A!"}
	case c.C <= c.B:
		return &ConfigError{Field: "C", Message: "C must be greater than B!"}
	}
	return nil
}

// Cells returns the number of slots on a board with this configuration.
func (c Config) Cells() int {
	return c.Rows * c.Columns
}
