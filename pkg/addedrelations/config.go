package addedrelations

import (
	"github.com/dd0wney/cluso-relbuf/pkg/validation"
)

const (
	// DefaultInitialAddedSize is the capacity of the added sequence on first Add
	DefaultInitialAddedSize = 10
	// DefaultInitialDeletedSize is the capacity hint of the pending-removal set
	DefaultInitialDeletedSize = 10
	// DefaultMaxDeletedSize is how many pending removals a buffer holds
	// before Remove compacts
	DefaultMaxDeletedSize = 50
)

// Config tunes allocation and compaction. Zero fields take the defaults.
type Config struct {
	InitialAddedSize   int `yaml:"initial_added_size"`
	InitialDeletedSize int `yaml:"initial_deleted_size"`
	MaxDeletedSize     int `yaml:"max_deleted_size"`
}

// DefaultConfig returns the default buffer configuration
func DefaultConfig() Config {
	return Config{
		InitialAddedSize:   DefaultInitialAddedSize,
		InitialDeletedSize: DefaultInitialDeletedSize,
		MaxDeletedSize:     DefaultMaxDeletedSize,
	}
}

// Validate rejects negative sizes. Zero is allowed and means default.
func (c Config) Validate() error {
	return validation.NewConfigValidator("addedrelations.Config").
		NonNegative("InitialAddedSize", c.InitialAddedSize).
		NonNegative("InitialDeletedSize", c.InitialDeletedSize).
		NonNegative("MaxDeletedSize", c.MaxDeletedSize).
		Validate()
}

func (c Config) withDefaults() Config {
	return Config{
		InitialAddedSize:   validation.DefaultOrInt(c.InitialAddedSize, DefaultInitialAddedSize),
		InitialDeletedSize: validation.DefaultOrInt(c.InitialDeletedSize, DefaultInitialDeletedSize),
		MaxDeletedSize:     validation.DefaultOrInt(c.MaxDeletedSize, DefaultMaxDeletedSize),
	}
}
