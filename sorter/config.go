package sorter

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/andileco/csvsort"
	"github.com/andileco/csvsort/stream"
)

const (
	defaultChunkSize         = 50000
	defaultMaxFanIn          = 16
	defaultInMemoryThreshold = 20 << 20
)

// Config holds tuning knobs for a Sorter.
type Config struct {
	// ChunkSize is the number of records accumulated, sorted in
	// memory, and written out as one run.
	ChunkSize int
	// MaxFanIn is the maximum number of runs merged in a single pass.
	// It bounds the open-file count; smaller values trade extra merge
	// passes for fewer open handles.
	MaxFanIn int
	// TempDir is where run files live; empty means the OS default.
	TempDir string
	// InMemoryThreshold is the input byte size below which the whole
	// input is sorted in memory. Inputs whose size cannot be
	// determined always take the external path.
	InMemoryThreshold int64
	// SizeHint overrides the input's own size estimate, for sources
	// that cannot report one.
	SizeHint int64
	// BufferSize is the file I/O buffer size per open run.
	BufferSize int
	// Logger receives debug-level progress lines; nil discards them.
	Logger logrus.FieldLogger
}

// DefaultConfig returns the configuration used when none is provided.
func DefaultConfig() *Config {
	return &Config{
		ChunkSize:         defaultChunkSize,
		MaxFanIn:          defaultMaxFanIn,
		TempDir:           "",
		InMemoryThreshold: defaultInMemoryThreshold,
		BufferSize:        stream.DefaultBufferSize,
		Logger:            discardLogger(),
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// mergeConfig takes a provided config and fills any unset values with
// the defaults.
func mergeConfig(c *Config) *Config {
	d := DefaultConfig()
	if c == nil {
		return d
	}
	out := *c
	if out.ChunkSize == 0 {
		out.ChunkSize = d.ChunkSize
	}
	if out.MaxFanIn == 0 {
		out.MaxFanIn = d.MaxFanIn
	}
	if out.InMemoryThreshold == 0 {
		out.InMemoryThreshold = d.InMemoryThreshold
	}
	if out.BufferSize == 0 {
		out.BufferSize = d.BufferSize
	}
	if out.Logger == nil {
		out.Logger = d.Logger
	}
	// TempDir and SizeHint keep their zero values.
	return &out
}

func (c *Config) validate() error {
	if c.ChunkSize < 1 {
		return &csvsort.ConfigError{
			Field:  "ChunkSize",
			Value:  c.ChunkSize,
			Reason: "must be at least 1",
		}
	}
	if c.MaxFanIn < 2 {
		return &csvsort.ConfigError{
			Field:  "MaxFanIn",
			Value:  c.MaxFanIn,
			Reason: "must be at least 2",
		}
	}
	if c.InMemoryThreshold < 0 {
		return &csvsort.ConfigError{
			Field:  "InMemoryThreshold",
			Value:  c.InMemoryThreshold,
			Reason: "must not be negative",
		}
	}
	if c.SizeHint < 0 {
		return &csvsort.ConfigError{
			Field:  "SizeHint",
			Value:  c.SizeHint,
			Reason: "must not be negative",
		}
	}
	if c.TempDir != "" {
		info, err := os.Stat(c.TempDir)
		if err != nil || !info.IsDir() {
			return &csvsort.ConfigError{
				Field:  "TempDir",
				Value:  c.TempDir,
				Reason: "must be an existing directory",
			}
		}
		// Probe writability now; an unwritable temp directory is a
		// configuration mistake, not a mid-sort I/O failure.
		probe, err := os.CreateTemp(c.TempDir, ".csvsort-")
		if err != nil {
			return &csvsort.ConfigError{
				Field:  "TempDir",
				Value:  c.TempDir,
				Reason: "must be writable",
			}
		}
		probe.Close()
		os.Remove(probe.Name())
	}
	return nil
}
