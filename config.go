package linefile

import (
	"fmt"
	"os"

	"github.com/lanrat/linefile/vfs"
)

// Config holds configuration settings for linefile managers
type Config struct {
	BufferSize         int    // file IO buffer size for each pass
	MaxLineSize        int    // upper bound in bytes for a single line
	ChanBuffSize       int    // buffer size for channels returned by Stream
	TempFilenamePrefix string // filename prefix for temp files created next to the target
	FS                 vfs.FS // filesystem implementation, nil for the OS filesystem
}

// DefaultConfig returns the default configuration options used if none provided
func DefaultConfig() *Config {
	return &Config{
		BufferSize:         1 << 16, // 64k
		MaxLineSize:        1 << 20, // 1MB
		ChanBuffSize:       16,
		TempFilenamePrefix: fmt.Sprintf("linefile_%d_", os.Getpid()),
		FS:                 vfs.NewOS(),
	}
}

// mergeConfig takes a provided config and replaces any values not set with the defaults
func mergeConfig(c *Config) *Config {
	d := DefaultConfig()
	if c == nil {
		return d
	}
	merged := *c
	if merged.BufferSize <= 0 {
		merged.BufferSize = d.BufferSize
	}
	if merged.MaxLineSize <= 0 {
		merged.MaxLineSize = d.MaxLineSize
	}
	if merged.ChanBuffSize < 0 {
		merged.ChanBuffSize = d.ChanBuffSize
	}
	if merged.TempFilenamePrefix == "" {
		merged.TempFilenamePrefix = d.TempFilenamePrefix
	}
	if merged.FS == nil {
		merged.FS = d.FS
	}
	return &merged
}
