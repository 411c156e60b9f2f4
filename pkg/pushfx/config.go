package pushfx

import (
	"time"
)

// Config holds the configuration for the Pushgateway client.
//
// An empty URL disables pushing; the client then accepts pushes and
// discards them, so callers need no special casing.
//
// Example:
//
//	cfg := pushfx.Config{
//	    URL:     "http://pushgateway:9091",
//	    Job:     "autorelease",
//	    Timeout: 10 * time.Second,
//	}
//
//	client := pushfx.NewClient(cfg, logger)
type Config struct {
	// URL is the Pushgateway base address, e.g. "http://pushgateway:9091".
	URL string

	// Job is the job label metrics are grouped under.
	Job string

	// Grouping adds extra grouping labels to the push URL.
	Grouping map[string]string

	// Timeout bounds a single push. Defaults to 10 seconds if zero.
	Timeout time.Duration
}

// DefaultConfig returns a default configuration with pushing disabled.
func DefaultConfig() Config {
	//nolint:exhaustruct,mnd //default values
	return Config{
		URL:     "",
		Job:     "autorelease",
		Timeout: 10 * time.Second,
	}
}
