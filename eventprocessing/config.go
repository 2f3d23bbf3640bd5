package eventprocessing

import (
	"time"

	"github.com/omidp/axon-go/config"
)

// Config controls an EventProcessor's concurrency and timing. It is the
// "processor" stage for config.Load: AXON_PROCESSOR_CONCURRENCY,
// AXON_PROCESSOR_BUFFER_SIZE, AXON_PROCESSOR_COMMIT_TIMEOUT.
type Config struct {
	// Concurrency is the size of the scheduler.Pool that runs the handler,
	// token-advance, ack, and error-hook tasks of every envelope the
	// processor handles. Values below 1 are treated as 1.
	Concurrency int

	// BufferSize is loaded from AXON_PROCESSOR_BUFFER_SIZE but is not read
	// by EventProcessor: Run consumes the channel its caller supplies.
	BufferSize int

	// CommitTimeout bounds how long a single envelope's unit of work is
	// allowed to run before Process gives up waiting on it.
	CommitTimeout time.Duration
}

// DefaultConfig returns the Config used when none is supplied.
func DefaultConfig() Config {
	return Config{
		Concurrency:   1,
		BufferSize:    16,
		CommitTimeout: 30 * time.Second,
	}
}

// LoadConfig starts from DefaultConfig and overlays any AXON_PROCESSOR_*
// environment variables found (see the config package), returning the
// result.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := config.Load("processor", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
