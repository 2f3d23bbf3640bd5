package eventprocessing

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig_OverlaysEnvironment(t *testing.T) {
	t.Setenv("AXON_PROCESSOR_CONCURRENCY", "8")
	t.Setenv("AXON_PROCESSOR_COMMIT_TIMEOUT", "2s")
	defer os.Unsetenv("AXON_PROCESSOR_BUFFER_SIZE")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Concurrency != 8 {
		t.Errorf("got Concurrency %d, want 8", cfg.Concurrency)
	}
	if cfg.CommitTimeout != 2*time.Second {
		t.Errorf("got CommitTimeout %v, want 2s", cfg.CommitTimeout)
	}
	if cfg.BufferSize != DefaultConfig().BufferSize {
		t.Errorf("got BufferSize %d, want the default %d", cfg.BufferSize, DefaultConfig().BufferSize)
	}
}
