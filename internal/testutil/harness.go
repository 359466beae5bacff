// Package testutil provides a harness for end-to-end planning tests.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/expgrid/internal/app"
	"github.com/vk/expgrid/internal/builder"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of a planning run.
type HarnessResult struct {
	// Output is what the app wrote as the plan.
	Output    string
	LogOutput string
	Err       error
}

// ConfigOption adjusts the app configuration used by RunPlanTest.
type ConfigOption func(*app.Config)

// WithFormat selects the plan format.
func WithFormat(format string) ConfigOption {
	return func(c *app.Config) { c.Format = format }
}

// WithSeed sets the sampling seed.
func WithSeed(seed uint64) ConfigOption {
	return func(c *app.Config) { c.Seed = seed }
}

// RunPlanTest writes files (relative path to content) into a temporary
// directory and runs the app over it.
func RunPlanTest(t *testing.T, files map[string]string, opts ...ConfigOption) *HarnessResult {
	t.Helper()
	return RunPlanTestWithContext(context.Background(), t, files, opts...)
}

// RunPlanTestWithContext is RunPlanTest with a caller-provided context.
func RunPlanTestWithContext(ctx context.Context, t *testing.T, files map[string]string, opts ...ConfigOption) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	raw := app.Config{
		GridPaths: []string{tmpDir},
		Format:    "text",
		LogLevel:  "debug",
		LogFormat: "text",
		Seed:      builder.DefaultSeed,
	}
	for _, opt := range opts {
		opt(&raw)
	}
	cfg, err := app.NewConfig(raw)
	require.NoError(t, err)

	out := &SafeBuffer{}
	logs := &SafeBuffer{}
	runErr := app.NewApp(out, logs, cfg, nil).Run(ctx)

	if os.Getenv("EXPGRID_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       runErr,
	}
}
