package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"offboard/internal/artifact"
	"offboard/internal/casestore"
	"offboard/internal/config"
	"offboard/internal/offboarding"
	"offboard/internal/output"
)

// MockArtifactStore is a mock artifact store for testing.
type MockArtifactStore struct {
	// Destinations records every upload destination in order.
	Destinations []string
	// Err, when set, is returned by every upload.
	Err error
}

func (m *MockArtifactStore) Upload(ctx context.Context, file artifact.File, destination string) (string, error) {
	m.Destinations = append(m.Destinations, destination)
	if m.Err != nil {
		return "", m.Err
	}
	return "https://blob.test/" + destination, nil
}

// MockRemover is a mock remote removal service for testing.
type MockRemover struct {
	// Calls records every employee id passed to Remove.
	Calls []string
	// Err, when set, is returned by every call.
	Err error
}

func (m *MockRemover) Remove(ctx context.Context, employeeID string) error {
	m.Calls = append(m.Calls, employeeID)
	return m.Err
}

// testEnv bundles an App with the mocks behind it.
type testEnv struct {
	App       *App
	Store     *casestore.MemoryStore
	Artifacts *MockArtifactStore
	Remover   *MockRemover
	Out       *bytes.Buffer
}

// newTestEnv builds an App on an in-memory store with mock collaborators.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		Store:     casestore.NewMemoryStore(),
		Artifacts: &MockArtifactStore{},
		Remover:   &MockRemover{},
		Out:       &bytes.Buffer{},
	}

	svc := offboarding.NewService(env.Store, env.Artifacts, env.Remover)
	svc.SetDefaultChecklist([]string{"Laptop", "Badge"})

	env.App = &App{
		Config:  config.DefaultConfig(),
		Service: svc,
		Cases:   env.Store,
		Printer: output.NewPrinterWithWriter(env.Out),
		Wizard: func(ctx context.Context, sess *offboarding.Session) error {
			return nil
		},
	}
	return env
}

// run executes the root command with args.
func (e *testEnv) run(args ...string) error {
	rootCmd := NewRootCommand(e.App)
	rootCmd.SetOut(e.Out)
	rootCmd.SetErr(e.Out)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// createDocument writes a document into a temporary directory for testing.
func createDocument(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write document: %v", err)
	}
	return path
}
