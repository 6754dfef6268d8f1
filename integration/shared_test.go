//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	// sharedTrendlinePath holds the path to a shared trendline binary built once for all tests.
	sharedTrendlinePath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

const recordsCSV = `date,group_key,group_name,value,quantity
2024-04-03,acme,Acme Corp,120,12
2024-04-19,globex,Globex,80,8
2024-05-07,acme,Acme Corp,60,6
2024-05-21,initech,Initech,40,4
2024-06-02,globex,Globex,100,10
2024-06-15,umbrella,Umbrella,20,
2023-12-01,acme,Acme Corp,999,1
`

const eventsCSV = `date,entity,title
2024-05-10,acme,Price increase
2024-06-01,,Summer campaign
`

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getTrendlineBinary returns the path to the trendline binary, building it once if needed.
func getTrendlineBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "trendline-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		trendlinePath := filepath.Join(tempDir, "trendline")
		buildCmd := exec.Command("go", "build", "-o", trendlinePath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if err := buildCmd.Run(); err != nil {
			panic(fmt.Sprintf("failed to build trendline: %v", err))
		}

		sharedTrendlinePath = trendlinePath
	})

	return sharedTrendlinePath
}

// writeFixtures writes the records and events CSV files into dir.
func writeFixtures(t *testing.T, dir string) (records, events string) {
	t.Helper()
	records = filepath.Join(dir, "records.csv")
	events = filepath.Join(dir, "events.csv")
	require.NoError(t, os.WriteFile(records, []byte(recordsCSV), 0o644))
	require.NoError(t, os.WriteFile(events, []byte(eventsCSV), 0o644))
	return records, events
}

// runTrendline runs the binary with the given environment and returns its stdout.
func runTrendline(t *testing.T, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getTrendlineBinary(), args...)
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(), env...)
	output, err := cmd.Output()
	if err != nil {
		stderr := ""
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = string(exitErr.Stderr)
		}
		t.Logf("Command failed: %s\nStdout: %s\nStderr: %s", cmd.String(), string(output), stderr)
		return "", err
	}
	return string(output), nil
}
