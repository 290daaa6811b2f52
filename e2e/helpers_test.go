package e2e_test

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	binaryPath     string
	binaryBuildErr error
	binaryOnce     sync.Once
	sharedTempDir  string
)

// TestMain sets up and tears down shared test resources.
func TestMain(m *testing.M) {
	var err error
	sharedTempDir, err = os.MkdirTemp("", "tudu-e2e-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if testCleanup != nil {
		testCleanup()
	}
	_ = os.RemoveAll(sharedTempDir)

	os.Exit(code)
}

// buildBinary compiles the tudu binary once per test run.
// Returns the path to the compiled binary.
func buildBinary(t *testing.T) string {
	t.Helper()

	binaryOnce.Do(func() {
		binaryPath = filepath.Join(sharedTempDir, "tudu")

		cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/tudu")
		cmd.Dir = getProjectRoot(t)
		output, err := cmd.CombinedOutput()
		if err != nil {
			binaryBuildErr = fmt.Errorf("build binary: %w\nOutput: %s", err, output)
			return
		}
	})

	if binaryBuildErr != nil {
		t.Fatalf("failed to build binary: %v", binaryBuildErr)
	}

	return binaryPath
}

// getProjectRoot returns the root directory of the tudu project.
func getProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err, "get working directory")

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// tuduEnv holds the database settings passed to every invocation.
type tuduEnv struct {
	DBType string
	DBDSN  string
	Table  string
}

// runTudu executes the binary with the given args and returns combined output.
func runTudu(t *testing.T, env tuduEnv, args ...string) (string, error) {
	t.Helper()

	binary := buildBinary(t)

	cmd := exec.Command(binary, args...)
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(),
		"TUDU_DATABASE_TYPE="+env.DBType,
		"TUDU_DATABASE_DSN="+env.DBDSN,
		"TUDU_LOG_LEVEL=error",
	)
	if env.Table != "" {
		cmd.Env = append(cmd.Env, "TUDU_DATABASE_TABLES_TASKS="+env.Table)
	}

	output, err := cmd.CombinedOutput()
	return string(output), err
}

// mustRunTudu executes the binary and fails the test on error.
func mustRunTudu(t *testing.T, env tuduEnv, args ...string) string {
	t.Helper()

	output, err := runTudu(t, env, args...)
	require.NoError(t, err, "tudu %v: %s", args, output)
	return output
}

// createConfigFile writes a server config file and returns its path.
func createConfigFile(t *testing.T, port int, env tuduEnv) string {
	t.Helper()

	table := env.Table
	if table == "" {
		table = "todos"
	}

	content := fmt.Sprintf(`server:
  port: %d

database:
  type: %s
  dsn: "%s"
  tables:
    tasks: %s

log:
  level: error
`, port, env.DBType, env.DBDSN, table)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(configPath, []byte(content), 0o600)
	require.NoError(t, err, "write config file")

	return configPath
}

// startServer starts the tudu server with the given configuration.
// Returns the base URL and a cleanup function that must be called to stop the server.
func startServer(t *testing.T, env tuduEnv) (string, func()) {
	t.Helper()

	binary := buildBinary(t)
	port := getOpenPort(t)
	configPath := createConfigFile(t, port, env)

	cmd := exec.Command(binary, "serve", "--config", configPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Start()
	require.NoError(t, err, "start server")

	baseURL := fmt.Sprintf("http://localhost:%d", port)

	waitForServer(t, baseURL, 10*time.Second)

	cleanup := func() {
		if cmd.Process != nil {
			_ = cmd.Process.Signal(syscall.SIGTERM)
			_ = cmd.Wait()
		}
	}

	return baseURL, cleanup
}

// waitForServer polls the server until it responds or times out.
func waitForServer(t *testing.T, baseURL string, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	client := &http.Client{Timeout: 1 * time.Second}

	for time.Now().Before(deadline) {
		resp, err := client.Get(baseURL + "/tasks")
		if err == nil {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Fatalf("server failed to start within %v", timeout)
}

// getOpenPort finds an available TCP port.
func getOpenPort(t *testing.T) int {
	t.Helper()

	l, err := net.Listen("tcp", ":0")
	require.NoError(t, err, "find open port")

	addr := l.Addr().(*net.TCPAddr)
	port := addr.Port

	err = l.Close()
	require.NoError(t, err, "close port")

	return port
}
