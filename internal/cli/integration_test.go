package cli_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildBinary builds the jsonmend binary into dir and returns its path.
func buildBinary(t *testing.T, dir string) string {
	t.Helper()

	binaryPath := filepath.Join(dir, "jsonmend")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../..")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build binary: %s", output)
	return binaryPath
}

// TestCLI_FileInputOutput tests the CLI with file input and output
func TestCLI_FileInputOutput(t *testing.T) {
	tempDir := t.TempDir()
	binary := buildBinary(t, tempDir)

	inputFile := filepath.Join(tempDir, "input.json")
	err := os.WriteFile(inputFile, []byte(`{
		"name": "John Doe",
		"age": 30,
		"phones": [
			{"type": "home", "number": "555-1234"},
			{"type": "work", "number": "555-56`), 0644)
	require.NoError(t, err)

	outputFile := filepath.Join(tempDir, "output.json")

	cmd := exec.Command(binary, "-i", inputFile, "-o", outputFile, "--compact", "--quiet")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err = cmd.Run()
	require.NoError(t, err, "stderr: %s", stderr.String())

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Equal(t,
		`{"name":"John Doe","age":30,"phones":[{"type":"home","number":"555-1234"},{"type":"work","number":"555-56"}]}`,
		strings.TrimSpace(string(data)))
}

// TestCLI_StdinInput tests the CLI reading piped input
func TestCLI_StdinInput(t *testing.T) {
	tempDir := t.TempDir()
	binary := buildBinary(t, tempDir)

	cmd := exec.Command(binary, "--compact", "--quiet")
	cmd.Stdin = strings.NewReader(`[1, 2, {"a": tru`)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.NoError(t, err, "stderr: %s", stderr.String())
	assert.Equal(t, `[1,2,{"a":true}]`, strings.TrimSpace(stdout.String()))
}

// TestCLI_RecoveryDiagnostic tests that leftover text is reported on stderr
func TestCLI_RecoveryDiagnostic(t *testing.T) {
	tempDir := t.TempDir()
	binary := buildBinary(t, tempDir)

	cmd := exec.Command(binary, "--compact")
	cmd.Stdin = strings.NewReader(`{"a":1} garbage`)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.NoError(t, err, "stderr: %s", stderr.String())
	assert.Equal(t, `{"a":1}`, strings.TrimSpace(stdout.String()))
	assert.Contains(t, stderr.String(), "garbage")
}

// TestCLI_FailOnRemainder tests the non-zero exit for unparsed text
func TestCLI_FailOnRemainder(t *testing.T) {
	tempDir := t.TempDir()
	binary := buildBinary(t, tempDir)

	cmd := exec.Command(binary, "--fail-on-remainder", "--quiet")
	cmd.Stdin = strings.NewReader(`{"a":1} garbage`)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "unparsed trailing text")
}

// TestCLI_YAMLFormat tests YAML output
func TestCLI_YAMLFormat(t *testing.T) {
	tempDir := t.TempDir()
	binary := buildBinary(t, tempDir)

	cmd := exec.Command(binary, "-f", "yaml", "--quiet")
	cmd.Stdin = strings.NewReader(`{"b": 1, "a": 2}`)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	require.NoError(t, err)
	assert.Equal(t, "b: 1\na: 2", strings.TrimSpace(stdout.String()))
}

// TestCLI_PathSelection tests JSONPath selection
func TestCLI_PathSelection(t *testing.T) {
	tempDir := t.TempDir()
	binary := buildBinary(t, tempDir)

	cmd := exec.Command(binary, "-p", "$.user.name", "--quiet")
	cmd.Stdin = strings.NewReader(`{"user": {"name": "Ada", "id": 1`)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	require.NoError(t, err)
	assert.Equal(t, `"Ada"`, strings.TrimSpace(stdout.String()))
}

// TestCLI_ConfigFile tests that a discovered config file applies
func TestCLI_ConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	binary := buildBinary(t, tempDir)

	configFile := filepath.Join(tempDir, ".jsonmend.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("output:\n  compact: true\nkeys:\n  style: snake\n"), 0644))

	cmd := exec.Command(binary, "--config", configFile, "--quiet")
	cmd.Stdin = strings.NewReader(`{"firstName": "Ada"}`)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	require.NoError(t, err)
	assert.Equal(t, `{"first_name":"Ada"}`, strings.TrimSpace(stdout.String()))
}

// TestCLI_Version tests the version flag
func TestCLI_Version(t *testing.T) {
	tempDir := t.TempDir()
	binary := buildBinary(t, tempDir)

	cmd := exec.Command(binary, "--version")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "jsonmend version")
}
