package runner_test

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// listDump is the dump of "[1\n]" recorded for source, without a trailing
// comma when comma is empty.
func listDump(source, comma string) string {
	var b strings.Builder
	if source != "" {
		b.WriteString("source: " + source + "\n")
	}
	b.WriteString(`root:
  kind: File
  children:
    - kind: CollectionLiteral
      children:
        - {kind: LBracket, text: "["}
        - {kind: Literal, text: "1"}
`)
	if comma != "" {
		b.WriteString(`        - {kind: Comma, text: ","}` + "\n")
	}
	b.WriteString(`        - {kind: Whitespace, text: "\n"}
        - {kind: RBracket, text: "]"}
`)
	return b.String()
}

// binaryPath builds the kantfmt binary and returns its path.
func binaryPath(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	bin := filepath.Join(dir, "kantfmt")
	if runtime.GOOS == "windows" {
		bin += ".exe"
	}

	cmd := exec.CommandContext(t.Context(), "go", "build", "-o", bin, "../../cmd/kantfmt")
	cmd.Dir = filepath.Join(projectRoot(t), "internal", "runner")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build binary: %v\n%s", err, out)
	}
	return bin
}

func projectRoot(t *testing.T) string {
	t.Helper()
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..")
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("unexpected error: %v", err)
	}
	return exitErr.ExitCode()
}

func TestIntegrationStdinFormat(t *testing.T) {
	bin := binaryPath(t)

	cmd := exec.CommandContext(t.Context(), bin, "--format")
	cmd.Stdin = strings.NewReader(listDump("", ""))
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "[1,\n]" {
		t.Errorf("stdin format: got %q, want %q", string(out), "[1,\n]")
	}
}

func TestIntegrationCheckFormatted(t *testing.T) {
	bin := binaryPath(t)

	cmd := exec.CommandContext(t.Context(), bin, "--check")
	cmd.Stdin = strings.NewReader(listDump("", ","))
	if code := exitCode(t, cmd.Run()); code != 0 {
		t.Errorf("check formatted: expected exit 0, got %d", code)
	}
}

func TestIntegrationCheckUnformatted(t *testing.T) {
	bin := binaryPath(t)

	cmd := exec.CommandContext(t.Context(), bin, "--check")
	cmd.Stdin = strings.NewReader(listDump("", ""))
	if code := exitCode(t, cmd.Run()); code != 1 {
		t.Errorf("check unformatted: expected exit 1, got %d", code)
	}
}

func TestIntegrationLint(t *testing.T) {
	bin := binaryPath(t)

	cmd := exec.CommandContext(t.Context(), bin, "--no-color", "-q")
	cmd.Stdin = strings.NewReader(listDump("", ""))
	out, err := cmd.Output()
	if code := exitCode(t, err); code != 1 {
		t.Errorf("lint: expected exit 1, got %d", code)
	}
	if !strings.Contains(string(out), "<stdin>:1:3: Missing trailing comma") {
		t.Errorf("lint report: got %q", string(out))
	}
}

func TestIntegrationDiff(t *testing.T) {
	bin := binaryPath(t)

	cmd := exec.CommandContext(t.Context(), bin, "--diff")
	cmd.Stdin = strings.NewReader(listDump("", ""))
	out, err := cmd.CombinedOutput()
	if code := exitCode(t, err); code != 1 {
		t.Errorf("diff with changes: expected exit 1, got %d", code)
	}

	output := string(out)
	if !strings.Contains(output, "-[1\n") {
		t.Errorf("diff missing old line: %s", output)
	}
	if !strings.Contains(output, "+[1,\n") {
		t.Errorf("diff missing new line: %s", output)
	}
}

func TestIntegrationWrite(t *testing.T) {
	bin := binaryPath(t)
	dir := t.TempDir()
	source := filepath.Join(dir, "Main.kt")
	dump := filepath.Join(dir, "main.yaml")

	if err := os.WriteFile(filepath.Join(dir, ".editorconfig"), []byte("root = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(source, []byte("[1\n]"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dump, []byte(listDump(source, "")), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := exec.CommandContext(t.Context(), bin, "-w", dump)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("write: %v\n%s", err, out)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[1,\n]" {
		t.Errorf("file after write: got %q", string(data))
	}
}

func TestIntegrationVersion(t *testing.T) {
	bin := binaryPath(t)

	cmd := exec.CommandContext(t.Context(), bin, "--version")
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(string(out), "kantfmt ") {
		t.Errorf("version: got %q", string(out))
	}
}

func TestIntegrationMissingFile(t *testing.T) {
	bin := binaryPath(t)

	cmd := exec.CommandContext(t.Context(), bin, "/nonexistent/main.yaml")
	if code := exitCode(t, cmd.Run()); code != 2 {
		t.Errorf("missing file: expected exit 2, got %d", code)
	}
}

func TestIntegrationExplicitConfig(t *testing.T) {
	bin := binaryPath(t)
	dir := t.TempDir()

	configPath := filepath.Join(dir, "custom.yml")
	cfg := "rules:\n  kantis:adjusted-trailing-comma-on-call-site: false\n"
	if err := os.WriteFile(configPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := exec.CommandContext(t.Context(), bin, "--config", configPath, "--format")
	cmd.Stdin = strings.NewReader(listDump("", ""))
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if string(out) != "[1\n]" {
		t.Errorf("disabled rule: got %q, want %q", string(out), "[1\n]")
	}
}

func TestIntegrationMultipleFiles(t *testing.T) {
	bin := binaryPath(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(good, []byte(listDump("", ",")), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte(listDump("", "")), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := exec.CommandContext(t.Context(), bin, "--check", good, bad)
	if code := exitCode(t, cmd.Run()); code != 1 {
		t.Errorf("check mixed: expected exit 1, got %d", code)
	}
}

func TestIntegrationRules(t *testing.T) {
	bin := binaryPath(t)

	cmd := exec.CommandContext(t.Context(), bin, "rules")
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	if !strings.Contains(string(out), "kantis:single-lambda-argument") {
		t.Errorf("rules: got %q", string(out))
	}
}
