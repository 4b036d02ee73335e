package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/beltprio/pkg/blueprint"
	"github.com/matzehuels/beltprio/pkg/errors"
	gridio "github.com/matzehuels/beltprio/pkg/io"
)

// mergeJSON has two entry belts at the bottom edge feeding one splitter.
const mergeJSON = `{"entities": [
  {"kind": "belt", "x": 0, "y": 2, "facing": "north"},
  {"kind": "belt", "x": 1, "y": 2, "facing": "north"},
  {"kind": "splitter", "x": 0, "y": 1, "facing": "north"},
  {"kind": "belt", "x": 0, "y": 0, "facing": "north"},
  {"kind": "belt", "x": 1, "y": 0, "facing": "north"}
]}`

const mergeBlueprint = `{"blueprint":{"entities":[
{"entity_number":1,"name":"transport-belt","position":{"x":0.5,"y":2.5}},
{"entity_number":2,"name":"transport-belt","position":{"x":1.5,"y":2.5}},
{"entity_number":3,"name":"splitter","position":{"x":1,"y":1.5}}
],"version":281479275675648}}`

type cmdResult struct {
	stdout string
	stderr string
	logs   string
}

// run executes the root command with args against an empty config dir.
func run(t *testing.T, stdin string, args ...string) (cmdResult, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var logs, stdout, stderr bytes.Buffer
	c := New(&logs, LogInfo)
	c.Stdout = &stdout
	c.Stderr = &stderr
	c.Stdin = strings.NewReader(stdin)

	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&stdout)
	err := root.ExecuteContext(context.Background())
	return cmdResult{stdout: stdout.String(), stderr: stderr.String(), logs: logs.String()}, err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func encodeBlueprint(t *testing.T, doc string) string {
	t.Helper()
	bp, err := blueprint.Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	s, err := bp.Encode()
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestScanCommand(t *testing.T) {
	path := writeTemp(t, "merge.json", mergeJSON)

	res, err := run(t, "", "scan", path)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	for _, want := range []string{"#1", "#2", "2 entry candidates", "◆"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, res.stdout)
		}
	}
	if !strings.Contains(res.logs, "loaded grid") {
		t.Errorf("logs missing load message:\n%s", res.logs)
	}
}

func TestScanCommandStdin(t *testing.T) {
	res, err := run(t, mergeJSON, "scan", "--no-map")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if strings.Contains(res.stdout, "◆") {
		t.Error("--no-map still drew the map")
	}
}

func TestScanCommandNoCandidates(t *testing.T) {
	_, err := run(t, `{"entities": []}`, "scan")
	if !errors.Is(err, errors.ErrCodeNoEntryCandidates) {
		t.Errorf("err = %v, want NO_ENTRY_CANDIDATES", err)
	}
}

func TestPrioritizeCommand(t *testing.T) {
	path := writeTemp(t, "merge.json", mergeJSON)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"left", []string{"--entries", "0"}, "left"},
		{"right ignores bad items", []string{"-e", "x,1,9"}, "right"},
		{"all", []string{"--all"}, "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := run(t, "", append([]string{"prioritize", path}, tt.args...)...)
			if err != nil {
				t.Fatalf("prioritize: %v", err)
			}
			g, err := gridio.ReadJSON(strings.NewReader(res.stdout))
			if err != nil {
				t.Fatalf("stdout is not a grid document: %v\n%s", err, res.stdout)
			}
			sp := g.Splitters()
			if len(sp) != 1 || sp[0].Priority.String() != tt.want {
				t.Errorf("splitters = %v, want priority %s", sp, tt.want)
			}
			if !strings.Contains(res.stderr, "Visited") {
				t.Errorf("summary should go to stderr when stdout carries the grid:\n%s", res.stderr)
			}
		})
	}
}

func TestPrioritizeCommandOutputFile(t *testing.T) {
	path := writeTemp(t, "merge.json", mergeJSON)
	out := filepath.Join(t.TempDir(), "out.yml")

	res, err := run(t, "", "prioritize", path, "--all", "-o", out)
	if err != nil {
		t.Fatalf("prioritize: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "priority: none") {
		t.Errorf("yaml output missing priority:\n%s", data)
	}
	if !strings.Contains(res.stdout, out) {
		t.Errorf("stdout should name the written file:\n%s", res.stdout)
	}
}

func TestPrioritizeCommandBlueprint(t *testing.T) {
	path := writeTemp(t, "base.txt", encodeBlueprint(t, mergeBlueprint)+"\n")

	res, err := run(t, "", "prioritize", path, "--entries", "1")
	if err != nil {
		t.Fatalf("prioritize: %v", err)
	}
	bp, err := blueprint.Decode(strings.TrimSpace(res.stdout))
	if err != nil {
		t.Fatalf("stdout is not a blueprint string: %v", err)
	}
	g, err := bp.Grid()
	if err != nil {
		t.Fatal(err)
	}
	if sp := g.Splitters(); len(sp) != 1 || sp[0].Priority.String() != "right" {
		t.Errorf("splitters = %v, want priority right", sp)
	}
	if !strings.Contains(res.stderr, "Changed") {
		t.Errorf("summary should report changed blueprint entities:\n%s", res.stderr)
	}
}

func TestPrioritizeCommandErrors(t *testing.T) {
	path := writeTemp(t, "merge.json", mergeJSON)

	tests := []struct {
		name  string
		stdin string
		args  []string
		code  errors.Code
	}{
		{"no selection", "", []string{"prioritize", path}, errors.ErrCodeInvalidInput},
		{"empty selection", "", []string{"prioritize", path, "-e", "7"}, errors.ErrCodeEmptySelection},
		{"blueprint output from grid", "", []string{"prioritize", path, "--all", "-f", "blueprint"}, errors.ErrCodeUnsupported},
		{"bad output format", "", []string{"prioritize", path, "--all", "-f", "xml"}, errors.ErrCodeInvalidFormat},
		{"interactive on stdin", mergeJSON, []string{"prioritize", "-i"}, errors.ErrCodeInvalidInput},
		{"missing file", "", []string{"prioritize", "missing.json", "--all"}, errors.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.stdin, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRenderCommandDOT(t *testing.T) {
	path := writeTemp(t, "merge.json", mergeJSON)

	res, err := run(t, "", "render", path, "--format", "dot", "--all")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := strings.TrimSuffix(path, ".json") + ".dot"
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("render should write next to the input: %v", err)
	}
	if !strings.HasPrefix(string(data), "digraph") {
		t.Errorf("output is not DOT:\n%s", data)
	}
	if !strings.Contains(string(data), "forestgreen") {
		t.Error("entries should be highlighted after --all")
	}
	if !strings.Contains(res.stdout, out) {
		t.Errorf("stdout should name %s:\n%s", out, res.stdout)
	}
}

func TestRenderCommandStdout(t *testing.T) {
	res, err := run(t, mergeJSON, "render", "-f", "dot")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(res.stdout, "digraph") {
		t.Errorf("stdout is not DOT:\n%s", res.stdout)
	}
}

func TestRenderCommandBadFormat(t *testing.T) {
	_, err := run(t, mergeJSON, "render", "-f", "pdf")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestRenderPath(t *testing.T) {
	tests := []struct {
		output, input, format string
		want                  string
	}{
		{"diagram.svg", "grid.json", "svg", "diagram.svg"},
		{"", "grid.json", "png", "grid.png"},
		{"", "dir/base.txt", "dot", "dir/base.dot"},
		{"", "-", "svg", ""},
		{"", "", "svg", ""},
	}
	for _, tt := range tests {
		if got := renderPath(tt.output, tt.input, tt.format); got != tt.want {
			t.Errorf("renderPath(%q, %q, %q) = %q, want %q", tt.output, tt.input, tt.format, got, tt.want)
		}
	}
}

func TestFormatFromOutputPath(t *testing.T) {
	tests := map[string]string{
		"out.json":      "json",
		"out.YML":       "yaml",
		"out.toml":      "toml",
		"out.txt":       "blueprint",
		"out.blueprint": "blueprint",
		"out":           "",
		"out.csv":       "",
	}
	for path, want := range tests {
		if got := formatFromOutputPath(path); got != want {
			t.Errorf("formatFromOutputPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestConfigShowCommand(t *testing.T) {
	res, err := run(t, "", "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"[log]", `level = "info"`, `addr = "127.0.0.1:8080"`} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	res, err := run(t, "", "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(res.stdout, "beltprio") {
		t.Error("bash completion should mention the command name")
	}
}

func TestVerboseLogsDecisions(t *testing.T) {
	path := writeTemp(t, "merge.json", mergeJSON)

	res, err := run(t, "", "-v", "prioritize", path, "-e", "0")
	if err != nil {
		t.Fatalf("prioritize: %v", err)
	}
	if !strings.Contains(res.logs, "resolved splitter") {
		t.Errorf("debug logs should include splitter decisions:\n%s", res.logs)
	}
}
