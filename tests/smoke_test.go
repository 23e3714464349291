// Package tests provides smoke tests that validate every devkit command
// exists, runs, and exits with the expected code.
// These tests compile and run the binary — they are integration tests.
package tests

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/klytics/devkit/internal/formats/xlsx"
)

// devkitBin returns the path to the compiled devkit binary.
func devkitBin(t *testing.T) string {
	t.Helper()
	_, filename, _, _ := runtime.Caller(0)
	root := filepath.Join(filepath.Dir(filename), "..")
	bin := filepath.Join(root, "bin", "devkit")
	if runtime.GOOS == "windows" {
		bin += ".exe"
	}
	if _, err := os.Stat(bin); os.IsNotExist(err) {
		t.Fatalf("devkit binary not found at %s — run 'go build -o bin/devkit .' first", bin)
	}
	return bin
}

// run executes devkit with args and returns stdout, stderr, and exit code.
// HOME points at a temp dir so no user config leaks in.
func run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(devkitBin(t), args...)
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir(), "DEVKIT_NO_PROGRESS=1", "NO_COLOR=1")
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	code := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		}
	}
	return stdout.String(), stderr.String(), code
}

// sampleWorkbook writes a five-row sheet (header + four data rows) and returns its path.
func sampleWorkbook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.xlsx")
	wb := &xlsx.Workbook{Sheets: []xlsx.Sheet{{
		Name: "Sheet1",
		Rows: [][]any{
			{"city", "pop", "capital"},
			{"Oslo", 709037, true},
			{"Bergen", 291940, false},
			{"Tromsø", 78745.5, false},
			{"Bodø, NO", 53712, nil},
		},
	}}}
	if err := xlsx.WriteFile(wb, path); err != nil {
		t.Fatalf("could not write sample workbook: %v", err)
	}
	return path
}

// TestAllCommandsExist validates that every command appears in --help.
func TestAllCommandsExist(t *testing.T) {
	commands := []string{"excel", "jsonfmt", "md5", "pipeline", "shell", "config", "completion", "version"}

	stdout, _, code := run(t, "--help")
	if code != 0 {
		t.Fatalf("devkit --help exited with code %d", code)
	}
	for _, cmd := range commands {
		if !strings.Contains(stdout, cmd) {
			t.Errorf("command %q not found in devkit --help output", cmd)
		}
	}
}

// TestExcelCount validates the dimensions line.
func TestExcelCount(t *testing.T) {
	stdout, _, code := run(t, "excel", "-i", sampleWorkbook(t), "count")
	if code != 0 {
		t.Fatal("devkit excel count should exit 0")
	}
	if stdout != "rows: 5, columns: 3\n" {
		t.Errorf("unexpected count output %q", stdout)
	}
}

// TestExcelCountJSON validates JSON output structure.
func TestExcelCountJSON(t *testing.T) {
	stdout, _, code := run(t, "excel", "-i", sampleWorkbook(t), "count", "--json")
	if code != 0 {
		t.Fatal("devkit excel count --json should exit 0")
	}
	var result struct {
		OK   bool `json:"ok"`
		Data struct {
			Rows    int `json:"rows"`
			Columns int `json:"columns"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("--json output is not valid JSON: %v\nOutput: %s", err, stdout)
	}
	if !result.OK || result.Data.Rows != 5 || result.Data.Columns != 3 {
		t.Errorf("unexpected JSON result %+v", result)
	}
}

// TestExcelCat validates the tab-separated preview.
func TestExcelCat(t *testing.T) {
	stdout, _, code := run(t, "excel", "-i", sampleWorkbook(t), "cat", "-r", "2")
	if code != 0 {
		t.Fatal("devkit excel cat should exit 0")
	}
	if stdout != "city\tpop\tcapital\nOslo\t709037\ttrue\n" {
		t.Errorf("unexpected preview %q", stdout)
	}
}

// TestExcelCatTrailingTab validates the legacy field terminator.
func TestExcelCatTrailingTab(t *testing.T) {
	stdout, _, code := run(t, "excel", "-i", sampleWorkbook(t), "cat", "-r", "1", "-c", "1", "--trailing-tab")
	if code != 0 {
		t.Fatal("devkit excel cat --trailing-tab should exit 0")
	}
	if stdout != "city\t\n" {
		t.Errorf("unexpected preview %q", stdout)
	}
}

// TestExcelToCSV validates the CSV export including quoting.
func TestExcelToCSV(t *testing.T) {
	in := sampleWorkbook(t)
	out := filepath.Join(t.TempDir(), "sample.csv")

	_, _, code := run(t, "excel", "-i", in, "to-csv", "-o", out)
	if code != 0 {
		t.Fatal("devkit excel to-csv should exit 0")
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal("output file was not created")
	}
	want := "city,pop,capital\nOslo,709037,true\nBergen,291940,false\nTromsø,78745.5,false\n\"Bodø, NO\",53712,\n"
	if string(data) != want {
		t.Errorf("expected %q, got %q", want, data)
	}
}

// TestExcelSplit validates chunk files are written next to the input.
func TestExcelSplit(t *testing.T) {
	in := sampleWorkbook(t)

	_, _, code := run(t, "excel", "-i", in, "split", "-l", "3", "--header")
	if code != 0 {
		t.Fatal("devkit excel split should exit 0")
	}
	for n, want := range map[string]int{".1.xlsx": 4, ".2.xlsx": 2} {
		stdout, _, code := run(t, "excel", "-i", in+n, "count")
		if code != 0 {
			t.Fatalf("chunk %s should be readable", n)
		}
		if !strings.HasPrefix(stdout, "rows: "+string(rune('0'+want))) {
			t.Errorf("chunk %s: unexpected count %q", n, stdout)
		}
	}
}

// TestExcelSplitNoClobber validates existing chunks are not overwritten on request.
func TestExcelSplitNoClobber(t *testing.T) {
	in := sampleWorkbook(t)
	if err := os.WriteFile(in+".1.xlsx", []byte("keep"), 0644); err != nil {
		t.Fatal(err)
	}

	_, stderr, code := run(t, "excel", "-i", in, "split", "-l", "10", "--no-clobber")
	if code != 2 {
		t.Errorf("expected exit 2, got %d", code)
	}
	if !strings.Contains(stderr, "Error:") {
		t.Errorf("expected error on stderr, got %q", stderr)
	}
	data, _ := os.ReadFile(in + ".1.xlsx")
	if string(data) != "keep" {
		t.Error("existing chunk was overwritten")
	}
}

// TestExcelErrorExitCodes validates error classification.
func TestExcelErrorExitCodes(t *testing.T) {
	in := sampleWorkbook(t)

	if _, _, code := run(t, "excel", "-i", in, "-s", "Missing", "count"); code != 1 {
		t.Errorf("missing sheet: expected exit 1, got %d", code)
	}
	if _, _, code := run(t, "excel", "-i", in+".nope", "count"); code != 2 {
		t.Errorf("missing file: expected exit 2, got %d", code)
	}
	if _, _, code := run(t, "excel", "-i", in, "split", "-l", "0"); code != 1 {
		t.Errorf("zero chunk size: expected exit 1, got %d", code)
	}
}

// TestLegacyErrors validates the stdout/exit 0 error mode.
func TestLegacyErrors(t *testing.T) {
	stdout, stderr, code := run(t, "--legacy-errors", "excel", "-i", sampleWorkbook(t), "-s", "Missing", "count")
	if code != 0 {
		t.Errorf("expected exit 0 in legacy mode, got %d", code)
	}
	if !strings.Contains(stdout, "Missing") {
		t.Errorf("expected error message on stdout, got %q", stdout)
	}
	if strings.Contains(stderr, "Error:") {
		t.Errorf("expected nothing on stderr, got %q", stderr)
	}
}

// TestJSONFmt validates four-space indentation.
func TestJSONFmt(t *testing.T) {
	stdout, _, code := run(t, "jsonfmt", "-j", `{"a":{"b":1}}`)
	if code != 0 {
		t.Fatal("devkit jsonfmt should exit 0")
	}
	if stdout != "{\n    \"a\": {\n        \"b\": 1\n    }\n}\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

// TestMD5 validates a known digest.
func TestMD5(t *testing.T) {
	stdout, _, code := run(t, "md5", "-o", "")
	if code != 0 {
		t.Fatal("devkit md5 should exit 0")
	}
	if stdout != "d41d8cd98f00b204e9800998ecf8427e\n" {
		t.Errorf("unexpected digest %q", stdout)
	}
}

// TestVersionOutput validates version command format.
func TestVersionOutput(t *testing.T) {
	stdout, _, code := run(t, "version")
	if code != 0 {
		t.Fatal("devkit version should exit 0")
	}
	if !strings.HasPrefix(stdout, "devkit ") {
		t.Errorf("version output should start with 'devkit', got: %s", stdout)
	}
}

// TestConfigShowRuns validates config show does not fail without a config file.
func TestConfigShowRuns(t *testing.T) {
	stdout, _, code := run(t, "config", "show")
	if code != 0 {
		t.Errorf("config show should exit 0, got %d", code)
	}
	if !strings.Contains(stdout, "excel.sheet_name") {
		t.Errorf("config show should list excel.sheet_name, got %q", stdout)
	}
}

// TestAllCommandsHaveHelp validates every command accepts --help.
func TestAllCommandsHaveHelp(t *testing.T) {
	commandPaths := [][]string{
		{"excel"}, {"excel", "count"}, {"excel", "cat"}, {"excel", "to-csv"}, {"excel", "split"}, {"excel", "watch"},
		{"jsonfmt"}, {"md5"},
		{"pipeline", "run"},
		{"shell"},
		{"config", "show"}, {"config", "path"}, {"config", "get"}, {"config", "set"},
		{"completion"}, {"version"},
	}

	for _, path := range commandPaths {
		args := append(path, "--help")
		t.Run(strings.Join(path, "_"), func(t *testing.T) {
			_, _, code := run(t, args...)
			if code != 0 {
				t.Errorf("devkit %s --help should exit 0", strings.Join(path, " "))
			}
		})
	}
}
