// Package integration provides integration tests for the gref CLI.
package integration

import (
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

var (
	grefBinary     string
	grefBinaryOnce sync.Once
	grefBinaryErr  error
)

// getGrefBinary builds the gref binary once and returns its path.
func getGrefBinary(t *testing.T) string {
	t.Helper()
	grefBinaryOnce.Do(func() {
		_, filename, _, ok := runtime.Caller(0)
		if !ok {
			grefBinaryErr = os.ErrInvalid
			return
		}
		moduleRoot := filepath.Dir(filepath.Dir(filepath.Dir(filename)))

		tmpDir, err := os.MkdirTemp("", "gref-test-*")
		if err != nil {
			grefBinaryErr = err
			return
		}
		grefBinary = filepath.Join(tmpDir, "gref")

		cmd := exec.Command("go", "build", "-o", grefBinary, "./cmd/gref")
		cmd.Dir = moduleRoot
		if output, err := cmd.CombinedOutput(); err != nil {
			grefBinaryErr = &buildError{output: string(output), err: err}
			return
		}
	})
	if grefBinaryErr != nil {
		t.Fatalf("failed to build gref: %v", grefBinaryErr)
	}
	return grefBinary
}

type buildError struct {
	output string
	err    error
}

func (e *buildError) Error() string {
	return e.err.Error() + ": " + e.output
}

const guideText = `Pericardial disease

1 Introduction
Pericarditis is common [1, 2].

2 Therapy
Colchicine is first line[3-5] and reduces recurrence7.
`

const bibText = `1 Adler Y. ESC Guidelines.
2 Imazio M. Colchicine.
3 Klein AL. Imaging.
4 Cosyns B. Echo.
5 Chetrit M. CMR.
7 Smith J. Recurrence.
`

// setupInputs writes the guide and bibliography into a fresh working directory.
func setupInputs(t *testing.T) (dir, guidePath, bibPath string) {
	t.Helper()
	dir = t.TempDir()
	guidePath = filepath.Join(dir, "guide.txt")
	bibPath = filepath.Join(dir, "refs.txt")
	if err := os.WriteFile(guidePath, []byte(guideText), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bibPath, []byte(bibText), 0644); err != nil {
		t.Fatal(err)
	}
	return dir, guidePath, bibPath
}

// runGref runs gref in dir with an isolated config home and returns stdout and the exit code.
func runGref(t *testing.T, dir, stdin string, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(getGrefBinary(t), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "XDG_CONFIG_HOME="+filepath.Join(dir, "config"))
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), exitErr.ExitCode()
		}
		t.Fatalf("running gref: %v", err)
	}
	return string(out), 0
}

type sectionJSON struct {
	Index      int      `json:"index"`
	Heading    string   `json:"heading"`
	References []string `json:"references"`
	Block      string   `json:"bibliography"`
	Prompt     string   `json:"prompt"`
}

type runJSON struct {
	SectionCount   int           `json:"section_count"`
	ReferenceCount int           `json:"reference_count"`
	Sections       []sectionJSON `json:"sections"`
}

func TestRun(t *testing.T) {
	dir, guidePath, bibPath := setupInputs(t)

	out, code := runGref(t, dir, "", "run", "--guide", guidePath, "--bib", bibPath)
	if code != 0 {
		t.Fatalf("gref run exit code = %d, output: %s", code, out)
	}

	var resp runJSON
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("parsing output: %v\n%s", err, out)
	}

	if resp.SectionCount != 3 || resp.ReferenceCount != 6 {
		t.Errorf("counts = %d sections, %d refs; want 3, 6", resp.SectionCount, resp.ReferenceCount)
	}
	if len(resp.Sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(resp.Sections))
	}

	therapy := resp.Sections[2]
	if therapy.Heading != "2" {
		t.Errorf("Heading = %q, want 2", therapy.Heading)
	}
	want := []string{"2", "3", "4", "5", "7"}
	if strings.Join(therapy.References, ",") != strings.Join(want, ",") {
		t.Errorf("References = %v, want %v", therapy.References, want)
	}
	if !strings.Contains(therapy.Prompt, "7: Smith J. Recurrence.") {
		t.Errorf("Prompt missing reference 7:\n%s", therapy.Prompt)
	}
}

func TestRun_SectionFromStdin(t *testing.T) {
	dir, _, bibPath := setupInputs(t)

	out, code := runGref(t, dir, guideText, "run", "-g", "-", "-b", bibPath, "--section", "2", "--no-standalone")
	if code != 0 {
		t.Fatalf("gref run exit code = %d, output: %s", code, out)
	}

	var resp runJSON
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("parsing output: %v\n%s", err, out)
	}
	if len(resp.Sections) != 1 || resp.Sections[0].Index != 2 {
		t.Fatalf("sections = %+v, want only section 2", resp.Sections)
	}
	if got := strings.Join(resp.Sections[0].References, ","); got != "1,2" {
		t.Errorf("References = %s, want 1,2", got)
	}
}

func TestRun_EmptyGuide(t *testing.T) {
	dir, _, bibPath := setupInputs(t)
	empty := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(empty, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, code := runGref(t, dir, "", "run", "--guide", empty, "--bib", bibPath)
	if code != 3 {
		t.Errorf("exit code = %d, want 3 (data error)", code)
	}
	if !strings.Contains(out, "guideline text is empty") {
		t.Errorf("output = %s, want empty guideline error", out)
	}
}

func TestRun_SectionOutOfRange(t *testing.T) {
	dir, guidePath, bibPath := setupInputs(t)

	_, code := runGref(t, dir, "", "run", "-g", guidePath, "-b", bibPath, "--section", "9")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestBib(t *testing.T) {
	dir, _, bibPath := setupInputs(t)

	out, code := runGref(t, dir, "", "bib", bibPath)
	if code != 0 {
		t.Fatalf("gref bib exit code = %d", code)
	}

	var resp struct {
		Count   int `json:"count"`
		Entries []struct {
			Number string `json:"number"`
		} `json:"entries"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if resp.Count != 6 || resp.Entries[5].Number != "7" {
		t.Errorf("bib response = %+v", resp)
	}
}

func TestSectionsHuman(t *testing.T) {
	dir, guidePath, _ := setupInputs(t)

	out, code := runGref(t, dir, "", "sections", guidePath, "--human")
	if code != 0 {
		t.Fatalf("gref sections exit code = %d", code)
	}
	if !strings.Contains(out, "Found 3 sections.") {
		t.Errorf("output = %s", out)
	}
}

func TestConfigSetGet(t *testing.T) {
	dir := t.TempDir()

	if _, code := runGref(t, dir, "", "config", "standalone", "false"); code != 0 {
		t.Fatalf("config set exit code = %d", code)
	}

	out, code := runGref(t, dir, "", "config", "standalone")
	if code != 0 {
		t.Fatalf("config get exit code = %d", code)
	}
	var got map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if got["standalone"] != "false" {
		t.Errorf("standalone = %q, want false", got["standalone"])
	}

	if _, code := runGref(t, dir, "", "config", "colour", "blue"); code != 1 {
		t.Errorf("unknown key exit code = %d, want 1", code)
	}
}

func TestEnvFileOverride(t *testing.T) {
	dir, guidePath, bibPath := setupInputs(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("GREF_STANDALONE=false\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, code := runGref(t, dir, "", "refs", "-g", guidePath, "-b", bibPath)
	if code != 0 {
		t.Fatalf("gref refs exit code = %d", code)
	}

	var resp struct {
		Sections []struct {
			References []string `json:"references"`
		} `json:"sections"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	// Without standalone matching, "2 Therapy" no longer cites 2.
	if got := strings.Join(resp.Sections[2].References, ","); got != "3,4,5,7" {
		t.Errorf("References = %s, want 3,4,5,7", got)
	}
}
