package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matsen/gref/internal/config"
	"github.com/matsen/gref/internal/guide"
)

func TestProcessFlagsOptions(t *testing.T) {
	off := false

	tests := []struct {
		name           string
		flags          processFlags
		cfg            *config.Config
		wantStandalone bool
		wantPreview    int
	}{
		{
			name:           "defaults",
			cfg:            &config.Config{},
			wantStandalone: true,
			wantPreview:    0,
		},
		{
			name:           "config disables standalone",
			cfg:            &config.Config{Standalone: &off, PreviewLength: 40},
			wantStandalone: false,
			wantPreview:    40,
		},
		{
			name:           "flag disables standalone and overrides preview",
			flags:          processFlags{noStandalone: true, previewLength: 20},
			cfg:            &config.Config{PreviewLength: 40},
			wantStandalone: false,
			wantPreview:    20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := tt.flags.options(tt.cfg)
			if err != nil {
				t.Fatalf("options() error = %v", err)
			}
			if opts.Extractor.Standalone != tt.wantStandalone {
				t.Errorf("Standalone = %v, want %v", opts.Extractor.Standalone, tt.wantStandalone)
			}
			if !opts.Extractor.Brackets || !opts.Extractor.Attached {
				t.Error("bracket and attached heuristics should stay enabled")
			}
			if opts.PreviewLength != tt.wantPreview {
				t.Errorf("PreviewLength = %d, want %d", opts.PreviewLength, tt.wantPreview)
			}
		})
	}
}

func TestProcessFlagsOptions_Template(t *testing.T) {
	dir := t.TempDir()
	cfgTemplate := filepath.Join(dir, "cfg.tmpl")
	flagTemplate := filepath.Join(dir, "flag.tmpl")
	if err := os.WriteFile(cfgTemplate, []byte("cfg {{.Index}}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(flagTemplate, []byte("flag {{.Index}}"), 0644); err != nil {
		t.Fatal(err)
	}

	c := &config.Config{Template: cfgTemplate}

	opts, err := (&processFlags{}).options(c)
	if err != nil {
		t.Fatalf("options() error = %v", err)
	}
	res, err := guide.Run("1 Intro", "1 A", opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Sections[0].Prompt != "cfg 1" {
		t.Errorf("Prompt = %q, want config template", res.Sections[0].Prompt)
	}

	opts, err = (&processFlags{templatePath: flagTemplate}).options(c)
	if err != nil {
		t.Fatalf("options() error = %v", err)
	}
	res, err = guide.Run("1 Intro", "1 A", opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Sections[0].Prompt != "flag 1" {
		t.Errorf("Prompt = %q, want flag template", res.Sections[0].Prompt)
	}

	if _, err := (&processFlags{templatePath: filepath.Join(dir, "missing.tmpl")}).options(c); err == nil {
		t.Error("options() expected error for missing template")
	}
}

func TestSelectSection(t *testing.T) {
	res := &guide.Result{Sections: []guide.SectionResult{{Index: 1}, {Index: 2}, {Index: 3}}}

	got, err := selectSection(res, 0)
	if err != nil || len(got) != 3 {
		t.Errorf("selectSection(0) = %d sections, %v; want all 3", len(got), err)
	}

	got, err = selectSection(res, 2)
	if err != nil {
		t.Fatalf("selectSection(2) error = %v", err)
	}
	if len(got) != 1 || got[0].Index != 2 {
		t.Errorf("selectSection(2) = %+v, want section 2", got)
	}

	for _, index := range []int{-1, 4} {
		if _, err := selectSection(res, index); err == nil {
			t.Errorf("selectSection(%d) expected error", index)
		}
	}

	_, err = selectSection(&guide.Result{}, 1)
	if err == nil || !strings.Contains(err.Error(), "no sections found") {
		t.Errorf("selectSection on empty result error = %v", err)
	}
}

func TestRule(t *testing.T) {
	got := rule("Section 1")
	if !strings.HasPrefix(got, "── Section 1 ─") {
		t.Errorf("rule() = %q", got)
	}
	if n := len([]rune(got)); n != ruleWidth {
		t.Errorf("rule() width = %d, want %d", n, ruleWidth)
	}

	long := strings.Repeat("x", 100)
	if got := rule(long); !strings.Contains(got, long) {
		t.Errorf("rule() dropped a long title")
	}
}
