package config

import (
	"os"
	"path/filepath"
	"testing"
)

// writeFile writes content to dir/name and returns the full path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_defaults(t *testing.T) {
	t.Parallel()
	cfg, err := Load(LoadOptions{
		GlobalConfigPath: filepath.Join(t.TempDir(), "nope.toml"),
		Env:              []string{},
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Suffix != ".min.css" {
		t.Errorf("Suffix = %q, want %q", cfg.Suffix, ".min.css")
	}
	if cfg.Jobs != 4 {
		t.Errorf("Jobs = %d, want 4", cfg.Jobs)
	}
	if cfg.Trace {
		t.Error("Trace = true, want false")
	}
}

func TestLoad_precedence(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	global := writeFile(t, dir, "global.toml", "suffix = \".g.css\"\njobs = 2\n")
	work := t.TempDir()
	writeFile(t, work, "cssmin.toml", "suffix = \".l.css\"\n")

	tests := []struct {
		name       string
		opts       LoadOptions
		wantSuffix string
		wantJobs   int
	}{
		{
			"global_only",
			LoadOptions{GlobalConfigPath: global, Env: []string{}},
			".g.css", 2,
		},
		{
			"local_overrides_global",
			LoadOptions{GlobalConfigPath: global, WorkDir: work, Env: []string{}},
			".l.css", 2,
		},
		{
			"env_overrides_files",
			LoadOptions{GlobalConfigPath: global, WorkDir: work, Env: []string{"CSSMIN_SUFFIX=.e.css", "CSSMIN_JOBS=8"}},
			".e.css", 8,
		},
		{
			"overrides_win",
			LoadOptions{
				GlobalConfigPath: global, WorkDir: work,
				Env:       []string{"CSSMIN_SUFFIX=.e.css"},
				Overrides: &Overrides{Suffix: strPtr(".o.css"), Jobs: intPtr(16)},
			},
			".o.css", 16,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := Load(tt.opts)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Suffix != tt.wantSuffix {
				t.Errorf("Suffix = %q, want %q", cfg.Suffix, tt.wantSuffix)
			}
			if cfg.Jobs != tt.wantJobs {
				t.Errorf("Jobs = %d, want %d", cfg.Jobs, tt.wantJobs)
			}
		})
	}
}

func TestLoad_invalidTOML(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	bad := writeFile(t, dir, "config.toml", "suffix = [not toml")
	if _, err := Load(LoadOptions{GlobalConfigPath: bad, Env: []string{}}); err == nil {
		t.Fatal("Load() = nil error for invalid TOML")
	}
}

func TestLoad_envValidation(t *testing.T) {
	t.Parallel()
	missing := filepath.Join(t.TempDir(), "nope.toml")

	tests := []struct {
		name    string
		env     []string
		wantErr bool
		check   func(*Config) bool
	}{
		{"jobs_not_number", []string{"CSSMIN_JOBS=soon"}, true, nil},
		{"jobs_zero", []string{"CSSMIN_JOBS=0"}, true, nil},
		{"jobs_negative", []string{"CSSMIN_JOBS=-2"}, true, nil},
		{"trace_invalid", []string{"CSSMIN_TRACE=maybe"}, true, nil},
		{"trace_on", []string{"CSSMIN_TRACE=on"}, false, func(c *Config) bool { return c.Trace }},
		{"trace_off", []string{"CSSMIN_TRACE=0"}, false, func(c *Config) bool { return !c.Trace }},
		{"empty_suffix_ignored", []string{"CSSMIN_SUFFIX="}, false, func(c *Config) bool { return c.Suffix == ".min.css" }},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := Load(LoadOptions{GlobalConfigPath: missing, Env: tt.env})
			if tt.wantErr {
				if err == nil {
					t.Fatal("Load() = nil error, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("config check failed: %+v", cfg)
			}
		})
	}
}

func TestMergeFile_zeroValuesKeepPrevious(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", "suffix = \"\"\njobs = 0\n")
	cfg := DefaultConfig()
	if err := mergeFile(&cfg, path); err != nil {
		t.Fatalf("mergeFile() error = %v", err)
	}
	if cfg.Suffix != ".min.css" || cfg.Jobs != 4 {
		t.Errorf("zero values overwrote defaults: %+v", cfg)
	}
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
