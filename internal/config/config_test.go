package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Scene.File != "scene.yaml" {
		t.Errorf("expected scene file scene.yaml, got %s", cfg.Scene.File)
	}
	if !cfg.Scene.SnapshotInitial {
		t.Error("expected snapshot_initial to be true by default")
	}
	if cfg.Animation.FPS != 30 {
		t.Errorf("expected fps 30, got %d", cfg.Animation.FPS)
	}
	if cfg.Animation.Clip != "" {
		t.Errorf("expected no clip, got %s", cfg.Animation.Clip)
	}
	if cfg.Output.Precision != 3 {
		t.Errorf("expected precision 3, got %d", cfg.Output.Precision)
	}
	if cfg.Output.Matrices {
		t.Error("expected matrices to be false by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "meshview.yaml")

	yamlContent := `
scene:
  file: "robot.yaml"
  snapshot_initial: false

animation:
  clip: "wave"
  time: 1.5
  fps: 60
  duration: 4s

output:
  precision: 5
  matrices: true

logging:
  level: "debug"
  log_file: "scenetool.log"
  json: true
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Scene.File != "robot.yaml" {
		t.Errorf("expected scene robot.yaml, got %s", cfg.Scene.File)
	}
	if cfg.Scene.SnapshotInitial {
		t.Error("expected snapshot_initial to be false")
	}
	if cfg.Animation.Clip != "wave" {
		t.Errorf("expected clip wave, got %s", cfg.Animation.Clip)
	}
	if cfg.Animation.Time != 1.5 {
		t.Errorf("expected time 1.5, got %v", cfg.Animation.Time)
	}
	if cfg.Animation.FPS != 60 {
		t.Errorf("expected fps 60, got %d", cfg.Animation.FPS)
	}
	if cfg.Animation.Duration != 4*time.Second {
		t.Errorf("expected duration 4s, got %v", cfg.Animation.Duration)
	}
	if cfg.Output.Precision != 5 || !cfg.Output.Matrices {
		t.Errorf("unexpected output config %+v", cfg.Output)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "scenetool.log" || !cfg.Logging.JSON {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
animation:
  fps: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/meshview.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fps", func(c *Config) { c.Animation.FPS = 0 }},
		{"negative time", func(c *Config) { c.Animation.Time = -1 }},
		{"precision too high", func(c *Config) { c.Output.Precision = 12 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "meshview.yaml")
	if err := os.WriteFile(configPath, []byte("animation:\n  fps: 24\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find meshview.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "scene and clip flags",
			setup: func() {
				*flagScene = "arm.yaml"
				*flagClip = "swing"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.File != "arm.yaml" || cfg.Animation.Clip != "swing" {
					t.Errorf("got scene %s clip %s", cfg.Scene.File, cfg.Animation.Clip)
				}
			},
			teardown: func() {
				*flagScene = ""
				*flagClip = ""
			},
		},
		{
			name: "time and fps flags",
			setup: func() {
				*flagTime = 2.5
				*flagFPS = 120
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Animation.Time != 2.5 || cfg.Animation.FPS != 120 {
					t.Errorf("got time %v fps %d", cfg.Animation.Time, cfg.Animation.FPS)
				}
			},
			teardown: func() {
				*flagTime = -1
				*flagFPS = 0
			},
		},
		{
			name: "output flags",
			setup: func() {
				*flagPrecision = 0
				*flagMatrices = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Output.Precision != 0 || !cfg.Output.Matrices {
					t.Errorf("got output %+v", cfg.Output)
				}
			},
			teardown: func() {
				*flagPrecision = -1
				*flagMatrices = false
			},
		},
		{
			name:  "unset flags keep defaults",
			setup: func() {},
			verify: func(t *testing.T, cfg *Config) {
				if *cfg != *Default() {
					t.Errorf("got %+v, want defaults", cfg)
				}
			},
			teardown: func() {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "meshview.yaml")

	yamlContent := `
animation:
  clip: "idle"
  fps: 24
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagFPS = 60
	defer func() {
		*flagConfig = ""
		*flagFPS = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// FPS comes from the flag, the clip from the file.
	if cfg.Animation.FPS != 60 {
		t.Errorf("expected fps 60 from flag, got %d", cfg.Animation.FPS)
	}
	if cfg.Animation.Clip != "idle" {
		t.Errorf("expected clip idle from file, got %s", cfg.Animation.Clip)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "meshview.yaml")

	cfg := Default()
	cfg.Animation.Clip = "spin"
	cfg.Animation.Duration = 3 * time.Second
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loading saved config: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded %+v, want %+v", loaded, cfg)
	}
}
