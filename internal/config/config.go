// Package config handles scenetool configuration loading and management.
package config

import "time"

// Config holds all tool settings.
type Config struct {
	Scene     SceneConfig     `yaml:"scene"`
	Animation AnimationConfig `yaml:"animation"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SceneConfig selects the scene description to load.
type SceneConfig struct {
	File string `yaml:"file"`
	// SnapshotInitial records every node's loaded transform as its rest pose.
	SnapshotInitial bool `yaml:"snapshot_initial"`
}

// AnimationConfig holds clip playback settings.
type AnimationConfig struct {
	Clip string `yaml:"clip"`
	// Time is the clip time in seconds sampled by single-pose commands.
	Time float32 `yaml:"time"`
	FPS  int     `yaml:"fps"`
	// Duration limits playback; zero plays the clip once.
	Duration time.Duration `yaml:"duration"`
}

// OutputConfig controls how transforms are printed.
type OutputConfig struct {
	Precision int  `yaml:"precision"`
	Matrices  bool `yaml:"matrices"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	JSON    bool   `yaml:"json"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Scene: SceneConfig{
			File:            "scene.yaml",
			SnapshotInitial: true,
		},
		Animation: AnimationConfig{
			Clip:     "",
			Time:     0,
			FPS:      30,
			Duration: 0,
		},
		Output: OutputConfig{
			Precision: 3,
			Matrices:  false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
