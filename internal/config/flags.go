package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagScene     = flag.String("scene", "", "Scene description file")
	flagClip      = flag.String("clip", "", "Animation clip to apply")
	flagTime      = flag.Float64("time", -1, "Clip time in seconds")
	flagFPS       = flag.Int("fps", 0, "Playback frames per second")
	flagPrecision = flag.Int("precision", -1, "Decimal places in printed values")
	flagMatrices  = flag.Bool("matrices", false, "Print derived 4x4 matrices")
	flagLogFile   = flag.String("log-file", "", "Write logs to this file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagScene != "" {
		cfg.Scene.File = *flagScene
	}
	if *flagClip != "" {
		cfg.Animation.Clip = *flagClip
	}
	if *flagTime >= 0 {
		cfg.Animation.Time = float32(*flagTime)
	}
	if *flagFPS > 0 {
		cfg.Animation.FPS = *flagFPS
	}
	if *flagPrecision >= 0 {
		cfg.Output.Precision = *flagPrecision
	}
	if *flagMatrices {
		cfg.Output.Matrices = true
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
