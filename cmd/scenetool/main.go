// scenetool is a CLI utility for inspecting scene descriptions and evaluating
// their node hierarchies.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
		fileCfg.JSON = cfg.Logging.JSON
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, true); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	t := &tool{cfg: cfg, out: os.Stdout}
	switch command {
	case "tree":
		err = t.cmdTree(args)
	case "eval":
		err = t.cmdEval(args)
	case "matrix", "mat":
		err = t.cmdMatrix(args)
	case "clips":
		err = t.cmdClips(args)
	case "play":
		err = t.cmdPlay(args)
	case "config":
		err = t.cmdConfig(args)
	case "dump":
		err = t.cmdDump(args)
	case "watch":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err = t.cmdWatch(ctx, args)
		stop()
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`scenetool - scene hierarchy inspector

Usage:
  scenetool [flags] <command> [options]

Commands:
  tree [scene.yaml]                     Show the hierarchy with local and derived positions
  eval [scene.yaml] [-clip c] [-t sec]  Apply a clip pose and print derived transforms
  matrix [scene.yaml] <node>            Print a node's derived 4x4 transform
  clips [scene.yaml]                    List animation clips
  play [scene.yaml] [-clip c]           Step a clip at the configured frame rate
  config [-save] [path]                 Print the effective config, or save it
  dump [scene.yaml]                     Dump the decoded scene description
  watch [scene.yaml]                    Reprint the tree whenever the file changes

The scene defaults to scene.file from the config (or -scene).

Flags:
  -config, -debug, -scene, -clip, -time, -fps, -precision, -matrices, -log-file

Examples:
  scenetool tree robot.yaml
  scenetool -precision 2 eval robot.yaml -clip wave -t 0.5
  scenetool matrix robot.yaml hand
  scenetool -fps 10 play robot.yaml -clip wave`)
}
