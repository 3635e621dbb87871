package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/internal/scenefile"
	"github.com/Faultbox/meshview/pkg/animation"
	"github.com/Faultbox/meshview/pkg/scenegraph"
)

type tool struct {
	cfg *config.Config
	out io.Writer
}

// scenePath picks the scene file from the first positional argument, falling
// back to the configured one.
func (t *tool) scenePath(fs *flag.FlagSet) string {
	if fs.NArg() > 0 {
		return fs.Arg(0)
	}
	return t.cfg.Scene.File
}

func (t *tool) load(path string) (*scenefile.Scene, error) {
	return scenefile.LoadWithOptions(path, scenefile.Options{
		SnapshotInitial: t.cfg.Scene.SnapshotInitial,
	})
}

func (t *tool) cmdTree(args []string) error {
	fs := flag.NewFlagSet("tree", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	scene, err := t.load(t.scenePath(fs))
	if err != nil {
		return err
	}
	printTree(t.out, scene.Root, t.cfg.Output.Precision)
	return nil
}

func (t *tool) cmdEval(args []string) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	clipName := fs.String("clip", t.cfg.Animation.Clip, "Clip to apply")
	at := fs.Float64("t", float64(t.cfg.Animation.Time), "Clip time in seconds")
	if err := fs.Parse(reorder(args)); err != nil {
		return err
	}

	scene, err := t.load(t.scenePath(fs))
	if err != nil {
		return err
	}

	if *clipName != "" {
		player, err := t.player(scene, *clipName)
		if err != nil {
			return err
		}
		player.Seek(float32(*at))
		player.Apply()
		fmt.Fprintf(t.out, "clip %s at %s\n", *clipName, formatFloat(player.Time(), t.cfg.Output.Precision))
	}

	printDerived(t.out, scene.Root, t.cfg.Output.Precision, t.cfg.Output.Matrices)
	return nil
}

func (t *tool) cmdMatrix(args []string) error {
	fs := flag.NewFlagSet("matrix", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	var path, name string
	switch fs.NArg() {
	case 1:
		path, name = t.cfg.Scene.File, fs.Arg(0)
	case 2:
		path, name = fs.Arg(0), fs.Arg(1)
	default:
		return errors.New("usage: scenetool matrix [scene.yaml] <node>")
	}

	scene, err := t.load(path)
	if err != nil {
		return err
	}
	node := scene.Root.Find(name)
	if node == nil {
		return errors.Errorf("node %q not found", name)
	}
	m := node.DerivedTransform()
	printMatrix(t.out, m, t.cfg.Output.Precision)
	// Negative for mirrored nodes; its magnitude is the volume scale.
	fmt.Fprintf(t.out, "  det %s\n", formatFloat(m.MGL().Det(), t.cfg.Output.Precision))
	return nil
}

// cmdConfig prints the effective configuration. With -save it is written to
// the given path, or to the user config directory when none is given.
func (t *tool) cmdConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	save := fs.Bool("save", false, "Write the configuration to disk")
	if err := fs.Parse(reorder(args)); err != nil {
		return err
	}

	if !*save {
		data, err := yaml.Marshal(t.cfg)
		if err != nil {
			return errors.Wrap(err, "encoding config")
		}
		_, err = t.out.Write(data)
		return err
	}

	var err error
	path := filepath.Join(config.ConfigDir(), "meshview.yaml")
	if fs.NArg() > 0 {
		path = fs.Arg(0)
		err = t.cfg.SaveTo(path)
	} else {
		err = t.cfg.Save()
	}
	if err != nil {
		return errors.Wrapf(err, "saving config to %s", path)
	}
	fmt.Fprintf(t.out, "saved %s\n", path)
	return nil
}

func (t *tool) cmdClips(args []string) error {
	fs := flag.NewFlagSet("clips", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	scene, err := t.load(t.scenePath(fs))
	if err != nil {
		return err
	}
	if len(scene.Clips) == 0 {
		fmt.Fprintln(t.out, "(no clips)")
		return nil
	}
	for _, c := range scene.Clips {
		loop := ""
		if c.Loop {
			loop = " loop"
		}
		fmt.Fprintf(t.out, "%-16s %ss %d tracks%s\n",
			c.Name, formatFloat(c.Length(), t.cfg.Output.Precision), len(c.Tracks), loop)
	}
	return nil
}

// cmdPlay steps a clip at the configured frame rate and prints the derived
// position of every animated node per frame. Looping clips play for the
// configured duration, or one cycle when none is set.
func (t *tool) cmdPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	clipName := fs.String("clip", t.cfg.Animation.Clip, "Clip to play")
	if err := fs.Parse(reorder(args)); err != nil {
		return err
	}
	if *clipName == "" {
		return errors.New("play needs a clip (-clip)")
	}

	scene, err := t.load(t.scenePath(fs))
	if err != nil {
		return err
	}
	player, err := t.player(scene, *clipName)
	if err != nil {
		return err
	}

	total := player.Clip().Length()
	if d := t.cfg.Animation.Duration; d > 0 {
		total = float32(d.Seconds())
	}
	dt := 1 / float32(t.cfg.Animation.FPS)
	frames := int(total/dt+0.5) + 1

	var nodes []*scenegraph.Node
	for _, tr := range player.Clip().Tracks {
		nodes = append(nodes, scene.Root.Find(tr.Node))
	}

	start := time.Now()
	for frame := 0; frame < frames; frame++ {
		player.Apply()
		fmt.Fprintf(t.out, "frame %d t=%s\n", frame, formatFloat(player.Time(), t.cfg.Output.Precision))
		for _, n := range nodes {
			fmt.Fprintf(t.out, "  %-16s %s\n", n.Name(), formatVec(n.DerivedPosition(), t.cfg.Output.Precision))
		}
		if player.Done() {
			break
		}
		player.Advance(dt)
	}

	logger.Debug("playback finished",
		zap.String("clip", *clipName),
		zap.Int("frames", frames),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// cmdWatch reprints the tree every time the scene file changes, until ctx
// is cancelled.
func (t *tool) cmdWatch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := t.scenePath(fs)
	w, err := scenefile.NewWatcher(path, scenefile.Options{
		SnapshotInitial: t.cfg.Scene.SnapshotInitial,
	})
	if err != nil {
		return err
	}
	defer w.Close()

	logger.Info("watching scene", zap.String("path", path))
	err = w.Run(ctx, func(scene *scenefile.Scene, err error) {
		if err != nil {
			logger.Error("reload failed", zap.Error(err))
			return
		}
		fmt.Fprintf(t.out, "--- %s (%d nodes)\n", path, scene.Nodes)
		printTree(t.out, scene.Root, t.cfg.Output.Precision)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (t *tool) cmdDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := t.scenePath(fs)
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading scene %s", path)
	}
	doc, err := scenefile.Decode(data)
	if err != nil {
		return err
	}

	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
	cfg.Fdump(t.out, doc)
	return nil
}

func (t *tool) player(scene *scenefile.Scene, name string) (*animation.Player, error) {
	clip := scene.Clip(name)
	if clip == nil {
		return nil, errors.Errorf("clip %q not found", name)
	}
	player := animation.NewPlayer(clip)
	if err := player.Bind(scene.Root); err != nil {
		return nil, err
	}
	return player, nil
}

// reorder moves positional arguments after flags so "eval scene.yaml -t 1"
// parses the same as "eval -t 1 scene.yaml".
func reorder(args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") {
			positional = append(positional, a)
			continue
		}
		flags = append(flags, a)
		if !strings.Contains(a, "=") && i+1 < len(args) {
			flags = append(flags, args[i+1])
			i++
		}
	}
	return append(flags, positional...)
}
