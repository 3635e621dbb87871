package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/meshview/internal/config"
)

const robotScene = `
nodes:
  - name: base
    position: [10, 0, 0]
    scale: [2, 2, 2]
    children:
      - name: arm
        position: [0, 1, 0]
        rotation: {axis: [0, 0, 1], angle: 90}
        children:
          - name: hand
            position: [1, 0, 0]
clips:
  - name: wave
    duration: 2
    loop: true
    tracks:
      - node: arm
        rotation:
          - {t: 0, axis: [0, 0, 1], angle: 90}
          - {t: 2, axis: [0, 0, 1], angle: 180}
      - node: hand
        position:
          - {t: 0, v: [1, 0, 0]}
          - {t: 1, v: [3, 0, 0]}
`

func newTestTool(t *testing.T) (*tool, *bytes.Buffer, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "robot.yaml")
	if err := os.WriteFile(path, []byte(robotScene), 0644); err != nil {
		t.Fatalf("write scene: %v", err)
	}
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.Scene.File = path
	return &tool{cfg: cfg, out: &buf}, &buf, path
}

func TestCmdTree(t *testing.T) {
	tl, buf, path := newTestTool(t)
	if err := tl.cmdTree([]string{path}); err != nil {
		t.Fatalf("tree: %v", err)
	}

	want := "    hand  local (1.000, 0.000, 0.000)  world (10.000, 4.000, 0.000)\n"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("tree output missing %q:\n%s", want, buf.String())
	}
}

func TestCmdEvalWithClip(t *testing.T) {
	tl, buf, path := newTestTool(t)
	if err := tl.cmdEval([]string{path, "-clip", "wave", "-t", "1"}); err != nil {
		t.Fatalf("eval: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "clip wave at 1.000\n") {
		t.Errorf("missing clip header:\n%s", out)
	}
	// arm turned to 135 degrees, hand moved to (3,0,0) and scaled by 2
	if !strings.Contains(out, "base/arm/hand\n  position    (5.757, 6.243, 0.000)") {
		t.Errorf("unexpected hand pose:\n%s", out)
	}
}

func TestCmdEvalUsesConfiguredScene(t *testing.T) {
	tl, buf, _ := newTestTool(t)
	tl.cfg.Output.Precision = 1
	tl.cfg.Output.Matrices = true
	if err := tl.cmdEval(nil); err != nil {
		t.Fatalf("eval: %v", err)
	}
	if !strings.Contains(buf.String(), "  [ 2.0  0.0  0.0  10.0 ]") {
		t.Errorf("expected base matrix in output:\n%s", buf.String())
	}
}

func TestCmdMatrix(t *testing.T) {
	tl, buf, path := newTestTool(t)
	if err := tl.cmdMatrix([]string{path, "base"}); err != nil {
		t.Fatalf("matrix: %v", err)
	}
	want := "  [ 2.000  0.000  0.000  10.000 ]\n" +
		"  [ 0.000  2.000  0.000  0.000 ]\n" +
		"  [ 0.000  0.000  2.000  0.000 ]\n" +
		"  [ 0.000  0.000  0.000  1.000 ]\n" +
		"  det 8.000\n"
	if buf.String() != want {
		t.Errorf("matrix output:\n%s\nwant:\n%s", buf.String(), want)
	}

	if err := tl.cmdMatrix([]string{path, "ghost"}); err == nil {
		t.Error("expected error for unknown node")
	}
	if err := tl.cmdMatrix(nil); err == nil {
		t.Error("expected usage error")
	}
}

func TestCmdConfigSaveTo(t *testing.T) {
	tl, buf, _ := newTestTool(t)
	tl.cfg.Animation.FPS = 12
	path := filepath.Join(t.TempDir(), "nested", "meshview.yaml")

	if err := tl.cmdConfig([]string{"-save", path}); err != nil {
		t.Fatalf("config -save: %v", err)
	}
	if buf.String() != "saved "+path+"\n" {
		t.Errorf("unexpected output %q", buf.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}
	var saved config.Config
	if err := yaml.Unmarshal(data, &saved); err != nil {
		t.Fatalf("decode saved config: %v", err)
	}
	if saved.Animation.FPS != 12 || saved.Scene.File != tl.cfg.Scene.File {
		t.Errorf("saved config = %+v", saved)
	}
}

func TestCmdConfigPrints(t *testing.T) {
	tl, buf, _ := newTestTool(t)
	if err := tl.cmdConfig(nil); err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(buf.String(), "fps: 30") {
		t.Errorf("config output missing fps:\n%s", buf.String())
	}
}

func TestCmdClips(t *testing.T) {
	tl, buf, path := newTestTool(t)
	if err := tl.cmdClips([]string{path}); err != nil {
		t.Fatalf("clips: %v", err)
	}
	if !strings.Contains(buf.String(), "2.000s 2 tracks loop") {
		t.Errorf("unexpected clips output: %q", buf.String())
	}
}

func TestCmdPlay(t *testing.T) {
	tl, buf, path := newTestTool(t)
	tl.cfg.Animation.FPS = 2

	if err := tl.cmdPlay([]string{path, "-clip", "wave"}); err != nil {
		t.Fatalf("play: %v", err)
	}
	out := buf.String()
	if n := strings.Count(out, "frame "); n != 5 {
		t.Errorf("frames = %d, want 5", n)
	}
	if !strings.Contains(out, "frame 4 t=0.000") {
		t.Errorf("looping clip should wrap at its length:\n%s", out)
	}

	if err := tl.cmdPlay([]string{path}); err == nil {
		t.Error("expected error without a clip")
	}
	if err := tl.cmdPlay([]string{path, "-clip", "missing"}); err == nil {
		t.Error("expected error for unknown clip")
	}
}

func TestCmdDump(t *testing.T) {
	tl, buf, path := newTestTool(t)
	if err := tl.cmdDump([]string{path}); err != nil {
		t.Fatalf("dump: %v", err)
	}
	for _, want := range []string{`"base"`, `"hand"`, `"wave"`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("dump missing %s", want)
		}
	}
}

func TestCmdWatchPrintsInitialTree(t *testing.T) {
	tl, buf, path := newTestTool(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := tl.cmdWatch(ctx, []string{path}); err != nil {
		t.Fatalf("watch: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "--- "+path+" (3 nodes)\n") {
		t.Errorf("unexpected watch output:\n%s", buf.String())
	}
}

func TestReorder(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{[]string{"a.yaml", "-t", "1"}, []string{"-t", "1", "a.yaml"}},
		{[]string{"-clip=wave", "a.yaml"}, []string{"-clip=wave", "a.yaml"}},
		{[]string{"a.yaml"}, []string{"a.yaml"}},
		{nil, nil},
	}
	for _, tt := range tests {
		if got := reorder(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("reorder(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		f    float32
		prec int
		want string
	}{
		{1.23456, 2, "1.23"},
		{-0.0001, 3, "0.000"},
		{-1.5, 1, "-1.5"},
		{10, 0, "10"},
	}
	for _, tt := range tests {
		if got := formatFloat(tt.f, tt.prec); got != tt.want {
			t.Errorf("formatFloat(%v, %d) = %q, want %q", tt.f, tt.prec, got, tt.want)
		}
	}
}
