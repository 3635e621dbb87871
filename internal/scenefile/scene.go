package scenefile

import (
	gomath "math"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/animation"
	"github.com/Faultbox/meshview/pkg/math"
	"github.com/Faultbox/meshview/pkg/scenegraph"
)

// RootName names the node created to hold several top-level nodes.
const RootName = "scene"

// Options controls how a document is turned into nodes.
type Options struct {
	// SnapshotInitial calls SetInitialState on every node after loading.
	SnapshotInitial bool
}

// DefaultOptions returns the options used by Load and Parse.
func DefaultOptions() Options {
	return Options{SnapshotInitial: true}
}

// Scene is a loaded node tree with its clips.
type Scene struct {
	Root  *scenegraph.Node
	Clips []*animation.Clip
	// Nodes counts every node in the tree, including a synthetic root.
	Nodes int
}

// Clip returns the clip with the given name, or nil.
func (s *Scene) Clip(name string) *animation.Clip {
	for _, c := range s.Clips {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Load reads and builds a scene file with default options.
func Load(path string) (*Scene, error) {
	return LoadWithOptions(path, DefaultOptions())
}

// LoadWithOptions reads and builds a scene file.
func LoadWithOptions(path string, opts Options) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scene %s", path)
	}
	scene, err := ParseWithOptions(data, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "loading scene %s", path)
	}
	logger.Named("scenefile").Info("loaded scene",
		zap.String("path", path),
		zap.Int("nodes", scene.Nodes),
		zap.Int("clips", len(scene.Clips)))
	return scene, nil
}

// Parse builds a scene from YAML data with default options.
func Parse(data []byte) (*Scene, error) {
	return ParseWithOptions(data, DefaultOptions())
}

// ParseWithOptions builds a scene from YAML data.
func ParseWithOptions(data []byte, opts Options) (*Scene, error) {
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Build(doc, opts)
}

// Build turns a decoded document into nodes and clips. A single top-level
// node becomes the root; several are attached under a node named RootName.
func Build(doc *Document, opts Options) (*Scene, error) {
	log := logger.Named("scenefile")
	scene := &Scene{}

	var tops []*scenegraph.Node
	for i := range doc.Nodes {
		n, err := buildNode(&doc.Nodes[i], scene)
		if err != nil {
			return nil, err
		}
		tops = append(tops, n)
	}

	if len(tops) == 1 {
		scene.Root = tops[0]
	} else {
		scene.Root = scenegraph.New(RootName)
		scene.Nodes++
		for _, n := range tops {
			if err := scene.Root.Attach(n); err != nil {
				return nil, errors.Wrapf(err, "attaching %q to scene root", n.Name())
			}
		}
	}

	seen := make(map[string]bool)
	scene.Root.Walk(func(n *scenegraph.Node) bool {
		if seen[n.Name()] {
			log.Warn("duplicate node name, tracks bind to the first match", zap.String("node", n.Path()))
		}
		seen[n.Name()] = true
		if opts.SnapshotInitial {
			n.SetInitialState()
		}
		return true
	})

	for i := range doc.Clips {
		clip, err := buildClip(&doc.Clips[i])
		if err != nil {
			return nil, err
		}
		for _, tr := range clip.Tracks {
			if scene.Root.Find(tr.Node) == nil {
				return nil, errors.Errorf("clip %q animates unknown node %q", clip.Name, tr.Node)
			}
		}
		if scene.Clip(clip.Name) != nil {
			return nil, errors.Errorf("duplicate clip %q", clip.Name)
		}
		scene.Clips = append(scene.Clips, clip)
		log.Debug("built clip",
			zap.String("clip", clip.Name),
			zap.Int("tracks", len(clip.Tracks)),
			zap.Float32("length", clip.Length()))
	}

	return scene, nil
}

func buildNode(spec *NodeSpec, scene *Scene) (*scenegraph.Node, error) {
	if spec.Name == "" {
		return nil, errors.New("node without a name")
	}
	n := scenegraph.New(spec.Name)
	scene.Nodes++

	if spec.Position != nil {
		n.SetPosition(math.Vec3FromArray(*spec.Position))
	}
	if spec.Rotation != nil {
		q, err := spec.Rotation.Orientation()
		if err != nil {
			return nil, errors.Wrapf(err, "node %q", spec.Name)
		}
		n.SetOrientation(q)
	}
	if spec.Scale != nil {
		n.SetScale(math.Vec3FromArray(*spec.Scale))
	}
	if spec.InheritOrientation != nil {
		n.SetInheritOrientation(*spec.InheritOrientation)
	}
	if spec.InheritScale != nil {
		n.SetInheritScale(*spec.InheritScale)
	}

	for i := range spec.Children {
		child, err := buildNode(&spec.Children[i], scene)
		if err != nil {
			return nil, errors.Wrapf(err, "in %q", spec.Name)
		}
		if err := n.Attach(child); err != nil {
			return nil, errors.Wrapf(err, "attaching %q", child.Name())
		}
	}
	return n, nil
}

// Orientation converts the spec to a unit quaternion. An entry must set
// exactly one of axis and quat.
func (r *RotationSpec) Orientation() (math.Quat, error) {
	switch {
	case r.Quat != nil && r.Axis != nil:
		return math.Quat{}, errors.New("rotation sets both axis and quat")
	case r.Quat != nil:
		q := math.Quat{X: r.Quat[0], Y: r.Quat[1], Z: r.Quat[2], W: r.Quat[3]}
		if q.Dot(q) == 0 {
			return math.Quat{}, errors.New("zero quaternion")
		}
		return q.Normalize(), nil
	case r.Axis != nil:
		axis := math.Vec3FromArray(*r.Axis)
		if axis.Length() == 0 {
			return math.Quat{}, errors.New("zero rotation axis")
		}
		rad := r.Angle * gomath.Pi / 180
		return math.QuatFromAxisAngle(axis.Normalize(), rad), nil
	default:
		return math.Quat{}, errors.New("rotation needs axis or quat")
	}
}

func buildClip(spec *ClipSpec) (*animation.Clip, error) {
	if spec.Name == "" {
		return nil, errors.New("clip without a name")
	}
	clip := &animation.Clip{
		Name:     spec.Name,
		Duration: spec.Duration,
		Loop:     spec.Loop,
	}
	for _, ts := range spec.Tracks {
		tr := animation.Track{Node: ts.Node}
		for _, k := range ts.Position {
			tr.Position = append(tr.Position, animation.PositionKey{Time: k.T, Value: math.Vec3FromArray(k.V)})
		}
		for i := range ts.Rotation {
			k := &ts.Rotation[i]
			q, err := k.Orientation()
			if err != nil {
				return nil, errors.Wrapf(err, "clip %q, node %q, rotation key %d", spec.Name, ts.Node, i)
			}
			tr.Rotation = append(tr.Rotation, animation.RotationKey{Time: k.T, Value: q})
		}
		for _, k := range ts.Scale {
			tr.Scale = append(tr.Scale, animation.ScaleKey{Time: k.T, Value: math.Vec3FromArray(k.V)})
		}
		clip.Tracks = append(clip.Tracks, tr)
	}
	if err := clip.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid clip")
	}
	return clip, nil
}
