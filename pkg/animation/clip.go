package animation

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/meshview/pkg/scenegraph"
)

// ErrUnknownNode is returned when a track names a node missing from the tree.
var ErrUnknownNode = errors.New("animation: track targets unknown node")

// Clip is a named set of tracks sharing one timeline.
type Clip struct {
	Name string
	// Duration in seconds. Zero means the end of the longest track.
	Duration float32
	Loop     bool
	Tracks   []Track
}

// Length returns the playback length of the clip.
func (c *Clip) Length() float32 {
	if c.Duration > 0 {
		return c.Duration
	}
	var end float32
	for i := range c.Tracks {
		if e := c.Tracks[i].End(); e > end {
			end = e
		}
	}
	return end
}

// Validate checks every track of the clip.
func (c *Clip) Validate() error {
	if c.Duration < 0 {
		return fmt.Errorf("clip %q: negative duration", c.Name)
	}
	for i := range c.Tracks {
		if err := c.Tracks[i].Validate(); err != nil {
			return fmt.Errorf("clip %q: %w", c.Name, err)
		}
	}
	return nil
}

type binding struct {
	track *Track
	node  *scenegraph.Node
}

// Player plays a clip on a node tree. Every frame the bound nodes are reset
// to their initial state and the animated channels are written on top, so the
// initial state acts as the rest pose.
type Player struct {
	clip     *Clip
	bindings []binding
	// nodes lists each bound node once, in track order.
	nodes []*scenegraph.Node
	time  float32
}

// NewPlayer creates a player for clip. Call Bind before Apply.
func NewPlayer(clip *Clip) *Player {
	return &Player{clip: clip}
}

// Clip returns the clip being played.
func (p *Player) Clip() *Clip { return p.clip }

// Time returns the current playback time in seconds.
func (p *Player) Time() float32 { return p.time }

// Bind resolves each track to the first node under root with the track's name.
// Several tracks may target the same node.
func (p *Player) Bind(root *scenegraph.Node) error {
	bindings := make([]binding, 0, len(p.clip.Tracks))
	var nodes []*scenegraph.Node
	seen := make(map[*scenegraph.Node]bool)
	for i := range p.clip.Tracks {
		tr := &p.clip.Tracks[i]
		node := root.Find(tr.Node)
		if node == nil {
			return fmt.Errorf("clip %q, node %q: %w", p.clip.Name, tr.Node, ErrUnknownNode)
		}
		bindings = append(bindings, binding{track: tr, node: node})
		if !seen[node] {
			seen[node] = true
			nodes = append(nodes, node)
		}
	}
	p.bindings = bindings
	p.nodes = nodes
	return nil
}

// Seek sets the playback time, wrapping for looping clips and clamping
// otherwise.
func (p *Player) Seek(t float32) {
	length := p.clip.Length()
	switch {
	case length <= 0:
		t = 0
	case p.clip.Loop:
		t = float32(gomath.Mod(float64(t), float64(length)))
		if t < 0 {
			t += length
		}
	case t > length:
		t = length
	case t < 0:
		t = 0
	}
	p.time = t
}

// Advance moves playback forward by dt seconds.
func (p *Player) Advance(dt float32) {
	p.Seek(p.time + dt)
}

// Done reports whether a non-looping clip has reached its end.
func (p *Player) Done() bool {
	return !p.clip.Loop && p.time >= p.clip.Length()
}

// Apply writes the pose at the current time into the bound nodes. Every
// node is reset once before any track writes to it, so tracks sharing a node
// combine their channels.
func (p *Player) Apply() {
	for _, n := range p.nodes {
		n.ResetToInitialState()
	}
	for _, b := range p.bindings {
		s := b.track.Sample(p.time)
		if s.HasPosition {
			b.node.SetPosition(s.Position)
		}
		if s.HasOrientation {
			b.node.SetOrientation(s.Orientation)
		}
		if s.HasScale {
			b.node.SetScale(s.Scale)
		}
	}
}

// Stop rewinds playback and returns every bound node to its initial state.
func (p *Player) Stop() {
	p.time = 0
	for _, n := range p.nodes {
		n.ResetToInitialState()
	}
}
