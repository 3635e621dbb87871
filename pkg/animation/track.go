// Package animation drives scene graph nodes over time: keyframe clips that
// perturb nodes from their initial state, and eased tweens.
package animation

import (
	"fmt"

	"github.com/Faultbox/meshview/pkg/math"
)

// PositionKey is a position keyframe. Time is in seconds.
type PositionKey struct {
	Time  float32
	Value math.Vec3
}

// RotationKey is an orientation keyframe.
type RotationKey struct {
	Time  float32
	Value math.Quat
}

// ScaleKey is a scale keyframe.
type ScaleKey struct {
	Time  float32
	Value math.Vec3
}

// Track animates the local transform of a single named node. Channels without
// keys leave the corresponding field at the node's initial state.
type Track struct {
	Node     string
	Position []PositionKey
	Rotation []RotationKey
	Scale    []ScaleKey
}

// Sample is a track evaluated at one point in time.
type Sample struct {
	Position    math.Vec3
	Orientation math.Quat
	Scale       math.Vec3

	HasPosition    bool
	HasOrientation bool
	HasScale       bool
}

// Sample evaluates every channel of the track at time t. Times before the
// first key or after the last one clamp to the end keys.
func (tr *Track) Sample(t float32) Sample {
	s := Sample{
		Orientation: math.QuatIdentity(),
		Scale:       math.Vec3One(),
	}
	if len(tr.Position) > 0 {
		s.Position = interpolatePosition(tr.Position, t)
		s.HasPosition = true
	}
	if len(tr.Rotation) > 0 {
		s.Orientation = interpolateRotation(tr.Rotation, t)
		s.HasOrientation = true
	}
	if len(tr.Scale) > 0 {
		s.Scale = interpolateScale(tr.Scale, t)
		s.HasScale = true
	}
	return s
}

// Validate checks that keys in every channel are sorted by time.
func (tr *Track) Validate() error {
	for i := 1; i < len(tr.Position); i++ {
		if tr.Position[i].Time < tr.Position[i-1].Time {
			return fmt.Errorf("track %q: position key %d out of order", tr.Node, i)
		}
	}
	for i := 1; i < len(tr.Rotation); i++ {
		if tr.Rotation[i].Time < tr.Rotation[i-1].Time {
			return fmt.Errorf("track %q: rotation key %d out of order", tr.Node, i)
		}
	}
	for i := 1; i < len(tr.Scale); i++ {
		if tr.Scale[i].Time < tr.Scale[i-1].Time {
			return fmt.Errorf("track %q: scale key %d out of order", tr.Node, i)
		}
	}
	return nil
}

// End returns the time of the last key in any channel.
func (tr *Track) End() float32 {
	var end float32
	if n := len(tr.Position); n > 0 && tr.Position[n-1].Time > end {
		end = tr.Position[n-1].Time
	}
	if n := len(tr.Rotation); n > 0 && tr.Rotation[n-1].Time > end {
		end = tr.Rotation[n-1].Time
	}
	if n := len(tr.Scale); n > 0 && tr.Scale[n-1].Time > end {
		end = tr.Scale[n-1].Time
	}
	return end
}

// bracket finds the keys surrounding t in a sorted key list of length n and
// the blend factor between them. prev == next when t is outside the key range.
func bracket(n int, timeAt func(int) float32, t float32) (prev, next int, f float32) {
	for i := 0; i < n; i++ {
		if timeAt(i) > t {
			next = i
			break
		}
		prev = i
		next = i
	}
	if prev == next {
		return prev, next, 0
	}
	t0, t1 := timeAt(prev), timeAt(next)
	if t1 != t0 {
		f = (t - t0) / (t1 - t0)
	}
	return prev, next, f
}

func interpolatePosition(keys []PositionKey, t float32) math.Vec3 {
	prev, next, f := bracket(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if prev == next {
		return keys[prev].Value
	}
	return keys[prev].Value.Lerp(keys[next].Value, f)
}

func interpolateRotation(keys []RotationKey, t float32) math.Quat {
	prev, next, f := bracket(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if prev == next {
		return keys[prev].Value
	}
	return keys[prev].Value.Slerp(keys[next].Value, f)
}

func interpolateScale(keys []ScaleKey, t float32) math.Vec3 {
	prev, next, f := bracket(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if prev == next {
		return keys[prev].Value
	}
	return keys[prev].Value.Lerp(keys[next].Value, f)
}
