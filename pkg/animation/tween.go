package animation

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/Faultbox/meshview/pkg/math"
	"github.com/Faultbox/meshview/pkg/scenegraph"
)

// Tween eases one local transform property of a node toward a target. Each
// Update writes through the node setters, so the node's subtree is marked
// dirty. There is no global manager; callers Update their tweens each frame.
type Tween struct {
	tweens [3]*gween.Tween
	count  int
	apply  func(v [3]float32)
	Done   bool
}

// Update advances the tween by dt seconds.
func (tw *Tween) Update(dt float32) {
	if tw.Done {
		return
	}
	var v [3]float32
	allDone := true
	for i := 0; i < tw.count; i++ {
		val, finished := tw.tweens[i].Update(dt)
		v[i] = val
		if !finished {
			allDone = false
		}
	}
	tw.Done = allDone
	tw.apply(v)
}

func newVec3Tween(from, to math.Vec3, duration float32, fn ease.TweenFunc, apply func(math.Vec3)) *Tween {
	tw := &Tween{count: 3}
	tw.tweens[0] = gween.New(from.X, to.X, duration, fn)
	tw.tweens[1] = gween.New(from.Y, to.Y, duration, fn)
	tw.tweens[2] = gween.New(from.Z, to.Z, duration, fn)
	tw.apply = func(v [3]float32) { apply(math.Vec3FromArray(v)) }
	return tw
}

// TweenPosition eases node's local position to the target.
func TweenPosition(node *scenegraph.Node, to math.Vec3, duration float32, fn ease.TweenFunc) *Tween {
	return newVec3Tween(node.Position(), to, duration, fn, node.SetPosition)
}

// TweenScale eases node's local scale to the target.
func TweenScale(node *scenegraph.Node, to math.Vec3, duration float32, fn ease.TweenFunc) *Tween {
	return newVec3Tween(node.Scale(), to, duration, fn, node.SetScale)
}

// TweenOrientation eases node's local orientation to the target along the
// shortest arc. The easing function shapes the slerp factor.
func TweenOrientation(node *scenegraph.Node, to math.Quat, duration float32, fn ease.TweenFunc) *Tween {
	from := node.Orientation()
	tw := &Tween{count: 1}
	tw.tweens[0] = gween.New(0, 1, duration, fn)
	tw.apply = func(v [3]float32) {
		node.SetOrientation(from.Slerp(to, v[0]))
	}
	return tw
}
