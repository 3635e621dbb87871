package main

import (
	"fmt"
	"io"
	gomath "math"
	"strconv"
	"strings"

	"github.com/Faultbox/meshview/pkg/math"
	"github.com/Faultbox/meshview/pkg/scenegraph"
)

func formatFloat(f float32, prec int) string {
	s := strconv.FormatFloat(float64(f), 'f', prec, 32)
	if s == "-"+strconv.FormatFloat(0, 'f', prec, 32) {
		return s[1:]
	}
	return s
}

func formatVec(v math.Vec3, prec int) string {
	return "(" + formatFloat(v.X, prec) + ", " + formatFloat(v.Y, prec) + ", " + formatFloat(v.Z, prec) + ")"
}

// formatRotation prints a quaternion as an axis and an angle in degrees.
func formatRotation(q math.Quat, prec int) string {
	axis, angle := q.AxisAngle()
	return formatFloat(angle*180/gomath.Pi, prec) + "° about " + formatVec(axis, prec)
}

func printTree(w io.Writer, root *scenegraph.Node, prec int) {
	base := root.Depth()
	root.Walk(func(n *scenegraph.Node) bool {
		indent := strings.Repeat("  ", n.Depth()-base)
		fmt.Fprintf(w, "%s%s  local %s  world %s\n",
			indent, n.Name(), formatVec(n.Position(), prec), formatVec(n.DerivedPosition(), prec))
		return true
	})
}

func printDerived(w io.Writer, root *scenegraph.Node, prec int, matrices bool) {
	root.Walk(func(n *scenegraph.Node) bool {
		fmt.Fprintf(w, "%s\n", n.Path())
		fmt.Fprintf(w, "  position    %s\n", formatVec(n.DerivedPosition(), prec))
		fmt.Fprintf(w, "  orientation %s\n", formatRotation(n.DerivedOrientation(), prec))
		fmt.Fprintf(w, "  scale       %s\n", formatVec(n.DerivedScale(), prec))
		if matrices {
			printMatrix(w, n.DerivedTransform(), prec)
		}
		return true
	})
}

// printMatrix prints m row by row. Storage is column-major.
func printMatrix(w io.Writer, m math.Mat4, prec int) {
	for row := 0; row < 4; row++ {
		cells := make([]string, 4)
		for col := 0; col < 4; col++ {
			cells[col] = formatFloat(m[col*4+row], prec)
		}
		fmt.Fprintf(w, "  [ %s ]\n", strings.Join(cells, "  "))
	}
}
