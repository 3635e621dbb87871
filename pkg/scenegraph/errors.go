package scenegraph

import "errors"

var (
	// ErrNilNode is returned when a nil node is passed where a node is required.
	ErrNilNode = errors.New("scenegraph: nil node")

	// ErrCycle is returned when attaching a node would make it its own ancestor.
	ErrCycle = errors.New("scenegraph: attachment would create a cycle")
)
