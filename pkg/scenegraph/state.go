package scenegraph

// State tags whether a node's cached derived transform can be used as is.
type State uint8

const (
	// Dirty means the cache is stale and is recomputed on the next query.
	Dirty State = iota
	// Clean means the cache matches the local state and all ancestors.
	Clean
)

func (s State) String() string {
	switch s {
	case Dirty:
		return "dirty"
	case Clean:
		return "clean"
	default:
		return "unknown"
	}
}
