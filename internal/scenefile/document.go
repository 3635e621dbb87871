// Package scenefile reads YAML scene descriptions into scene graph trees and
// animation clips.
package scenefile

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Document is the decoded YAML form of a scene file.
type Document struct {
	Nodes []NodeSpec `yaml:"nodes"`
	Clips []ClipSpec `yaml:"clips"`
}

// NodeSpec describes one node and its subtree. Omitted fields take the
// defaults of a new node.
type NodeSpec struct {
	Name               string        `yaml:"name"`
	Position           *[3]float32   `yaml:"position"`
	Rotation           *RotationSpec `yaml:"rotation"`
	Scale              *[3]float32   `yaml:"scale"`
	InheritOrientation *bool         `yaml:"inherit_orientation"`
	InheritScale       *bool         `yaml:"inherit_scale"`
	Children           []NodeSpec    `yaml:"children"`
}

// RotationSpec is either an axis with an angle in degrees, or a raw
// quaternion [x, y, z, w].
type RotationSpec struct {
	Axis  *[3]float32 `yaml:"axis"`
	Angle float32     `yaml:"angle"`
	Quat  *[4]float32 `yaml:"quat"`
}

// ClipSpec describes an animation clip.
type ClipSpec struct {
	Name     string      `yaml:"name"`
	Duration float32     `yaml:"duration"`
	Loop     bool        `yaml:"loop"`
	Tracks   []TrackSpec `yaml:"tracks"`
}

// TrackSpec holds the keyframes for one node.
type TrackSpec struct {
	Node     string   `yaml:"node"`
	Position []VecKey `yaml:"position"`
	Rotation []RotKey `yaml:"rotation"`
	Scale    []VecKey `yaml:"scale"`
}

// VecKey is a vector keyframe at time T seconds.
type VecKey struct {
	T float32    `yaml:"t"`
	V [3]float32 `yaml:"v"`
}

// RotKey is a rotation keyframe at time T seconds.
type RotKey struct {
	T            float32 `yaml:"t"`
	RotationSpec `yaml:",inline"`
}

// Decode parses YAML scene data without building nodes.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decoding scene yaml")
	}
	if len(doc.Nodes) == 0 {
		return nil, errors.New("scene has no nodes")
	}
	return &doc, nil
}
