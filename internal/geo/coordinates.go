package geo

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Coordinates is a coordinate tree of any nesting depth. A leaf holds one
// position (X, Y and optionally Z); every other node holds an ordered list of
// child trees. The zero value is an empty sequence.
type Coordinates struct {
	Position []float64
	Children []Coordinates
}

// Pos returns a leaf holding the given ordinates.
func Pos(ordinates ...float64) Coordinates {
	if len(ordinates) == 0 {
		return Coordinates{}
	}
	return Coordinates{Position: ordinates}
}

// Seq returns an inner node holding children in order.
func Seq(children ...Coordinates) Coordinates {
	if children == nil {
		children = []Coordinates{}
	}
	return Coordinates{Children: children}
}

// IsLeaf reports whether c is a single position, i.e. its first element is a
// number rather than a nested sequence.
func (c Coordinates) IsLeaf() bool {
	return len(c.Position) > 0
}

// IsZero reports whether c holds nothing at all.
func (c Coordinates) IsZero() bool {
	return len(c.Position) == 0 && len(c.Children) == 0
}

// Depth follows the first child down to a leaf and returns the number of
// levels, 1 for a bare position. An empty tree has depth 0.
func (c Coordinates) Depth() int {
	depth := 0
	for node := c; ; node = node.Children[0] {
		if node.IsLeaf() {
			return depth + 1
		}
		if len(node.Children) == 0 {
			return depth
		}
		depth++
	}
}

// MarshalJSON writes the plain GeoJSON nested-array form.
func (c Coordinates) MarshalJSON() ([]byte, error) {
	if c.IsLeaf() {
		return json.Marshal(c.Position)
	}
	if c.Children == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.Children)
}

// UnmarshalJSON reads a nested array; a level whose first element is a number
// is a position.
func (c *Coordinates) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "coordinates")
	}

	*c = Coordinates{}
	if len(raw) == 0 {
		return nil
	}

	first := bytes.TrimSpace(raw[0])
	if len(first) > 0 && first[0] != '[' {
		var pos []float64
		if err := json.Unmarshal(data, &pos); err != nil {
			return errors.Wrap(err, "position")
		}
		c.Position = pos
		return nil
	}

	c.Children = make([]Coordinates, len(raw))
	for i, r := range raw {
		if err := json.Unmarshal(r, &c.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

// MarshalYAML writes the same nested-sequence form as MarshalJSON.
func (c Coordinates) MarshalYAML() (interface{}, error) {
	if c.IsLeaf() {
		return c.Position, nil
	}
	if c.Children == nil {
		return []float64{}, nil
	}
	return c.Children, nil
}

// UnmarshalYAML reads a nested sequence; a level whose first item is a scalar
// is a position.
func (c *Coordinates) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return errors.Newf("coordinates: expected sequence at line %d", node.Line)
	}

	*c = Coordinates{}
	if len(node.Content) == 0 {
		return nil
	}

	if node.Content[0].Kind == yaml.ScalarNode {
		var pos []float64
		if err := node.Decode(&pos); err != nil {
			return errors.Wrap(err, "position")
		}
		c.Position = pos
		return nil
	}

	c.Children = make([]Coordinates, len(node.Content))
	for i, child := range node.Content {
		if err := child.Decode(&c.Children[i]); err != nil {
			return err
		}
	}
	return nil
}
