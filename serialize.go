package bramble

import (
	"encoding/json"
	"fmt"
)

// ToData converts the node and, transitively, its subtree to the plain data
// record shape. The children key is omitted entirely when the node has none,
// and type is omitted when unset; style, expanded, selected, hidden, tags,
// and data are always present.
func (n *Node) ToData() *NodeData {
	style := n.style.Patch()
	expanded := n.Expanded
	d := &NodeData{
		ID:       n.id,
		Text:     n.Text,
		Runs:     append([]TextRun(nil), n.Runs...),
		Type:     n.Type,
		Style:    &style,
		Expanded: &expanded,
		Selected: n.Selected,
		Hidden:   n.Hidden,
		Tags:     append([]string{}, n.tags...),
		Data:     copyDataMap(n.Data),
		X:        n.x,
		Y:        n.y,
		Width:    n.width,
		Height:   n.height,
	}
	if d.Data == nil {
		d.Data = map[string]any{}
	}
	for _, child := range n.children {
		d.Children = append(d.Children, child.ToData())
	}
	return d
}

// FromData reconstructs a node (and its subtree) from a plain data record.
// Identical to NewNode; provided for symmetry with ToData.
func FromData(data NodeData) *Node {
	return NewNode(data)
}

// ToJSON serializes the node and its subtree to JSON.
func (n *Node) ToJSON() ([]byte, error) {
	return json.Marshal(n.ToData())
}

// FromJSON reconstructs a node tree from JSON produced by ToJSON or from any
// record in the same shape.
func FromJSON(data []byte) (*Node, error) {
	var record NodeData
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("bramble: parse node record: %w", err)
	}
	return NewNode(record), nil
}
