package bramble

import (
	"encoding/json"
	"fmt"
	"time"
)

// Snapshot is one committed history entry as a host application may choose
// to record it: a timestamped full tree snapshot with an optional
// description. The core never records snapshots itself.
type Snapshot struct {
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description,omitempty"`
	Root        *NodeData `json:"root"`
}

// TakeSnapshot captures the full tree under root right now.
func TakeSnapshot(root *Node, description string) Snapshot {
	return Snapshot{
		Timestamp:   time.Now(),
		Description: description,
		Root:        root.ToData(),
	}
}

// Restore reconstructs the snapshot's tree. The returned tree is a fresh
// value; the snapshot can be restored any number of times.
func (s Snapshot) Restore() *Node {
	if s.Root == nil {
		return nil
	}
	return NewNode(*s.Root)
}

// MarshalSnapshot serializes a snapshot to JSON.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalSnapshot parses a snapshot from JSON.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("bramble: parse snapshot: %w", err)
	}
	return s, nil
}
