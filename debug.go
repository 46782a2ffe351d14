package bramble

import (
	"fmt"
	"io"
	"os"
)

// Debug enables stderr diagnostics: isolated event-handler panics and tree
// shape warnings are reported instead of silently swallowed.
var Debug bool

// debugOut is where diagnostics go. Swappable in tests.
var debugOut io.Writer = os.Stderr

func debugf(format string, args ...any) {
	if !Debug {
		return
	}
	_, _ = fmt.Fprintf(debugOut, "[bramble] "+format+"\n", args...)
}

// debugMaxTreeDepth is the depth past which debugCheckTreeDepth warns.
const debugMaxTreeDepth = 64

// debugCheckTreeDepth warns on stderr if a node sits deeper than the
// threshold, which usually means a runaway programmatic insert loop.
func debugCheckTreeDepth(n *Node) {
	if !Debug {
		return
	}
	if n.Depth() > debugMaxTreeDepth {
		debugf("warning: tree depth %d exceeds %d (node %q)", n.Depth(), debugMaxTreeDepth, n.Text)
	}
}

// debugCheckUniqueIDs warns on stderr when the subtree under n carries a
// duplicate id. Construction from host records never fails, so a record
// reusing an id builds silently; this surfaces it in the debug path.
func debugCheckUniqueIDs(n *Node) {
	if !Debug {
		return
	}
	seen := make(map[string]bool)
	n.Traverse(func(node *Node) TraverseOp {
		if seen[node.id] {
			debugf("warning: duplicate node id %q (node %q)", node.id, node.Text)
		}
		seen[node.id] = true
		return TraverseContinue
	})
}
