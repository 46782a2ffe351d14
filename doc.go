// Package bramble is an interactive mind-map authoring core for [Ebitengine].
//
// Bramble maintains a hierarchical document of styled nodes, supports
// reversible editing through a command history, and maps the document onto a
// drawing surface through a pan/zoom viewport. Layout algorithms, theming,
// and import/export codecs are left to the embedding application; bramble
// supplies the document model they operate on and the camera and renderer
// that put it on screen.
//
// # Document tree
//
// Every topic is a [Node]. Nodes form a single-rooted ownership tree;
// Parent is a back-reference only. Construct nodes from plain records and
// wire them up with [Node.AddChild]:
//
//	root := bramble.NewRootNode(bramble.NodeData{ID: "root", Text: "Plan"})
//	idea := root.AddChildData(bramble.NodeData{Text: "First idea"})
//
// Geometry is written by your layout stage through [Node.SetPosition] and
// [Node.SetSize]; [Node.Rect] and [Node.Center] are cached and never stale.
//
// # Undo/redo
//
// Wrap edits in commands and run them through a [History]:
//
//	history := bramble.NewHistory(bramble.HistoryConfig{})
//	history.Execute(bramble.NewSetTextCommand(idea, "Better idea"))
//	history.Undo()
//	history.Redo()
//
// Adjacent commands that report CanMerge coalesce into a single undo step,
// so keystroke-level text edits undo as one.
//
// # Viewport
//
// A [Viewport] maps document space to surface space with a clamped uniform
// scale. Zooming is anchored (the document point under the cursor stays
// put), panning can run as a drag session, and transitions animate with
// ease-in-out cubic tweens (via [gween]) advanced by [Viewport.Update].
//
// # Rendering and events
//
// [Renderer.Draw] paints the visible tree through the viewport onto an
// ebiten image. An [EventBus] carries zoom-changed, pan-changed,
// history-changed, and node lifecycle notifications outward; handler
// panics are isolated so one bad subscriber cannot starve the rest.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package bramble
