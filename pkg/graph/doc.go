// Package graph defines the attributed geometry consumed by the diagram renderer.
//
// A [Layout] is the output of a layout collaborator: every node already has a
// center, a size and a label, every edge has its bend points, and clusters
// carry their final rectangles. The renderer never moves anything; it only
// reads this snapshot.
//
// # Core Types
//
//   - [Layout]: nodes, edges and the cluster arena plus graph-wide flags
//   - [Node]: center, size, optional depth, optional style, raw label
//   - [Edge]: endpoints, bends, [ArrowType], optional [Stroke], optional label
//   - [Cluster]: rectangle, style and child indices into [Layout.Clusters]
//
// # Serialization
//
// Layouts are stored as JSON (with bson tags for document stores):
//
//	{
//	  "directed": true,
//	  "edge_graphics": true,
//	  "nodes": [{"id": "A", "x": 0, "y": 0, "width": 100, "height": 40}],
//	  "edges": [{"id": "e0", "source": "A", "target": "B", "arrow": "last"}]
//	}
//
// Use [MarshalLayout], [UnmarshalLayout], [ReadLayoutFile] and [WriteLayoutFile].
// Unmarshaling validates references so the renderer can index without checks.
package graph
