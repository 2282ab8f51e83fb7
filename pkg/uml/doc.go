// Package uml reads class models and turns them into unplaced diagrams.
//
// A model is a YAML document listing classes and the relations between them:
//
//	classes:
//	  - name: Order
//	    package: shop
//	    attributes: ["- id: int", "- items: List<Item>"]
//	    operations: ["+ total(): Money"]
//	  - name: Item
//	    package: shop
//	relations:
//	  - {from: Order, to: Item, kind: composition}
//
// [Model.Graph] converts a validated model into a [graph.Layout] whose nodes
// are sized for their multi-section labels and whose edges carry the stroke
// and arrow conventions of each relation kind. Positions are left at zero
// for the layout package to fill in.
//
// [graph.Layout]: github.com/matzehuels/umlsvg/pkg/graph.Layout
package uml
