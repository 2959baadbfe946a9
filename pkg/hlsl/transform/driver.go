// Package transform implements the fixed-point transform pipeline of §4.5: a
// driver that repeatedly applies a node-local predicate over the entry body
// until it stops reporting progress, and the five passes run in order
// (redundant-cast folding, struct-copy splitting, constant folding, a
// liveness+DCE loop, and a final liveness pass).
package transform

import "github.com/claynathaniel/vkd3d/pkg/ir"

// NodeTransform examines (and may mutate or splice around) a single node,
// returning true if it made progress.
type NodeTransform func(n *ir.Node) bool

// applyOnce walks body depth-first, recursing into the child lists of any
// If/Loop node before visiting the node itself, applying fn once to every
// node currently present. It returns whether any invocation reported
// progress.
func applyOnce(body *ir.List, fn NodeTransform) bool {
	progress := false
	//
	for _, n := range body.Nodes() {
		if n.List() == nil {
			// Removed by an earlier transform within this same sweep.
			continue
		}
		//
		switch n.Kind {
		case ir.KindIf:
			if applyOnce(n.If.Then, fn) {
				progress = true
			}
			//
			if applyOnce(n.If.Else, fn) {
				progress = true
			}
		case ir.KindLoop:
			if applyOnce(n.Loop.Body, fn) {
				progress = true
			}
		}
		//
		if n.List() == nil {
			continue
		}
		//
		if fn(n) {
			progress = true
		}
	}
	//
	return progress
}

// runToFixedPoint repeatedly applies fn over body until a full sweep reports
// no progress.
func runToFixedPoint(body *ir.List, fn NodeTransform) {
	for applyOnce(body, fn) {
	}
}

// replaceWithNewNode inserts newNode at old's current list position (if any)
// before rewiring old's uses onto it and destroying old. Unlike
// ir.Replace alone, this is for passes that fold a node into a brand new
// replacement which does not already occupy a position in the list.
func replaceWithNewNode(old, newNode *ir.Node) {
	if list := old.List(); list != nil {
		list.InsertBefore(newNode, old)
	}
	//
	ir.Replace(old, newNode)
}
