// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package syntax

// WalkFunc is called for each node with the chain of its ancestors,
// outermost first. Returning false skips the node's children.
type WalkFunc func(n Node, ancestors []Node) bool

// Walk traverses the tree rooted at n in pre-order.
func Walk(n Node, fn WalkFunc) {
	walk(n, nil, fn)
}

func walk(n Node, ancestors []Node, fn WalkFunc) {
	if n == nil {
		return
	}
	if !fn(n, ancestors) {
		return
	}
	anc := append(ancestors[:len(ancestors):len(ancestors)], n)
	for _, c := range n.Children() {
		walk(c, anc, fn)
	}
}

// RewriteFunc returns the replacement for n, or nil to keep it.
// Children of n have already been rewritten when it is called;
// ancestors are the original, not yet rewritten, nodes.
type RewriteFunc func(n Node, ancestors []Node) Node

// Rewrite rebuilds the tree rooted at n bottom-up. Nodes are never
// modified in place: any node with a replaced descendant is copied,
// unaffected subtrees are shared with the original tree.
//
// A replacement must be of a kind its parent accepts in that position,
// otherwise the original child is kept.
func Rewrite(n Node, fn RewriteFunc) Node {
	return rewrite(n, nil, fn)
}

func rewrite(n Node, ancestors []Node, fn RewriteFunc) Node {
	if n == nil {
		return nil
	}

	children := n.Children()
	if len(children) > 0 {
		anc := append(ancestors[:len(ancestors):len(ancestors)], n)
		newChildren := make([]Node, len(children))
		changed := false
		for i, c := range children {
			newChildren[i] = rewrite(c, anc, fn)
			if newChildren[i] != c {
				changed = true
			}
		}
		if changed {
			n = n.withChildren(newChildren)
		}
	}

	if r := fn(n, ancestors); r != nil {
		return r
	}
	return n
}

// Find returns all nodes matching cond in pre-order.
func Find(n Node, cond VisitCondition) []Node {
	found := make([]Node, 0)
	Walk(n, func(n Node, ancestors []Node) bool {
		if cond(n, ancestors) {
			found = append(found, n)
		}
		return true
	})
	return found
}
