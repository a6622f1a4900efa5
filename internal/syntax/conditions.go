// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package syntax

// VisitCondition selects nodes by their shape and position in the tree.
type VisitCondition func(n Node, ancestors []Node) bool

func parent(ancestors []Node) Node {
	if len(ancestors) == 0 {
		return nil
	}
	return ancestors[len(ancestors)-1]
}

// Any matches every node.
func Any() VisitCondition {
	return func(Node, []Node) bool { return true }
}

// OfKind matches nodes of any of the given kinds.
func OfKind(kinds ...Kind) VisitCondition {
	return func(n Node, _ []Node) bool {
		for _, k := range kinds {
			if n.Kind() == k {
				return true
			}
		}
		return false
	}
}

// InitializerOf matches the initializer of the declaration named name.
func InitializerOf(name string) VisitCondition {
	return func(n Node, ancestors []Node) bool {
		decl, ok := parent(ancestors).(*VarDecl)
		return ok && decl.Name == name
	}
}

// ValueOfProperty matches the value of object members keyed key.
func ValueOfProperty(key string) VisitCondition {
	return func(n Node, ancestors []Node) bool {
		prop, ok := parent(ancestors).(*Property)
		return ok && prop.Key == key
	}
}

// ArgumentOf matches arguments of calls to callee, a plain or dotted name.
func ArgumentOf(callee string) VisitCondition {
	return func(n Node, ancestors []Node) bool {
		call, ok := parent(ancestors).(*CallExpr)
		if !ok || CalleeName(call.Callee) != callee {
			return false
		}
		return n != call.Callee
	}
}

// DefaultExport matches the value of export default.
func DefaultExport() VisitCondition {
	return func(n Node, ancestors []Node) bool {
		_, ok := parent(ancestors).(*ExportDefault)
		return ok
	}
}

// Inside matches nodes with an ancestor matching outer.
func Inside(outer VisitCondition) VisitCondition {
	return func(n Node, ancestors []Node) bool {
		for i := len(ancestors) - 1; i >= 0; i-- {
			if outer(ancestors[i], ancestors[:i]) {
				return true
			}
		}
		return false
	}
}

func And(conds ...VisitCondition) VisitCondition {
	return func(n Node, ancestors []Node) bool {
		for _, c := range conds {
			if !c(n, ancestors) {
				return false
			}
		}
		return true
	}
}

func Or(conds ...VisitCondition) VisitCondition {
	return func(n Node, ancestors []Node) bool {
		for _, c := range conds {
			if c(n, ancestors) {
				return true
			}
		}
		return false
	}
}
