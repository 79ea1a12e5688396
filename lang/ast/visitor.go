package ast

// Visitor is called for each node Walk encounters. Returning nil from Visit
// skips that node's children.
type Visitor interface {
	Visit(n Node) (w Visitor)
}

// VisitorFunc adapts a plain function to the Visitor interface.
type VisitorFunc func(n Node) Visitor

func (f VisitorFunc) Visit(n Node) Visitor { return f(n) }

// Walk visits node with v, then recurses into its children if v.Visit
// returned a non-nil visitor.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	if w := v.Visit(node); w != nil {
		node.Walk(w)
	}
}
