package progcalc

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind
	// tok is the token that produced the node: the literal or pi for terms,
	// the operator for unary and binary nodes, and the function name for calls.
	tok lexToken

	left  *node
	right *node
	// args is the argument list of a call.
	args []*node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeTerm   // literal or constant in tok
	nodeUnary  // apply tok to left
	nodeBinary // apply tok to left and right
	nodeCall   // call the function named by tok with args
)

var nodeKindNames = [...]string{
	nodeNone:   "None",
	nodeTerm:   "Term",
	nodeUnary:  "Unary",
	nodeBinary: "Binary",
	nodeCall:   "Call",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeKindNames[k]
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes the subtree rooted at n with every node in parentheses. The
// result parses to the same tree.
func (n *node) fmt(b *strings.Builder) {
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
	case nodeTerm:
		b.WriteString(n.tok.text)
	case nodeUnary:
		b.WriteString(n.tok.text)
		n.left.fmt(b)
	case nodeBinary:
		n.left.fmt(b)
		b.WriteByte(' ')
		b.WriteString(n.tok.text)
		b.WriteByte(' ')
		n.right.fmt(b)
	case nodeCall:
		b.WriteString(n.tok.text)
		b.WriteByte('(')
		for i, arg := range n.args {
			if i > 0 {
				b.WriteString(", ")
			}
			arg.fmt(b)
		}
		b.WriteByte(')')
	default:
		panic("progcalc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}
