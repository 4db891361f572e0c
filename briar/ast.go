package briar

import (
	"fmt"
	"strings"
)

// Node is an AST node: a tag drawn from the grammar's rule names, an
// optional token/text payload, an optional numeric literal, an ordered
// sequence of children, and (for the handful of operator-chain rules —
// expression/term/compare) the operators between consecutive children.
// The evaluator (eval.go) dispatches solely on Tag.
type Node struct {
	Tag string
	Text string
	Num int64
	Children []*Node
	// Ops holds the operator token between Children[i] and Children[i+1],
	// so len(Ops) == len(Children)-1. Only meaningful for "expression",
	// "term" and "compare" nodes. The one exception is the "not VALUE"
	// compare form: one child, Ops == ["not"].
	Ops []string
	// Sign is the optional leading unary sign of an "expression" node
	// ("+", "-", or "" for none). It is what keeps a single-term signed
	// expression ("-x") from folding away during optimize, since a lone
	// sign is not itself a child node.
	Sign string
	Loc SrcLoc
}

// noAstOpt is the set of grammar rules the grammar marks `{ no_ast_opt }`:
// their AST node must survive the optimize pass even when it ends up with
// exactly one child.
var noAstOpt = map[string]bool{
	"block": true,
	"list_create": true,
	"call": true,
	"raw_list": true,
	"list_splice": true,
	"leftSp": true,
	"rightSp": true,
	"return_stmt": true,
	// compare is not in the grammar's own no_ast_opt list, but its "not
	// VALUE" form has exactly one child and would otherwise collapse to
	// that child, silently discarding Ops=["not"] before evalCompare ever
	// sees it.
	"compare": true,
	// program is not in that list either, but ParseProgram's result is
	// always the "program" root, even for a single top-level statement.
	"program": true,
}

// optimize folds single-child pass-through nodes (GP), except
// where the tag is in noAstOpt or (for "expression") a leading sign would
// otherwise be lost. It mutates and returns the folded tree; call it once on
// the parser's root result.
func optimize(n *Node) *Node {
	if n == nil {
		return nil
	}
	for i, c := range n.Children {
		n.Children[i] = optimize(c)
	}
	if len(n.Children) == 1 && !noAstOpt[n.Tag] {
		if n.Tag == "expression" && n.Sign != "" {
			return n
		}
		return n.Children[0]
	}
	return n
}

// dump prints a debug tree, in narfscript's dump(indent int)-per-node style,
// used only by the trace sink.
func (n *Node) dump(indent int) string {
	var b strings.Builder
	pad := strings.Repeat(" ", indent)
	fmt.Fprintf(&b, "%s%s", pad, n.Tag)
	if n.Text != "" {
		fmt.Fprintf(&b, " %q", n.Text)
	}
	if n.Sign != "" {
		fmt.Fprintf(&b, " sign=%s", n.Sign)
	}
	b.WriteByte('\n')
	for _, c := range n.Children {
		b.WriteString(c.dump(indent + 2))
	}
	return b.String()
}
