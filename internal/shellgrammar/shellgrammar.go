// Package shellgrammar wraps the tree-sitter bash grammar with the handful
// of operations the completion-context analyzer and the command-acceptance
// predicate both need: parsing a buffer into a syntax tree and walking it
// for missing or error nodes.
package shellgrammar

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
)

// Tree wraps a parsed syntax tree together with the source it was parsed
// from, since tree-sitter nodes are only meaningful alongside their source
// bytes.
type Tree struct {
	source []byte
	tree   *sitter.Tree
}

// Parse parses source as bash and returns the resulting Tree.
func Parse(ctx context.Context, source []byte) (*Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(bash.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, err
	}
	return &Tree{source: source, tree: tree}, nil
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	t.tree.Close()
}

// RootNode returns the tree's root node.
func (t *Tree) RootNode() *sitter.Node {
	return t.tree.RootNode()
}

// Source returns the byte slice the tree was parsed from.
func (t *Tree) Source() []byte {
	return t.source
}

// NodeText returns the source text spanned by n.
func (t *Tree) NodeText(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(t.source)
}

// HasMissingNode reports whether any node in the subtree rooted at n (or
// the whole tree, if n is nil) is a tree-sitter "missing" node: one the
// parser synthesized to recover from an incomplete construct, such as an
// unterminated quote or an unclosed control-flow keyword.
func (t *Tree) HasMissingNode(n *sitter.Node) bool {
	if n == nil {
		n = t.RootNode()
	}
	return walkFind(n, (*sitter.Node).IsMissing)
}

// HasErrorNode reports whether any node in the subtree rooted at n (or the
// whole tree, if n is nil) is a tree-sitter ERROR node or carries an error.
func (t *Tree) HasErrorNode(n *sitter.Node) bool {
	if n == nil {
		n = t.RootNode()
	}
	return walkFind(n, func(node *sitter.Node) bool {
		return node.IsError() || node.HasError()
	})
}

func walkFind(n *sitter.Node, pred func(*sitter.Node) bool) bool {
	if n == nil {
		return false
	}
	if pred(n) {
		return true
	}
	childCount := int(n.ChildCount())
	for i := 0; i < childCount; i++ {
		if walkFind(n.Child(i), pred) {
			return true
		}
	}
	return false
}

// FindDeepestNodeAt returns the most specific (deepest) node in the tree
// whose byte range contains byteOffset. When byteOffset sits exactly at a
// boundary between two nodes, the node ending at that boundary is
// preferred, matching the convention that a cursor just past a token is
// still considered to be completing that token.
func (t *Tree) FindDeepestNodeAt(byteOffset int) *sitter.Node {
	n := t.RootNode()
	for {
		childCount := int(n.ChildCount())
		var next *sitter.Node
		for i := 0; i < childCount; i++ {
			c := n.Child(i)
			if c == nil {
				continue
			}
			start, end := int(c.StartByte()), int(c.EndByte())
			if byteOffset >= start && byteOffset <= end {
				next = c
				if byteOffset < end {
					break
				}
			}
		}
		if next == nil {
			return n
		}
		n = next
	}
}

// Walk calls visit for every node in the subtree rooted at n (or the whole
// tree if n is nil), in pre-order, until visit returns false.
func (t *Tree) Walk(n *sitter.Node, visit func(*sitter.Node) bool) {
	if n == nil {
		n = t.RootNode()
	}
	walkPreOrder(n, visit)
}

func walkPreOrder(n *sitter.Node, visit func(*sitter.Node) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	childCount := int(n.ChildCount())
	for i := 0; i < childCount; i++ {
		if !walkPreOrder(n.Child(i), visit) {
			return false
		}
	}
	return true
}
