package completion

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/kestrel-sh/bish/internal/shellgrammar"
	"github.com/kestrel-sh/bish/pkg/textbuffer"
)

// CompType classifies what kind of thing the cursor is sitting in the
// middle of completing.
type CompType int

const (
	// CompCommand means the cursor is on the command-name word itself:
	// completions should come from $PATH and builtins, not from a
	// command's registered argument completer.
	CompCommand CompType = iota
	// CompArgument means the cursor is on an argument word of a known
	// command: completions should come from that command's registered
	// completion spec, falling back to paths.
	CompArgument
	// CompVariable means the cursor follows a bare `$` or `${`:
	// completions should be drawn from the environment.
	CompVariable
	// CompRedirectTarget means the cursor is the target of a redirection
	// operator (`>`, `>>`, `<`): completions are always paths.
	CompRedirectTarget
	// CompTildeExpansion means the word under the cursor begins with `~`
	// and contains no `/` yet: completions should come from the local
	// user/group database rather than the filesystem.
	CompTildeExpansion
	// CompGlobExpansion means the word under the cursor contains glob
	// metacharacters (`*`, `?`, `[`): completions should show the glob's
	// filesystem expansion rather than prefix-matched paths.
	CompGlobExpansion
)

// Context describes what the cursor is in the middle of completing.
type Context struct {
	Type CompType

	// Command is the command name text governing this completion, set
	// for CompArgument and CompRedirectTarget.
	Command string

	// Word is the partial word under the cursor, the text that a chosen
	// candidate replaces.
	Word string
	// WordStart and WordEnd are the byte offsets of Word within the
	// buffer that was analyzed.
	WordStart, WordEnd int

	// Args holds the command's preceding argument words, not including
	// Word itself.
	Args []string
}

// Analyze walks the buffer's syntax tree to classify what the cursor at
// byte offset cursor is in the middle of completing. A parse failure falls
// back to a whitespace-based classification of the word under the cursor:
// CompCommand at the start of the buffer or after `|`, `;`, `&` or a
// newline, otherwise CompArgument with the first field as the command, so
// completion degrades to plain word completion rather than failing
// outright.
func Analyze(ctx context.Context, buffer string, cursor int) (*Context, error) {
	// Snap cursor onto a grapheme boundary before touching the buffer at
	// all: a caller-supplied byte offset that lands mid-cluster (a
	// combining accent, a multi-rune emoji) would otherwise split a
	// grapheme across the word boundary scan below.
	b := textbuffer.New(buffer)
	b.SetCursor(cursor)
	cursor = b.Cursor()

	tree, err := shellgrammar.Parse(ctx, []byte(buffer))
	if err != nil {
		return fallbackContext(buffer, cursor), nil
	}
	defer tree.Close()

	node := tree.FindDeepestNodeAt(cursor)
	node = trimNode(tree, node, cursor)

	return findCompContextFromCursor(tree, node, buffer, cursor), nil
}

// trimNode walks up from node while it is an unnamed node (a punctuation
// or keyword token), so the classifier sees the command or word node that
// actually matters. program and ERROR nodes are returned as they are.
func trimNode(tree *shellgrammar.Tree, node *sitter.Node, cursor int) *sitter.Node {
	for node != nil {
		switch node.Type() {
		case "program", "ERROR":
			return node
		}
		if node.IsNamed() {
			return node
		}
		parent := node.Parent()
		if parent == nil {
			return node
		}
		node = parent
	}
	return node
}

// findCompContextFromCursor climbs from node toward the root looking for
// the innermost enclosing "command" or "test_command" node. Within it, the
// command_name child is the command name; everything else up to the cursor
// is an argument.
func findCompContextFromCursor(tree *shellgrammar.Tree, node *sitter.Node, buffer string, cursor int) *Context {
	wordStart, wordEnd, word := currentWordSpan(buffer, cursor)

	cmdNode := enclosingCommand(node)
	if cmdNode == nil {
		return &Context{
			Type:      classifyWord(word, CompCommand),
			Word:      word,
			WordStart: wordStart,
			WordEnd:   wordEnd,
		}
	}

	nameNode := commandNameNode(cmdNode)
	if nameNode == nil || overlaps(nameNode, wordStart, wordEnd) {
		return &Context{
			Type:      classifyWord(word, CompCommand),
			Word:      word,
			WordStart: wordStart,
			WordEnd:   wordEnd,
		}
	}

	commandName := tree.NodeText(nameNode)

	if redirTarget := enclosingRedirectTarget(node, cmdNode); redirTarget {
		return &Context{
			Type:      CompRedirectTarget,
			Command:   commandName,
			Word:      word,
			WordStart: wordStart,
			WordEnd:   wordEnd,
		}
	}

	if strings.HasPrefix(word, "$") {
		return &Context{
			Type:      CompVariable,
			Command:   commandName,
			Word:      word,
			WordStart: wordStart,
			WordEnd:   wordEnd,
		}
	}

	return &Context{
		Type:      classifyWord(word, CompArgument),
		Command:   commandName,
		Word:      word,
		WordStart: wordStart,
		WordEnd:   wordEnd,
		Args:      collectArgs(tree, cmdNode, nameNode, wordStart),
	}
}

// classifyWord refines fallback into CompTildeExpansion or
// CompGlobExpansion when word carries the relevant metacharacters,
// otherwise returns fallback unchanged.
func classifyWord(word string, fallback CompType) CompType {
	if strings.HasPrefix(word, "~") && !strings.Contains(word, "/") {
		return CompTildeExpansion
	}
	if strings.ContainsAny(word, "*?[") {
		return CompGlobExpansion
	}
	return fallback
}

// enclosingCommand climbs from n toward the root looking for the nearest
// node that bounds a completion context, a test_command (`[[ ... ]]`) or a
// plain command; whichever of the two is nearer to n is returned.
func enclosingCommand(n *sitter.Node) *sitter.Node {
	for n != nil {
		switch n.Type() {
		case "test_command", "command":
			return n
		}
		n = n.Parent()
	}
	return nil
}

func commandNameNode(cmdNode *sitter.Node) *sitter.Node {
	for i := 0; i < int(cmdNode.ChildCount()); i++ {
		c := cmdNode.Child(i)
		if c != nil && c.Type() == "command_name" {
			return c
		}
	}
	return nil
}

func enclosingRedirectTarget(n *sitter.Node, cmdNode *sitter.Node) bool {
	for n != nil && n != cmdNode.Parent() {
		if n.Type() == "file_redirect" {
			return true
		}
		n = n.Parent()
	}
	return false
}

func overlaps(n *sitter.Node, start, end int) bool {
	ns, ne := int(n.StartByte()), int(n.EndByte())
	return start < ne && end > ns
}

func collectArgs(tree *shellgrammar.Tree, cmdNode, nameNode *sitter.Node, wordStart int) []string {
	var args []string
	for i := 0; i < int(cmdNode.ChildCount()); i++ {
		c := cmdNode.Child(i)
		if c == nil || c == nameNode {
			continue
		}
		if int(c.EndByte()) > wordStart {
			break
		}
		if c.IsNamed() {
			args = append(args, tree.NodeText(c))
		}
	}
	return args
}

// currentWordSpan finds the maximal run of non-whitespace characters ending
// at or containing cursor, treating the cursor as attached to the word it
// sits inside of or immediately after.
func currentWordSpan(buffer string, cursor int) (start, end int, word string) {
	if cursor > len(buffer) {
		cursor = len(buffer)
	}
	start = cursor
	for start > 0 && !isWordBoundary(buffer[start-1]) {
		start--
	}
	end = cursor
	for end < len(buffer) && !isWordBoundary(buffer[end]) {
		end++
	}
	span := textbuffer.NewSubString(textbuffer.New(buffer), start, end)
	return span.Start(), span.End(), span.Text()
}

func isWordBoundary(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '|', '&', ';', '<', '>', '(', ')':
		return true
	}
	return false
}

func fallbackContext(buffer string, cursor int) *Context {
	start, end, word := currentWordSpan(buffer, cursor)
	before := strings.TrimRight(buffer[:start], " \t")
	isCommandPosition := before == "" || strings.HasSuffix(before, "|") ||
		strings.HasSuffix(before, ";") || strings.HasSuffix(before, "&") ||
		strings.HasSuffix(before, "\n")

	if isCommandPosition {
		return &Context{Type: CompCommand, Word: word, WordStart: start, WordEnd: end}
	}
	fields := strings.Fields(before)
	cmd := ""
	if len(fields) > 0 {
		cmd = fields[0]
	}
	return &Context{
		Type:      CompArgument,
		Command:   cmd,
		Word:      word,
		WordStart: start,
		WordEnd:   end,
		Args:      fields[min(1, len(fields)):],
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
