// Package acceptance decides whether pressing Enter on the current buffer
// should submit it to the shell or insert a newline because the command is
// not yet syntactically complete: an open quote, an unterminated heredoc, an
// unclosed if/for/while/case, or a trailing pipe or operator all mean more
// input is coming.
package acceptance

import (
	"context"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/kestrel-sh/bish/internal/shellgrammar"
)

// WillAccept reports whether buffer is a complete bash command that should
// be submitted as-is. It rejects the buffer when the tree-sitter parse
// contains a missing node, and in every case also applies a set of textual
// heuristics; when the parse itself fails outright the heuristics alone
// decide, so a grammar hiccup never wedges the editor into refusing every
// Enter press.
func WillAccept(ctx context.Context, buffer string) bool {
	if strings.TrimSpace(buffer) == "" {
		return true
	}

	tree, err := shellgrammar.Parse(ctx, []byte(buffer))
	if err != nil {
		return !hasObviousIncompletePatterns(buffer)
	}
	defer tree.Close()

	if hasMissingNodes(tree) {
		return false
	}

	return !hasObviousIncompletePatterns(buffer)
}

// hasMissingNodes reports whether the parse tree contains any node the
// parser synthesized to recover from an incomplete construct. Outer missing
// nodes always win over cursor position or any inner node's own
// completeness: a single unterminated construct anywhere makes the whole
// buffer incomplete.
func hasMissingNodes(tree *shellgrammar.Tree) bool {
	return tree.HasMissingNode(nil)
}

// hasObviousIncompletePatterns runs a handful of textual checks that do not
// depend on a successful parse: an odd number of unescaped quotes, a
// heredoc whose terminator line hasn't appeared yet, keyword-based
// control structures (if/for/while/until/case/function) that have not been
// closed, and a trailing continuation token. A bare `{` group is not
// counted by these checks. Comments are stripped first so a `#` inside a
// comment can't be mistaken for the start of a heredoc body or a quote.
func hasObviousIncompletePatterns(buffer string) bool {
	stripped := removeComments(buffer)

	if countUnescapedQuotes(stripped, '\'')%2 != 0 {
		return true
	}
	if countUnescapedQuotes(stripped, '"')%2 != 0 {
		return true
	}
	if hasIncompleteHeredoc(stripped) {
		return true
	}
	if hasIncompleteControlStructure(stripped) {
		return true
	}
	if hasTrailingContinuation(stripped) {
		return true
	}
	return false
}

var commentRe = regexp.MustCompile(`(^|\s)#.*$`)

// removeComments strips `#`-introduced comments line by line. It does not
// attempt to distinguish a `#` inside a quoted string, since the quote
// counting check runs independently and a genuinely unterminated quote will
// already be flagged by countUnescapedQuotes.
func removeComments(buffer string) string {
	lines := strings.Split(buffer, "\n")
	for i, line := range lines {
		lines[i] = commentRe.ReplaceAllString(line, "$1")
	}
	return strings.Join(lines, "\n")
}

// countUnescapedQuotes counts occurrences of quote in s that are not
// preceded by an odd number of backslashes.
func countUnescapedQuotes(s string, quote byte) int {
	count := 0
	backslashes := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' {
			backslashes++
			continue
		}
		if c == quote && backslashes%2 == 0 {
			count++
		}
		backslashes = 0
	}
	return count
}

var hereDocStartRe = regexp.MustCompile(`<<-?\s*(['"]?)(\w+)['"]?\s*$`)

// hasIncompleteHeredoc reports whether any line opens a heredoc (`<<WORD`
// or `<<-WORD`) whose terminator line (WORD alone, optionally preceded by
// tabs; this is accepted for both forms) does not appear anywhere after it.
func hasIncompleteHeredoc(buffer string) bool {
	lines := strings.Split(buffer, "\n")
	for i, line := range lines {
		m := hereDocStartRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		terminator := m[2]
		found := false
		for _, rest := range lines[i+1:] {
			if strings.TrimLeft(rest, "\t") == terminator {
				found = true
				break
			}
		}
		if !found {
			return true
		}
	}
	return false
}

type controlKeyword struct {
	open, close string
}

var controlKeywords = []controlKeyword{
	{"if", "fi"},
	{"for", "done"},
	{"while", "done"},
	{"until", "done"},
	{"case", "esac"},
	{"function", "}"},
}

var wordRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*|[{}]`)

// hasIncompleteControlStructure counts keyword-delimited control structures
// by scanning whitespace-separated words: every open keyword pushes its
// matching close keyword onto a stack, and the buffer is incomplete if the
// stack isn't empty at the end. This is a coarse heuristic, not a parser;
// WillAccept applies it whether or not the tree-sitter parse succeeded.
func hasIncompleteControlStructure(buffer string) bool {
	var stack []string
	for _, word := range wordRe.FindAllString(buffer, -1) {
		if len(stack) > 0 && word == stack[len(stack)-1] {
			stack = stack[:len(stack)-1]
			continue
		}
		for _, kw := range controlKeywords {
			if word == kw.open {
				stack = append(stack, kw.close)
				break
			}
		}
	}
	return len(stack) > 0
}

// hasTrailingContinuation reports whether the buffer's last non-blank line
// ends with a token that demands more input: a trailing backslash, pipe,
// `&&`, `||`, or a bare `|` redirection without its right-hand side.
func hasTrailingContinuation(buffer string) bool {
	trimmed := strings.TrimRight(buffer, "\n")
	if trimmed == "" {
		return false
	}
	lines := strings.Split(trimmed, "\n")
	last := strings.TrimRight(lines[len(lines)-1], " \t")
	switch {
	case strings.HasSuffix(last, "\\"):
		return true
	case strings.HasSuffix(last, "|"):
		return true
	case strings.HasSuffix(last, "&&"):
		return true
	case strings.HasSuffix(last, "||"):
		return true
	}
	return false
}

// FindErrorNodes returns every tree-sitter ERROR node in buffer's parse
// tree, for diagnostics and tests. It returns nil if buffer fails to parse
// at all.
func FindErrorNodes(ctx context.Context, buffer string) []*sitter.Node {
	tree, err := shellgrammar.Parse(ctx, []byte(buffer))
	if err != nil {
		return nil
	}
	defer tree.Close()

	var errs []*sitter.Node
	tree.Walk(nil, func(n *sitter.Node) bool {
		if n.IsError() {
			errs = append(errs, n)
		}
		return true
	})
	return errs
}
