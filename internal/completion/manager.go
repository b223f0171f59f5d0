package completion

import (
	"context"
	"os/exec"
	"strings"
	"sync"

	"github.com/kestrel-sh/bish/pkg/shellinput"
)

// SpecType identifies how a registered CompletionSpec produces its
// candidates, mirroring bash's `complete -W/-F/-C` flags.
type SpecType int

const (
	// WordListCompletion offers a fixed, space-separated list of words.
	WordListCompletion SpecType = iota
	// FunctionCompletion calls a shell function to produce candidates.
	// CompletionManager records the spec but cannot invoke the function
	// itself, since doing so requires a live interpreter runner; callers
	// that have one should handle this type themselves before falling
	// through to GetCompletions.
	FunctionCompletion
	// CommandCompletion runs an external command and parses its stdout
	// for candidates.
	CommandCompletion
)

// CompletionSpec is one registration made via the `complete` builtin.
type CompletionSpec struct {
	Command string
	Type    SpecType
	Value   string
}

// CompletionManager is the top of the candidate-source fallback chain: it
// holds explicitly registered CompletionSpecs (from the `complete`
// builtin) and, when none match, falls through to the static registry and
// then the built-in default completers. It implements
// shellinput.CompletionProvider directly.
type CompletionManager struct {
	mu    sync.RWMutex
	specs map[string]CompletionSpec

	static   *StaticCompleter
	defaults *DefaultCompleter
	docs     *DocumentationCompleter
}

// NewCompletionManager builds a CompletionManager with the static, default,
// and documentation completers wired in as fallback tiers.
func NewCompletionManager() *CompletionManager {
	return &CompletionManager{
		specs:    make(map[string]CompletionSpec),
		static:   NewStaticCompleter(),
		defaults: &DefaultCompleter{},
		docs:     NewDocumentationCompleter(),
	}
}

// AddSpec registers or replaces the completion spec for spec.Command.
func (m *CompletionManager) AddSpec(spec CompletionSpec) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.specs[spec.Command] = spec
}

// RemoveSpec removes any registered spec for command.
func (m *CompletionManager) RemoveSpec(command string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.specs, command)
}

// GetSpec returns the registered spec for command, if any.
func (m *CompletionManager) GetSpec(command string) (CompletionSpec, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	spec, ok := m.specs[command]
	return spec, ok
}

// ListSpecs returns every registered spec, for `complete -p`.
func (m *CompletionManager) ListSpecs() []CompletionSpec {
	m.mu.RLock()
	defer m.mu.RUnlock()
	specs := make([]CompletionSpec, 0, len(m.specs))
	for _, s := range m.specs {
		specs = append(specs, s)
	}
	return specs
}

// GetCompletions implements shellinput.CompletionProvider. It tries, in
// order: a registered CompletionSpec for command, the static registry, the
// documentation completer (man/info/help), then the built-in default
// completers, falling back to a path completion when nothing else
// recognizes the command and the word under the cursor looks like it could
// be a path.
func (m *CompletionManager) GetCompletions(command string, args []string, line string, pos int) ([]shellinput.CompletionCandidate, bool) {
	if cctx := analyzeLine(line, pos); cctx != nil {
		if cctx.Command != "" {
			command = cctx.Command
			// The rest of this chain (fromSpec, DefaultCompleter, the
			// path-completion fallback below) all treat args[last] as
			// the prefix being completed, so the word under the cursor
			// rides along as the final element even though Context
			// itself keeps it separate from Args.
			args = append(append([]string{}, cctx.Args...), cctx.Word)
		}
		switch cctx.Type {
		case CompTildeExpansion:
			return completeTildeExpansion(cctx.Word), true
		case CompGlobExpansion:
			candidates := completeGlobExpansion(cctx.Word)
			return candidates, len(candidates) > 0
		}
	}

	if spec, ok := m.GetSpec(command); ok {
		if candidates, ok := m.fromSpec(spec, args); ok {
			return candidates, true
		}
	}

	if m.static.HasCommand(command) {
		return m.static.GetCompletions(command, args), true
	}

	if candidates, ok := m.docs.GetCompletions(command, args, line, pos); ok {
		return candidates, true
	}

	if candidates, ok := m.defaults.GetCompletions(command, args, line, pos); ok {
		return candidates, true
	}

	word := ""
	if len(args) > 0 {
		word = args[len(args)-1]
	}
	if strings.ContainsRune(word, '/') || strings.HasPrefix(word, ".") {
		return completionsFromCwdFiles(word), true
	}

	return nil, false
}

func (m *CompletionManager) fromSpec(spec CompletionSpec, args []string) ([]shellinput.CompletionCandidate, bool) {
	prefix := ""
	if len(args) > 0 {
		prefix = args[len(args)-1]
	}

	switch spec.Type {
	case WordListCompletion:
		var candidates []shellinput.CompletionCandidate
		for _, word := range strings.Fields(spec.Value) {
			if strings.HasPrefix(word, prefix) {
				candidates = append(candidates, shellinput.CompletionCandidate{Value: word})
			}
		}
		return candidates, len(candidates) > 0
	case CommandCompletion:
		return m.fromExternalCommand(spec.Value, args)
	default:
		// FunctionCompletion needs a live interpreter the manager does
		// not own; callers wired to a runner should intercept this spec
		// type before delegating here.
		return nil, false
	}
}

// fromExternalCommand runs spec.Value under `sh -c`, after the fashion of
// bash's `complete -C`: its environment holds only COMP_WORDS (args joined
// by spaces) and COMP_CWORD=0; COMP_LINE is not set. Whatever it prints to
// stdout is parsed as candidates.
func (m *CompletionManager) fromExternalCommand(command string, args []string) ([]shellinput.CompletionCandidate, bool) {
	cmd := exec.CommandContext(context.Background(), "sh", "-c", command)
	cmd.Env = append(cmd.Env,
		"COMP_WORDS="+strings.Join(args, " "),
		"COMP_CWORD=0",
	)
	out, err := cmd.Output()
	if err != nil {
		return nil, false
	}

	candidates, err := ParseExternalCompletionOutput(string(out))
	if err != nil || len(candidates) == 0 {
		return nil, false
	}
	return candidates, true
}

func completionsFromCwdFiles(prefix string) []shellinput.CompletionCandidate {
	cwd := "."
	return getFileCompletions(prefix, cwd)
}

// analyzeLine runs the syntax-aware context classifier against line,
// converting pos (CompletionProvider's rune offset) to the byte offset
// Analyze works in, so GetCompletions can dispatch on real shell structure
// (nested command substitutions, redirection targets, glob/tilde words)
// instead of a bare whitespace split.
func analyzeLine(line string, pos int) *Context {
	runes := []rune(line)
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	byteOffset := len(string(runes[:pos]))

	cctx, err := Analyze(context.Background(), line, byteOffset)
	if err != nil {
		return nil
	}
	return cctx
}
