package history

import "github.com/kestrel-sh/bish/pkg/shellinput"

// ShellAdapter adapts an Engine to shellinput.HistoryProvider, translating
// between the engine's own result types and the plain types the line
// editor depends on, mirroring how internal/completion.CompletionManager
// adapts the completion sources to shellinput.CompletionProvider.
type ShellAdapter struct {
	Engine *Engine
}

// NewShellAdapter wraps e for use as a shellinput.HistoryProvider.
func NewShellAdapter(e *Engine) *ShellAdapter {
	return &ShellAdapter{Engine: e}
}

// FuzzySearch implements shellinput.HistoryProvider.
func (a *ShellAdapter) FuzzySearch(pattern string) []shellinput.HistoryItem {
	return toHistoryItems(a.Engine.FuzzySearch(pattern))
}

// RecentMatching implements shellinput.HistoryProvider.
func (a *ShellAdapter) RecentMatching(pattern string) []shellinput.HistoryItem {
	return toHistoryItems(a.Engine.RecentMatching(pattern))
}

// FuzzySelectOlder implements shellinput.HistoryProvider.
func (a *ShellAdapter) FuzzySelectOlder() { a.Engine.FuzzySelectOlder() }

// FuzzySelectNewer implements shellinput.HistoryProvider.
func (a *ShellAdapter) FuzzySelectNewer() { a.Engine.FuzzySelectNewer() }

// FuzzySelectedIndex implements shellinput.HistoryProvider. The index is
// relative to the slice FuzzySearch most recently returned (the visible
// window), since that is the only slice the caller holds.
func (a *ShellAdapter) FuzzySelectedIndex() int {
	if a.Engine.FuzzyCacheLen() == 0 {
		return -1
	}
	return a.Engine.FuzzyCacheIndex() - a.Engine.FuzzyVisibleOffset()
}

// BeginNavigation implements shellinput.HistoryProvider.
func (a *ShellAdapter) BeginNavigation() { a.Engine.BeginNavigation() }

// NavigatePrefixBackward implements shellinput.HistoryProvider.
func (a *ShellAdapter) NavigatePrefixBackward(prefix string) (string, bool) {
	return a.Engine.NavigatePrefixBackward(prefix)
}

// NavigatePrefixForward implements shellinput.HistoryProvider.
func (a *ShellAdapter) NavigatePrefixForward(prefix string) (string, bool) {
	return a.Engine.NavigatePrefixForward(prefix)
}

// SuggestionSuffix implements shellinput.HistoryProvider.
func (a *ShellAdapter) SuggestionSuffix(cmd string) string {
	return a.Engine.SuggestionSuffix(cmd)
}

func toHistoryItems(results []FuzzyResult) []shellinput.HistoryItem {
	items := make([]shellinput.HistoryItem, len(results))
	for i, r := range results {
		items[i] = shellinput.HistoryItem{Command: r.Entry.Command, When: r.Entry.CreatedAt}
	}
	return items
}
