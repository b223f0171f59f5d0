package shellinput

import "time"

// HistoryItem is one match offered by a HistoryProvider, either for
// display in a Ctrl+R reverse-search session or as the target of an
// Up/Down prefix recall step.
type HistoryItem struct {
	Command string
	When    time.Time
}

// HistoryProvider supplies the history entries backing Ctrl+R reverse
// search, Up/Down prefix recall, and inline ghost-text suggestion,
// decoupling this package from any particular history store (mirroring
// CompletionProvider's role for tab completion).
type HistoryProvider interface {
	// FuzzySearch returns the currently visible window of matches for
	// pattern, ranked best-score-first, resuming a stateful scan across
	// repeated calls made with the same pattern.
	FuzzySearch(pattern string) []HistoryItem
	// RecentMatching returns every match for pattern ordered most-recent
	// first, independent of FuzzySearch's cache/selection state.
	RecentMatching(pattern string) []HistoryItem
	// FuzzySelectOlder and FuzzySelectNewer move FuzzySearch's selection.
	FuzzySelectOlder()
	FuzzySelectNewer()
	// FuzzySelectedIndex returns the selected match's offset within the
	// slice FuzzySearch most recently returned, or -1 if there is none.
	FuzzySelectedIndex() int

	// BeginNavigation resets prefix-based Up/Down recall to start again
	// from the newest entry.
	BeginNavigation()
	// NavigatePrefixBackward and NavigatePrefixForward return the next
	// older/newer entry whose command starts with prefix.
	NavigatePrefixBackward(prefix string) (command string, ok bool)
	NavigatePrefixForward(prefix string) (command string, ok bool)

	// SuggestionSuffix returns the ghost-text completion for cmd: the
	// remainder of the most recent matching history entry, or "" if none.
	SuggestionSuffix(cmd string) string
}

// historySearchState tracks an in-progress Ctrl+R reverse-search session:
// which of the current matches is highlighted, and how the user has
// chosen to scope/order the candidate set.
type historySearchState struct {
	// selected indexes into the Model's historyItems.
	selected int
	// uniqueOnly collapses the candidate set to one entry per distinct
	// command (toggled with Ctrl+F).
	uniqueOnly bool
	// chronological orders candidates by recency instead of fuzzy score
	// (toggled with Ctrl+O), using HistoryProvider.RecentMatching instead
	// of the stateful fuzzy cache.
	chronological bool
}

// ============================================================================
// Reverse Search
// ============================================================================

// toggleReverseSearch enters reverse-search mode, starting a fresh session
// against HistoryProvider.
func (m *Model) toggleReverseSearch() {
	if m.inReverseSearch {
		m.inReverseSearch = false
		return
	}
	m.inReverseSearch = true
	m.reverseSearchQuery = ""
	m.historySearchState = historySearchState{}
	m.updateHistorySearch()
}

// updateHistorySearch re-queries HistoryProvider for the current
// reverseSearchQuery and refreshes historyItems/selected to match the
// active filter/sort mode.
func (m *Model) updateHistorySearch() {
	if m.HistoryProvider == nil {
		m.historyItems = nil
		m.historySearchState.selected = 0
		return
	}

	if m.historySearchState.chronological {
		items := m.HistoryProvider.RecentMatching(m.reverseSearchQuery)
		if m.historySearchState.uniqueOnly {
			items = dedupeHistoryItems(items)
		}
		m.historyItems = items
		if m.historySearchState.selected >= len(items) {
			m.historySearchState.selected = max(0, len(items)-1)
		}
		return
	}

	items := m.HistoryProvider.FuzzySearch(m.reverseSearchQuery)
	if m.historySearchState.uniqueOnly {
		items = dedupeHistoryItems(items)
		if m.historySearchState.selected >= len(items) {
			m.historySearchState.selected = 0
		}
	} else {
		m.historySearchState.selected = max(0, m.HistoryProvider.FuzzySelectedIndex())
	}
	m.historyItems = items
}

func dedupeHistoryItems(items []HistoryItem) []HistoryItem {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, it := range items {
		if seen[it.Command] {
			continue
		}
		seen[it.Command] = true
		out = append(out, it)
	}
	return out
}

// historySearchUp moves the reverse-search selection toward older matches.
func (m *Model) historySearchUp() {
	if m.historySearchState.chronological {
		if m.historySearchState.selected < len(m.historyItems)-1 {
			m.historySearchState.selected++
		}
		return
	}
	if m.HistoryProvider != nil {
		m.HistoryProvider.FuzzySelectOlder()
	}
	m.updateHistorySearch()
}

// historySearchDown moves the reverse-search selection toward newer
// matches.
func (m *Model) historySearchDown() {
	if m.historySearchState.chronological {
		if m.historySearchState.selected > 0 {
			m.historySearchState.selected--
		}
		return
	}
	if m.HistoryProvider != nil {
		m.HistoryProvider.FuzzySelectNewer()
	}
	m.updateHistorySearch()
}

// toggleHistoryFilter toggles collapsing the candidate set to one entry
// per distinct command.
func (m *Model) toggleHistoryFilter() {
	m.historySearchState.uniqueOnly = !m.historySearchState.uniqueOnly
	m.updateHistorySearch()
}

// toggleHistorySort toggles between score-ranked and chronological
// ordering of the candidate set.
func (m *Model) toggleHistorySort() {
	m.historySearchState.chronological = !m.historySearchState.chronological
	m.historySearchState.selected = 0
	m.updateHistorySearch()
}

// acceptRichReverseSearch replaces the buffer with the currently selected
// history match and leaves reverse-search mode.
func (m *Model) acceptRichReverseSearch() {
	if m.historySearchState.selected >= 0 && m.historySearchState.selected < len(m.historyItems) {
		m.SetValue(m.historyItems[m.historySearchState.selected].Command)
		m.CursorEnd()
	}
	m.inReverseSearch = false
}

// cancelReverseSearch leaves reverse-search mode without changing the
// buffer.
func (m *Model) cancelReverseSearch() {
	m.inReverseSearch = false
	m.historyItems = nil
	m.historySearchState = historySearchState{}
}

// ============================================================================
// Prefix recall (Up/Down)
// ============================================================================

// refreshHistoryNavPrefix re-caches the prefix driving Up/Down recall
// whenever the buffer no longer matches the last entry recall yielded
// (meaning the user edited the line by hand), restarting navigation from
// the newest entry.
func (m *Model) refreshHistoryNavPrefix() {
	current := string(m.values[m.selectedValueIndex])
	if m.historyNavLastYielded != nil && current == *m.historyNavLastYielded {
		return
	}
	m.historyNavPrefix = &current
	if m.HistoryProvider != nil {
		m.HistoryProvider.BeginNavigation()
	}
}
