// Package history implements the command history engine: an in-memory
// store merged from one or more on-disk history files, with prefix
// navigation and a time-budgeted fuzzy search over the whole set.
package history

import (
	"bufio"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"
)

const (
	// DefaultTimeCheckInterval is how many candidates the fuzzy search
	// scores between checks of the time budget.
	DefaultTimeCheckInterval = 64
	// DefaultTimeBudget bounds how long a single fuzzy search call is
	// allowed to run before it returns whatever it has scored so far, so
	// a huge history never stalls a keystroke.
	DefaultTimeBudget = 15 * time.Millisecond
	// DefaultViewportHeight is how many rows a history search result
	// panel shows at once.
	DefaultViewportHeight = 18
	// DefaultMaxEntries caps how many entries the in-memory store will
	// hold, evicting the oldest once exceeded, as a safety valve against
	// unbounded growth from a very long-lived session.
	DefaultMaxEntries = 100_000
)

// Entry is one recorded command.
type Entry struct {
	Command   string
	Directory string
	SessionID string
	ExitCode  *int
	CreatedAt time.Time
}

// RelativeTime returns a human-readable relative timestamp for the entry,
// such as "3 minutes ago".
func (e Entry) RelativeTime() string {
	return humanize.Time(e.CreatedAt)
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithTimeBudget overrides the fuzzy search time budget.
func WithTimeBudget(d time.Duration) Option {
	return func(e *Engine) { e.timeBudget = d }
}

// WithTimeCheckInterval overrides how often the fuzzy search checks its
// time budget.
func WithTimeCheckInterval(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.timeCheckInterval = n
		}
	}
}

// WithMaxEntries overrides the in-memory entry cap.
func WithMaxEntries(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxEntries = n
		}
	}
}

// WithLogger attaches a logger; defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine is the in-memory command history store. The zero value is not
// usable; construct with New.
type Engine struct {
	entries   []Entry
	seenExact map[string]int // command|directory -> index into entries, for dedup

	sessionID string

	timeBudget        time.Duration
	timeCheckInterval int
	maxEntries        int
	logger            *zap.Logger

	navIndex int // index into entries during prefix navigation, -1 when idle

	// Streaming fuzzy search state, persisted across calls so a repeated
	// call with the same pattern resumes scanning from fuzzyGlobalIndex
	// instead of rescanning the entries it already looked at.
	fuzzyCache              []FuzzyResult
	fuzzyCacheCommand       string
	fuzzyGlobalIndex        int
	fuzzyCacheIndex         int
	fuzzyCacheVisibleOffset int
}

// New builds an empty Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		seenExact:         make(map[string]int),
		sessionID:         uuid.NewString(),
		timeBudget:        DefaultTimeBudget,
		timeCheckInterval: DefaultTimeCheckInterval,
		maxEntries:        DefaultMaxEntries,
		logger:            zap.NewNop(),
		navIndex:          -1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SessionID returns the session identifier stamped on entries recorded by
// this Engine.
func (e *Engine) SessionID() string {
	return e.sessionID
}

// Record appends a new entry for command, deduplicating against the most
// recent entry with the same command and directory: repeating the same
// command back to back updates its timestamp instead of growing the list,
// matching how shells typically treat consecutive duplicate history lines.
func (e *Engine) Record(command, directory string) *Entry {
	command = strings.TrimRight(command, "\n")
	if command == "" {
		return nil
	}

	key := command + "\x00" + directory
	now := time.Now()
	if idx, ok := e.seenExact[key]; ok && idx == len(e.entries)-1 {
		e.entries[idx].CreatedAt = now
		e.entries[idx].SessionID = e.sessionID
		return &e.entries[idx]
	}

	entry := Entry{
		Command:   command,
		Directory: directory,
		SessionID: e.sessionID,
		CreatedAt: now,
	}
	e.entries = append(e.entries, entry)
	e.seenExact[key] = len(e.entries) - 1

	if len(e.entries) > e.maxEntries {
		e.evictOldest()
	}

	return &e.entries[len(e.entries)-1]
}

// Finish attaches an exit code to the most recently recorded entry for
// command, if one exists without a recorded exit code yet.
func (e *Engine) Finish(command string, exitCode int) {
	for i := len(e.entries) - 1; i >= 0; i-- {
		if e.entries[i].Command == command && e.entries[i].ExitCode == nil {
			code := exitCode
			e.entries[i].ExitCode = &code
			return
		}
	}
}

func (e *Engine) evictOldest() {
	drop := len(e.entries) - e.maxEntries
	e.entries = e.entries[drop:]
	e.seenExact = make(map[string]int, len(e.entries))
	for i, ent := range e.entries {
		e.seenExact[ent.Command+"\x00"+ent.Directory] = i
	}
}

// Len returns the number of entries currently held.
func (e *Engine) Len() int {
	return len(e.entries)
}

// All returns every entry, oldest first.
func (e *Engine) All() []Entry {
	return append([]Entry(nil), e.entries...)
}

// Recent returns up to limit entries, most recent first, optionally
// restricted to a single directory.
func (e *Engine) Recent(directory string, limit int) []Entry {
	var out []Entry
	for i := len(e.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if directory != "" && e.entries[i].Directory != directory {
			continue
		}
		out = append(out, e.entries[i])
	}
	return out
}

// Since returns every entry recorded at or after t, oldest first.
func (e *Engine) Since(t time.Time) []Entry {
	var out []Entry
	for _, ent := range e.entries {
		if !ent.CreatedAt.Before(t) {
			out = append(out, ent)
		}
	}
	return out
}

// Reset discards every entry.
func (e *Engine) Reset() {
	e.entries = nil
	e.seenExact = make(map[string]int)
	e.navIndex = -1
	e.fuzzyCache = nil
	e.fuzzyCacheCommand = ""
	e.fuzzyGlobalIndex = 0
	e.fuzzyCacheIndex = 0
	e.fuzzyCacheVisibleOffset = 0
}

// BeginNavigation starts prefix-based history navigation (the up/down arrow
// recall behavior), positioned just past the newest entry.
func (e *Engine) BeginNavigation() {
	e.navIndex = len(e.entries)
}

// NavigatePrefixBackward returns the most recent entry at or before the
// current navigation position whose command starts with prefix, moving the
// position there. It returns "", false once no earlier match exists.
func (e *Engine) NavigatePrefixBackward(prefix string) (string, bool) {
	for i := e.navIndex - 1; i >= 0; i-- {
		if strings.HasPrefix(e.entries[i].Command, prefix) {
			e.navIndex = i
			return e.entries[i].Command, true
		}
	}
	return "", false
}

// NavigatePrefixForward is the inverse of NavigatePrefixBackward, searching
// toward the newest entry.
func (e *Engine) NavigatePrefixForward(prefix string) (string, bool) {
	for i := e.navIndex + 1; i < len(e.entries); i++ {
		if strings.HasPrefix(e.entries[i].Command, prefix) {
			e.navIndex = i
			return e.entries[i].Command, true
		}
	}
	e.navIndex = len(e.entries)
	return "", false
}

// FuzzyResult is one match from FuzzySearch.
type FuzzyResult struct {
	Entry          Entry
	Score          int
	MatchedIndexes []int
}

// FuzzySearch is a resumable, time-budgeted streaming fuzzy search over the
// full history. Each call extends the cache by scanning entries in reverse
// (most recent first) starting from where the previous call with the same
// pattern left off (fuzzyGlobalIndex), spending at most timeBudget before
// returning whatever window is visible so far; a subsequent call with an
// unchanged pattern never rescans entries already covered. Changing the
// pattern resets the scan and remembers the previously visible row so the
// viewport doesn't jump once the new cache has grown back to that depth.
// The returned slice is the currently visible window (bounded by
// DefaultViewportHeight), ranked by descending fuzzy score; use
// FuzzyCacheIndex/FuzzyVisibleOffset/FuzzyCacheLen/FuzzyScanComplete to
// read the rest of the generator's state.
func (e *Engine) FuzzySearch(pattern string) []FuzzyResult {
	if pattern != e.fuzzyCacheCommand {
		visualRow := e.fuzzyCacheIndex - e.fuzzyCacheVisibleOffset
		e.fuzzyCache = nil
		e.fuzzyGlobalIndex = 0
		e.fuzzyCacheIndex = 0
		e.fuzzyCacheVisibleOffset = 0
		e.fuzzyCacheCommand = pattern
		if pattern != "" {
			e.growFuzzyCache(pattern)
			e.fuzzyCacheIndex = visualRow
		}
	} else if pattern != "" {
		e.growFuzzyCache(pattern)
	}

	if pattern == "" {
		return nil
	}

	e.clampFuzzyViewport(DefaultViewportHeight)
	return e.visibleFuzzyWindow(DefaultViewportHeight)
}

// growFuzzyCache scans entries not yet covered by fuzzyGlobalIndex, in
// reverse-chronological order, scoring each against pattern and folding
// matches above the length-scaled score threshold into fuzzyCache. It stops
// early once timeBudget has elapsed, checking the clock every
// timeCheckInterval entries so a huge history never stalls a keystroke.
func (e *Engine) growFuzzyCache(pattern string) {
	total := len(e.entries)
	if e.fuzzyGlobalIndex >= total {
		return
	}

	threshold := fuzzyScoreThreshold(pattern)
	deadline := time.Now().Add(e.timeBudget)

	var batch []FuzzyResult
	scanned := 0
	i := e.fuzzyGlobalIndex
	for ; i < total; i++ {
		if scanned > 0 && scanned%e.timeCheckInterval == 0 {
			if time.Now().After(deadline) {
				e.logger.Debug("fuzzy history search hit time budget",
					zap.Int("scanned", scanned), zap.Int("globalIndex", i), zap.Int("total", total))
				break
			}
		}
		ent := e.entries[total-1-i]
		if matches := fuzzy.Find(pattern, []string{ent.Command}); len(matches) > 0 && matches[0].Score >= threshold {
			batch = append(batch, FuzzyResult{
				Entry:          ent,
				Score:          matches[0].Score,
				MatchedIndexes: matches[0].MatchedIndexes,
			})
		}
		scanned++
	}
	e.fuzzyGlobalIndex = i

	if len(batch) == 0 {
		return
	}
	sort.SliceStable(batch, func(a, b int) bool { return batch[a].Score > batch[b].Score })
	e.fuzzyCache = mergeFuzzyResults(e.fuzzyCache, batch)
}

// fuzzyScoreThreshold rises with pattern length so short, noisy patterns
// don't flood the cache with low-quality matches.
func fuzzyScoreThreshold(pattern string) int {
	switch n := len(pattern); {
	case n < 1:
		return 0
	case n < 3:
		return 10
	case n < 5:
		return 20
	default:
		return 30
	}
}

// mergeFuzzyResults stably merges two score-descending-sorted result sets
// and dedupes by command text, keeping the higher-scoring (earlier) copy.
func mergeFuzzyResults(existing, batch []FuzzyResult) []FuzzyResult {
	merged := make([]FuzzyResult, 0, len(existing)+len(batch))
	i, j := 0, 0
	for i < len(existing) && j < len(batch) {
		if existing[i].Score >= batch[j].Score {
			merged = append(merged, existing[i])
			i++
		} else {
			merged = append(merged, batch[j])
			j++
		}
	}
	merged = append(merged, existing[i:]...)
	merged = append(merged, batch[j:]...)

	seen := make(map[string]bool, len(merged))
	deduped := merged[:0]
	for _, r := range merged {
		if seen[r.Entry.Command] {
			continue
		}
		seen[r.Entry.Command] = true
		deduped = append(deduped, r)
	}
	return deduped
}

// clampFuzzyViewport enforces the viewport policy for a window of height
// rows: cache_index stays within the cache bounds, and cache_visible_offset
// is adjusted to keep cache_index within [offset+2, offset+height-3] (two
// rows visible above and below it) where possible, maintaining the invariant cache_index >= cache_visible_offset.
func (e *Engine) clampFuzzyViewport(height int) {
	n := len(e.fuzzyCache)
	if n == 0 {
		e.fuzzyCacheIndex = 0
		e.fuzzyCacheVisibleOffset = 0
		return
	}
	if e.fuzzyCacheIndex < 0 {
		e.fuzzyCacheIndex = 0
	}
	if e.fuzzyCacheIndex > n-1 {
		e.fuzzyCacheIndex = n - 1
	}
	if e.fuzzyCacheVisibleOffset+height <= e.fuzzyCacheIndex+2 {
		e.fuzzyCacheVisibleOffset = e.fuzzyCacheIndex + 2 - (height - 1)
	}
	if e.fuzzyCacheIndex < e.fuzzyCacheVisibleOffset+2 {
		e.fuzzyCacheVisibleOffset = max(0, e.fuzzyCacheIndex-2)
	}
	if e.fuzzyCacheVisibleOffset < 0 {
		e.fuzzyCacheVisibleOffset = 0
	}
}

func (e *Engine) visibleFuzzyWindow(height int) []FuzzyResult {
	n := len(e.fuzzyCache)
	if n == 0 {
		return nil
	}
	end := e.fuzzyCacheVisibleOffset + height
	if end > n {
		end = n
	}
	return append([]FuzzyResult(nil), e.fuzzyCache[e.fuzzyCacheVisibleOffset:end]...)
}

// FuzzySelectOlder moves the fuzzy-search selection toward older matches
// (cache_index+1), clamped to the cache bounds.
func (e *Engine) FuzzySelectOlder() {
	e.fuzzyCacheIndex++
	e.clampFuzzyViewport(DefaultViewportHeight)
}

// FuzzySelectNewer moves the fuzzy-search selection toward newer matches
// (cache_index-1), clamped to the cache bounds.
func (e *Engine) FuzzySelectNewer() {
	e.fuzzyCacheIndex--
	e.clampFuzzyViewport(DefaultViewportHeight)
}

// FuzzyCacheIndex returns the cache's current selection index.
func (e *Engine) FuzzyCacheIndex() int { return e.fuzzyCacheIndex }

// FuzzyVisibleOffset returns the cache's current viewport top.
func (e *Engine) FuzzyVisibleOffset() int { return e.fuzzyCacheVisibleOffset }

// FuzzyCacheLen returns the total number of matches accumulated so far for
// the current pattern.
func (e *Engine) FuzzyCacheLen() int { return len(e.fuzzyCache) }

// FuzzyScanComplete reports whether the fuzzy search has scanned every
// entry for the current pattern.
func (e *Engine) FuzzyScanComplete() bool { return e.fuzzyGlobalIndex >= len(e.entries) }

// SuggestionSuffix returns the suffix of the most recent entry whose
// command starts with cmd, for inline ghost-text completion as the user
// types, or "" if cmd is empty or nothing matches.
func (e *Engine) SuggestionSuffix(cmd string) string {
	if cmd == "" {
		return ""
	}
	for i := len(e.entries) - 1; i >= 0; i-- {
		if strings.HasPrefix(e.entries[i].Command, cmd) {
			return e.entries[i].Command[len(cmd):]
		}
	}
	return ""
}

// RecentMatching returns entries whose command contains pattern as a
// case-insensitive substring, most recent first. Unlike FuzzySearch it
// carries no resumable state of its own, which makes it the basis for a
// reverse-search mode that orders by recency rather than by fuzzy score.
func (e *Engine) RecentMatching(pattern string) []FuzzyResult {
	if pattern == "" {
		return nil
	}
	lower := strings.ToLower(pattern)
	var out []FuzzyResult
	for i := len(e.entries) - 1; i >= 0; i-- {
		if strings.Contains(strings.ToLower(e.entries[i].Command), lower) {
			out = append(out, FuzzyResult{Entry: e.entries[i]})
		}
	}
	return out
}

// Merge folds entries from other into e, deduplicating by command,
// directory and timestamp, and re-sorts the combined set chronologically.
// It is used to merge a freshly loaded on-disk history file into the
// entries already recorded this session.
func (e *Engine) Merge(other []Entry) {
	seen := make(map[string]bool, len(e.entries))
	for _, ent := range e.entries {
		seen[mergeKey(ent)] = true
	}
	for _, ent := range other {
		k := mergeKey(ent)
		if seen[k] {
			continue
		}
		seen[k] = true
		e.entries = append(e.entries, ent)
	}
	sort.SliceStable(e.entries, func(i, j int) bool {
		return e.entries[i].CreatedAt.Before(e.entries[j].CreatedAt)
	})
	e.seenExact = make(map[string]int, len(e.entries))
	for i, ent := range e.entries {
		e.seenExact[ent.Command+"\x00"+ent.Directory] = i
	}
	if len(e.entries) > e.maxEntries {
		e.evictOldest()
	}
}

func mergeKey(e Entry) string {
	return e.Command + "\x00" + e.Directory + "\x00" + e.CreatedAt.Format(time.RFC3339Nano)
}

// LoadFile reads a history file at path and returns its entries, oldest
// first. Two formats are recognized: bish's own tab-delimited format
// (unix-nanosecond timestamp, directory, command, one entry per line, with
// embedded tabs and newlines in command backslash-escaped) and a plain
// bash-style HISTTIMEFORMAT file (optional "#<unix-seconds>" comment line
// followed by the command line it stamps). A file in neither recognizable
// format is read as one bare command per line with no timestamp.
func LoadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	var pendingTimestamp *time.Time

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		if strings.Contains(line, "\t") && strings.Count(line, "\t") >= 2 {
			parts := strings.SplitN(line, "\t", 3)
			nanos, err := strconv.ParseInt(parts[0], 10, 64)
			if err == nil {
				entries = append(entries, Entry{
					CreatedAt: time.Unix(0, nanos),
					Directory: parts[1],
					Command:   unescapeField(parts[2]),
				})
				continue
			}
		}

		if strings.HasPrefix(line, "#") {
			if secs, err := strconv.ParseInt(line[1:], 10, 64); err == nil {
				t := time.Unix(secs, 0)
				pendingTimestamp = &t
				continue
			}
		}

		entry := Entry{Command: line}
		if pendingTimestamp != nil {
			entry.CreatedAt = *pendingTimestamp
			pendingTimestamp = nil
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func unescapeField(s string) string {
	s = strings.ReplaceAll(s, "\\n", "\n")
	s = strings.ReplaceAll(s, "\\t", "\t")
	return strings.ReplaceAll(s, "\\\\", "\\")
}

func escapeField(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return strings.ReplaceAll(s, "\t", "\\t")
}

// SaveFile writes every entry to path in bish's own tab-delimited format,
// overwriting any existing file. It takes an exclusive lock on path for the
// duration of the write, so concurrent bish sessions saving history at exit
// don't interleave their writes.
func (e *Engine) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := flockExclusive(f.Fd()); err != nil {
		return err
	}
	defer flockUnlock(f.Fd())

	w := bufio.NewWriter(f)
	for _, ent := range e.entries {
		if _, err := w.WriteString(strconv.FormatInt(ent.CreatedAt.UnixNano(), 10)); err != nil {
			return err
		}
		if _, err := w.WriteString("\t" + ent.Directory + "\t" + escapeField(ent.Command) + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}
