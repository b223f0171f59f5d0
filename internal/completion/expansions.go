package completion

import (
	"os/user"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kestrel-sh/bish/pkg/shellinput"
)

// completeTildeExpansion completes a `~user` word against the local user
// database, offering every login name that starts with the text following
// the `~`.
func completeTildeExpansion(word string) []shellinput.CompletionCandidate {
	prefix := strings.TrimPrefix(word, "~")

	names := tildeCandidateNames()
	var candidates []shellinput.CompletionCandidate
	for _, name := range names {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		candidates = append(candidates, shellinput.CompletionCandidate{
			Value:  "~" + name,
			Suffix: string(filepath.Separator),
		})
	}
	return candidates
}

// tildeCandidateNames returns the current user's login name, the best this
// package can do without shelling out to getent or scanning /etc/passwd,
// which would make completion behave differently across platforms for a
// rarely-used feature.
func tildeCandidateNames() []string {
	u, err := user.Current()
	if err != nil || u.Username == "" {
		return nil
	}
	return []string{u.Username}
}

// completeGlobExpansion expands the glob pattern under the cursor against
// the filesystem, offering each match as its own candidate the way bash's
// `glob-complete-word` readline binding does.
func completeGlobExpansion(pattern string) []shellinput.CompletionCandidate {
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return nil
	}
	sort.Strings(matches)

	candidates := make([]shellinput.CompletionCandidate, len(matches))
	for i, m := range matches {
		candidates[i] = shellinput.CompletionCandidate{Value: m}
	}
	return candidates
}
