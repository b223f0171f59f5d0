package completion

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kestrel-sh/bish/pkg/shellinput"
)

// getFileCompletions lists entries of dir whose name has prefix, returning
// one candidate per match. Directory entries carry a trailing path
// separator in Suffix so callers (and DefaultCompleter.completeDirectories,
// which filters on exactly this field) can tell them apart from plain
// files without re-statting.
func getFileCompletions(prefix, dir string) []shellinput.CompletionCandidate {
	searchDir := dir
	namePrefix := prefix

	if idx := strings.LastIndexByte(prefix, os.PathSeparator); idx >= 0 {
		sub := prefix[:idx+1]
		namePrefix = prefix[idx+1:]
		if filepath.IsAbs(sub) {
			searchDir = sub
		} else {
			searchDir = filepath.Join(dir, sub)
		}
	}

	entries, err := os.ReadDir(searchDir)
	if err != nil {
		return nil
	}

	var candidates []shellinput.CompletionCandidate
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, namePrefix) {
			continue
		}
		if namePrefix == "" && strings.HasPrefix(name, ".") {
			continue
		}

		value := name
		if idx := strings.LastIndexByte(prefix, os.PathSeparator); idx >= 0 {
			value = prefix[:idx+1] + name
		}

		suffix := ""
		if e.IsDir() {
			suffix = string(os.PathSeparator)
		}

		candidates = append(candidates, shellinput.CompletionCandidate{
			Value:  value,
			Suffix: suffix,
		})
	}
	return candidates
}
