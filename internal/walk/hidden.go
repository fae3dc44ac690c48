package walk

import (
	"path/filepath"
	"strings"
)

// IsHidden reports whether path lies on a hidden branch below root: some
// segment after root's own, other than "." or "..", starts with a dot.
// It only inspects the path text.
func IsHidden(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		// Unrelated paths: judge every segment.
		rel = path
	}
	for _, segment := range strings.Split(filepath.ToSlash(rel), "/") {
		if segment == "." || segment == ".." {
			continue
		}
		if strings.HasPrefix(segment, ".") {
			return true
		}
	}
	return false
}
