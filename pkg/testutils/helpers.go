package testutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// MakeTree creates paths under root. Paths use forward slashes; a trailing
// slash makes a directory, anything else an empty file whose parents are
// created as needed.
func MakeTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			require.NoError(t, os.MkdirAll(full, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, nil, 0644))
	}
}

// SampleTree creates a fresh directory holding three hidden files, two
// visible files and one subdirectory with a single file:
//
//	.a .b .c x y d/z
func SampleTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	MakeTree(t, root, ".a", ".b", ".c", "x", "y", "d/z")
	return root
}

// SampleTreeOutput is the rendering of SampleTree with default options.
const SampleTreeOutput = "" +
	"├── d\n" +
	"│   └── z\n" +
	"├── x\n" +
	"└── y\n" +
	"1 directories, 3 files\n"
