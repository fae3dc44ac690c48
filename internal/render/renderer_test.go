package render

import (
	"strings"
	"testing"

	"gotree/internal/walk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// entries builds a walk sequence from "depth:name" strings; a trailing "/"
// marks a directory and a leading "." on any segment marks it hidden,
// along with everything nested under it.
func entries(lines ...string) []walk.Entry {
	out := []walk.Entry{{Depth: 0, Path: "root", Name: "root", IsDir: true}}
	var hiddenAt []bool
	for _, s := range lines {
		depth := int(s[0] - '0')
		name := s[2:]
		isDir := strings.HasSuffix(name, "/")
		name = strings.TrimSuffix(name, "/")

		hiddenAt = hiddenAt[:min(len(hiddenAt), depth-1)]
		hidden := strings.HasPrefix(name, ".")
		for _, h := range hiddenAt {
			hidden = hidden || h
		}
		hiddenAt = append(hiddenAt, hidden)

		out = append(out, walk.Entry{Depth: depth, Path: "root/" + name, Name: name, IsDir: isDir, Hidden: hidden})
	}
	return out
}

func TestRenderEmptyRoot(t *testing.T) {
	assert.Equal(t, "0 directories, 0 files\n", Render(entries(), Options{}))
}

func TestRenderHiddenFilesAndNestedDir(t *testing.T) {
	seq := entries(
		"1:.a", "1:.b", "1:.c",
		"1:d/", "2:z",
		"1:x", "1:y",
	)

	want := "" +
		"├── d\n" +
		"│   └── z\n" +
		"├── x\n" +
		"└── y\n" +
		"1 directories, 3 files\n"
	assert.Equal(t, want, Render(seq, Options{}))
}

func TestRenderShowHidden(t *testing.T) {
	seq := entries(
		"1:.a", "1:.b", "1:.c",
		"1:d/", "2:z",
		"1:x", "1:y",
	)

	want := "" +
		"├── .a\n" +
		"├── .b\n" +
		"├── .c\n" +
		"├── d\n" +
		"│   └── z\n" +
		"├── x\n" +
		"└── y\n" +
		"1 directories, 6 files\n"
	assert.Equal(t, want, Render(seq, Options{ShowHidden: true}))
}

func TestRenderClosedAncestorsUseBlankFiller(t *testing.T) {
	seq := entries(
		"1:a/", "2:a1/", "3:f",
		"2:a2",
		"1:b/", "2:b1/", "3:g", "3:h",
	)

	want := "" +
		"├── a\n" +
		"│   ├── a1\n" +
		"│   │   └── f\n" +
		"│   └── a2\n" +
		"└── b\n" +
		"    └── b1\n" +
		"        ├── g\n" +
		"        └── h\n" +
		"4 directories, 4 files\n"
	assert.Equal(t, want, Render(seq, Options{}))
}

func TestRenderLastSiblingFollowedByDeeperEntries(t *testing.T) {
	// "only" is the last child of the root even though its own children
	// follow it.
	seq := entries("1:only/", "2:one", "2:two")

	want := "" +
		"└── only\n" +
		"    ├── one\n" +
		"    └── two\n" +
		"1 directories, 2 files\n"
	assert.Equal(t, want, Render(seq, Options{}))
}

func TestRenderHiddenDirectoryHidesDescendants(t *testing.T) {
	seq := entries("1:.git/", "2:config", "2:objects/", "3:pack", "1:main.go")

	assert.Equal(t, "└── main.go\n0 directories, 1 files\n", Render(seq, Options{}))
}

func TestRenderTrailingHiddenSiblingDoesNotKeepBranchOpen(t *testing.T) {
	// The hidden entry is filtered before last-sibling detection, so
	// "src" must close the root's branch list.
	seq := entries("1:src/", "2:main.go", "1:.zshrc")

	want := "" +
		"└── src\n" +
		"    └── main.go\n" +
		"1 directories, 1 files\n"
	assert.Equal(t, want, Render(seq, Options{}))
}

func TestRenderDirectoriesOnly(t *testing.T) {
	seq := entries("1:a/", "2:inner/", "2:file", "1:b/", "1:top")

	want := "" +
		"├── a\n" +
		"│   └── inner\n" +
		"└── b\n" +
		"3 directories, 0 files\n"
	assert.Equal(t, want, Render(seq, Options{DirectoriesOnly: true}))
}

func TestRenderEmptyDirectoryBetweenSiblings(t *testing.T) {
	seq := entries("1:empty/", "1:next/", "2:leaf")

	want := "" +
		"├── empty\n" +
		"└── next\n" +
		"    └── leaf\n" +
		"2 directories, 1 files\n"
	assert.Equal(t, want, Render(seq, Options{}))
}

func TestRenderIsIdempotent(t *testing.T) {
	seq := entries("1:a/", "2:b", "1:c")
	assert.Equal(t, Render(seq, Options{}), Render(seq, Options{}))
}

func TestRenderGlyphMatchesLookahead(t *testing.T) {
	seq := entries(
		"1:a/", "2:b/", "3:c", "3:d/", "4:e",
		"2:f", "1:g/", "2:h/", "3:i",
		"1:j",
	)
	visible := Visible(seq, Options{})
	lines := strings.Split(strings.TrimSuffix(Render(seq, Options{}), "\n"), "\n")
	require.Len(t, lines, len(visible))

	for i, e := range visible[1:] {
		idx := i + 1
		wantLast := true
		for _, next := range visible[idx+1:] {
			if next.Depth < e.Depth {
				break
			}
			if next.Depth == e.Depth {
				wantLast = false
				break
			}
		}

		line := lines[i]
		offset := 4 * (e.Depth - 1)
		glyph := []rune(line)[offset : offset+4]
		if wantLast {
			assert.Equal(t, "└── ", string(glyph), "line %q", line)
		} else {
			assert.Equal(t, "├── ", string(glyph), "line %q", line)
		}
		assert.True(t, strings.HasSuffix(line, e.Name))
	}
}

func TestCount(t *testing.T) {
	seq := entries("1:.a", "1:d/", "2:z", "2:.y", "1:x")

	assert.Equal(t, Totals{Dirs: 1, Files: 2}, Count(seq, Options{}))
	assert.Equal(t, Totals{Dirs: 1, Files: 4}, Count(seq, Options{ShowHidden: true}))
	assert.Equal(t, Totals{Dirs: 1, Files: 0}, Count(seq, Options{DirectoriesOnly: true}))
	assert.Equal(t, "1 directories, 2 files", Count(seq, Options{}).String())
}

func TestVisibleKeepsRoot(t *testing.T) {
	seq := entries("1:.hidden")
	seq[0].Hidden = true

	visible := Visible(seq, Options{DirectoriesOnly: true})
	require.Len(t, visible, 1)
	assert.Equal(t, 0, visible[0].Depth)
}
