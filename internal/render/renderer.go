// Package render turns a walked entry sequence into tree text.
package render

import (
	"fmt"
	"strings"

	"gotree/internal/walk"

	"github.com/xlab/treeprint"
)

// Options selects which walked entries are shown.
type Options struct {
	ShowHidden      bool // bypass the hidden filter entirely
	DirectoriesOnly bool // drop non-directories from output and counts
}

// Totals counts the rendered entries; the root is never counted.
type Totals struct {
	Dirs  int
	Files int
}

// String formats the summary line without its newline.
func (t Totals) String() string {
	return fmt.Sprintf("%d directories, %d files", t.Dirs, t.Files)
}

// Render draws entries, which must be in walk order with the root first,
// and appends the summary line. The root itself is not drawn.
func Render(entries []walk.Entry, opts Options) string {
	visible := Visible(entries, opts)

	tree := treeprint.New()
	// parents[d] is the node that entries at depth d+1 hang from. Hidden
	// and filtered entries never have visible children, so the stack
	// always holds the right ancestor.
	parents := []treeprint.Tree{tree}
	for _, e := range visible {
		if e.Depth == 0 {
			continue
		}
		parents = parents[:e.Depth]
		parent := parents[e.Depth-1]
		if e.IsDir {
			parents = append(parents, parent.AddBranch(e.Name))
		} else {
			parent.AddNode(e.Name)
		}
	}

	// The first line is the root label.
	_, body, _ := strings.Cut(tree.String(), "\n")

	var sb strings.Builder
	sb.WriteString(body)
	sb.WriteString(Count(visible, opts).String())
	sb.WriteByte('\n')
	return sb.String()
}

// Count returns the totals Render reports for entries.
func Count(entries []walk.Entry, opts Options) Totals {
	var totals Totals
	for _, e := range Visible(entries, opts) {
		if e.Depth > 0 {
			totals.add(e)
		}
	}
	return totals
}

func (t *Totals) add(e walk.Entry) {
	if e.IsDir {
		t.Dirs++
	} else {
		t.Files++
	}
}

// Visible filters entries down to what gets drawn. The root is kept.
func Visible(entries []walk.Entry, opts Options) []walk.Entry {
	out := make([]walk.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Depth > 0 {
			if e.Hidden && !opts.ShowHidden {
				continue
			}
			if opts.DirectoriesOnly && !e.IsDir {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}
