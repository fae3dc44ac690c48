// Package walk enumerates a directory subtree in the order the tree renderer
// depends on: depth-first pre-order, each directory's children sorted by name.
package walk

import (
	"io/fs"
	"os"
	"path/filepath"

	serr "gotree/internal/errors"
	log "gotree/internal/log"
)

// Entry is one filesystem node found by Walk. Entries are built by the
// walker and only read afterwards.
type Entry struct {
	Depth  int    // path segments between the root and this node; the root is 0
	Path   string // root joined with the node's relative path
	Name   string // final path segment, used as the display label
	IsDir  bool   // directory at walk time, resolving links
	Link   bool   // symbolic link; never descended into
	Hidden bool   // this node or an ancestor below the root starts with "."
}

// Walk lists root and everything beneath it. The root must be a readable
// directory (a link to one is accepted).
//
// Any directory that cannot be listed aborts the walk: the returned error
// is a *errors.FileError naming that directory and no entries are returned.
func Walk(root string) ([]Entry, error) {
	logger := log.LogWithFields(log.F("root", root))

	info, err := os.Stat(root)
	if err != nil {
		return nil, serr.FromOS("cannot open tree root", root, err)
	}
	if !info.IsDir() {
		return nil, serr.NewFileError("tree root is not a directory", root, serr.InvalidPath, nil)
	}

	entries := []Entry{{
		Depth: 0,
		Path:  root,
		Name:  filepath.Base(root),
		IsDir: true,
	}}

	w := &walker{root: root, entries: entries}
	if err := w.visit(root, 1, false); err != nil {
		logger.Debugf("walk aborted after %d entries", len(w.entries))
		return nil, err
	}

	logger.Debugf("walked %d entries", len(w.entries))
	return w.entries, nil
}

type walker struct {
	root    string
	entries []Entry
}

// visit appends the children of dir, recursing into subdirectories before
// moving to the next sibling.
func (w *walker) visit(dir string, depth int, hiddenParent bool) error {
	// os.ReadDir returns entries sorted by filename.
	children, err := os.ReadDir(dir)
	if err != nil {
		return serr.FromOS("cannot read directory", dir, err)
	}

	for _, child := range children {
		path := filepath.Join(dir, child.Name())
		e := Entry{
			Depth:  depth,
			Path:   path,
			Name:   child.Name(),
			IsDir:  child.IsDir(),
			Link:   child.Type()&fs.ModeSymlink != 0,
			Hidden: hiddenParent || IsHidden(w.root, path),
		}
		if e.Link {
			// A dangling link stays a file.
			if info, err := os.Stat(path); err == nil {
				e.IsDir = info.IsDir()
			}
		}
		w.entries = append(w.entries, e)

		if child.IsDir() {
			if err := w.visit(path, depth+1, e.Hidden); err != nil {
				return err
			}
		}
	}
	return nil
}
