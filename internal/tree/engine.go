// Package tree composes the walker and the renderer into the single
// operation the command line calls.
package tree

import (
	"gotree/internal/config"
	log "gotree/internal/log"
	"gotree/internal/render"
	"gotree/internal/walk"
)

// Engine renders directory trees with a fixed set of display options.
type Engine struct {
	opts render.Options
}

// New creates an Engine with default options: hidden entries filtered,
// files listed.
func New() *Engine {
	return &Engine{}
}

// NewWithConfig creates an Engine whose options come from cfg.
func NewWithConfig(cfg *config.Config) *Engine {
	engine := New()
	if cfg != nil {
		engine.opts = render.Options{
			ShowHidden:      cfg.Display.ShowHidden,
			DirectoriesOnly: cfg.Display.DirectoriesOnly,
		}
	}
	return engine
}

// SetOptions replaces the display options.
func (e *Engine) SetOptions(opts render.Options) {
	e.opts = opts
}

// Options returns the display options in use.
func (e *Engine) Options() render.Options {
	return e.opts
}

// WalkAndRender walks root and returns the tree text followed by the
// summary line. Walk errors are returned unchanged, with no text.
func (e *Engine) WalkAndRender(root string) (string, error) {
	entries, err := walk.Walk(root)
	if err != nil {
		return "", err
	}

	out := render.Render(entries, e.opts)
	log.LogWithFields(
		log.F("root", root),
		log.F("show_hidden", e.opts.ShowHidden),
		log.F("directories_only", e.opts.DirectoriesOnly),
	).Debugf("rendered %d walked entries", len(entries))
	return out, nil
}
