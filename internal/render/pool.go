package render

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/glamour"
)

// rendererPool hands out glamour renderers per option set. A TermRenderer
// must not be shared by concurrent Render calls.
type rendererPool struct {
	mu    sync.Mutex
	pools map[Options]*sync.Pool
}

var globalPool = &rendererPool{
	pools: make(map[Options]*sync.Pool),
}

func (p *rendererPool) pool(opts Options) *sync.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pool, ok := p.pools[opts]; ok {
		return pool
	}
	pool := &sync.Pool{}
	p.pools[opts] = pool
	return pool
}

func (p *rendererPool) get(opts Options) (*glamour.TermRenderer, error) {
	if r, ok := p.pool(opts).Get().(*glamour.TermRenderer); ok {
		return r, nil
	}
	return newRenderer(opts)
}

func (p *rendererPool) put(opts Options, r *glamour.TermRenderer) {
	if r == nil {
		return
	}
	p.pool(opts).Put(r)
}

// size returns the number of distinct option sets seen
func (p *rendererPool) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pools)
}

func newRenderer(opts Options) (*glamour.TermRenderer, error) {
	width := opts.Width
	if width <= 0 {
		width = DefaultOptions().Width
	}
	style := opts.Style
	if style == "" {
		style = DefaultOptions().Style
	}

	rendererOpts := []glamour.TermRendererOption{
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
		glamour.WithPreservedNewLines(),
	}
	if opts.EnableEmoji {
		rendererOpts = append(rendererOpts, glamour.WithEmoji())
	}

	r, err := glamour.NewTermRenderer(rendererOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r, nil
}
