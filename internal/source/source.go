package source

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/gen2brain/go-fitz"
)

// ErrNoPage is returned for page indexes outside a document.
var ErrNoPage = errors.New("no such page")

// Document is a paged asset: a PDF or a single picture.
type Document interface {
	Pages() int
	Render(page, dpi int) (image.Image, error)
	Close() error
}

// PDF renders the pages of a PDF file with MuPDF. Renders are serialised on one
// handle.
type PDF struct {
	path  string
	pages int

	mu  sync.Mutex
	doc *fitz.Document
}

func OpenPDF(path string) (*PDF, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return &PDF{path: path, pages: doc.NumPage(), doc: doc}, nil
}

func (p *PDF) Pages() int {
	return p.pages
}

func (p *PDF) Render(page, dpi int) (image.Image, error) {
	if page < 0 || page >= p.pages {
		return nil, fmt.Errorf("%w: %s has %d pages, asked for page %d", ErrNoPage, p.path, p.pages, page+1)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	img, err := p.doc.ImageDPI(page, float64(dpi))
	if err != nil {
		return nil, fmt.Errorf("failed to render %s page %d: %w", p.path, page+1, err)
	}
	return img, nil
}

func (p *PDF) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc.Close()
}
