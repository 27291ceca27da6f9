package source

import (
	"errors"
	"fmt"
	"image"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/ivlev/deck2video/internal/slide"
)

// ErrUnknownAsset is returned for image ids missing from the presentation
// resources.
var ErrUnknownAsset = errors.New("unknown asset")

// Open opens a PDF or an image file by extension.
func Open(path string) (Document, error) {
	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return OpenPDF(path)
	}
	return OpenPicture(path)
}

// SplitPage splits "file.pdf#3" into the path and a zero-based page index.
// Locations without a page refer to page 0.
func SplitPage(loc string) (string, int, error) {
	i := strings.LastIndex(loc, "#")
	if i < 0 {
		return loc, 0, nil
	}
	n, err := strconv.Atoi(loc[i+1:])
	if err != nil || n < 1 {
		return "", 0, fmt.Errorf("invalid page in %q", loc)
	}
	return loc[:i], n - 1, nil
}

// Assets decodes presentation images on first use and keeps them. It is safe for
// concurrent use.
type Assets struct {
	locations map[string]string
	dpi       int

	mu     sync.Mutex
	images map[string]image.Image
	docs   map[string]Document
}

// NewAssets serves the images listed in res. PDF pages are rendered at dpi.
func NewAssets(res slide.Resources, dpi int) *Assets {
	locations := make(map[string]string, len(res.Images))
	for id, loc := range res.Images {
		locations[id] = loc
	}
	return &Assets{
		locations: locations,
		dpi:       dpi,
		images:    make(map[string]image.Image),
		docs:      make(map[string]Document),
	}
}

// Image returns the decoded image for id.
func (a *Assets) Image(id string) (image.Image, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if img, ok := a.images[id]; ok {
		return img, nil
	}

	loc, ok := a.locations[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAsset, id)
	}

	path, page, err := SplitPage(loc)
	if err != nil {
		return nil, err
	}

	doc, ok := a.docs[path]
	if !ok {
		doc, err = Open(path)
		if err != nil {
			return nil, err
		}
		a.docs[path] = doc
	}

	img, err := doc.Render(page, a.dpi)
	if err != nil {
		return nil, err
	}
	a.images[id] = img
	return img, nil
}

// Preload decodes every image up front and reports the first failure.
func (a *Assets) Preload() error {
	for id := range a.locations {
		if _, err := a.Image(id); err != nil {
			return err
		}
	}
	if len(a.locations) > 0 {
		fmt.Printf("[*] Загружено изображений: %d\n", len(a.locations))
	}
	return nil
}

// Close releases open documents.
func (a *Assets) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var errs []error
	for path, doc := range a.docs {
		if err := doc.Close(); err != nil {
			log.Printf("[!] Ошибка закрытия %s: %v", path, err)
			errs = append(errs, err)
		}
	}
	a.docs = map[string]Document{}
	return errors.Join(errs...)
}
