package source

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// Picture is a PNG or JPEG file seen as a one-page document. It is decoded on
// open.
type Picture struct {
	path string
	img  image.Image
}

func OpenPicture(path string) (*Picture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &Picture{path: path, img: img}, nil
}

func (p *Picture) Pages() int {
	return 1
}

// Render returns the decoded image; dpi does not apply to bitmaps.
func (p *Picture) Render(page, _ int) (image.Image, error) {
	if page != 0 {
		return nil, fmt.Errorf("%w: %s is a single image, asked for page %d", ErrNoPage, p.path, page+1)
	}
	return p.img, nil
}

func (p *Picture) Close() error {
	return nil
}
