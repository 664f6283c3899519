package images

import (
	"bytes"
	"image"

	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const thumbWidth = 480

// Thumbnail decodes a jpeg/png photo and re-encodes a width-bounded webp
// preview. Photos narrower than the bound keep their size.
func Thumbnail(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > thumbWidth {
		h = h * thumbWidth / w
		w = thumbWidth
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var out bytes.Buffer
	if err := webp.Encode(&out, dst, &webp.Options{Quality: 80}); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}
