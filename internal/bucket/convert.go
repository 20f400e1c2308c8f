package bucket

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/bbrks/go-blurhash"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

const (
	blurHashX = 4
	blurHashY = 3
	// images are scaled down to this width before hashing
	blurHashWidth = 64
)

func decodeImage(content []byte, contentType string) (image.Image, error) {
	r := bytes.NewReader(content)
	switch contentType {
	case contentTypeJPEG:
		return jpeg.Decode(r)
	case contentTypePNG:
		return png.Decode(r)
	case contentTypeWEBP:
		return webp.Decode(r)
	case contentTypeGIF:
		return gif.Decode(r)
	default:
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}
}

// thumbnail scales img down to at most width pixels wide.
func thumbnail(img image.Image, width int) image.Image {
	b := img.Bounds()
	if b.Dx() <= width {
		return img
	}
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func blurHash(img image.Image) (string, error) {
	return blurhash.Encode(blurHashX, blurHashY, thumbnail(img, blurHashWidth))
}
