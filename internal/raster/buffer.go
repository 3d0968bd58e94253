package raster

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"

	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/webp" // register WebP
)

// ErrImageDecode indicates the input bytes are not a decodable image.
var ErrImageDecode = errors.New("image decode failure")

// ErrEmptyImage indicates an image with zero width or height.
var ErrEmptyImage = errors.New("image has no pixels")

// DecodeError wraps a decoder failure with the detected format, if any.
type DecodeError struct {
	Format string
	Err    error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("%v (%s): %v", ErrImageDecode, e.Format, e.Err)
	}
	return fmt.Sprintf("%v: %v", ErrImageDecode, e.Err)
}

// Unwrap returns the underlying decoder error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrImageDecode) hold for every DecodeError.
func (e *DecodeError) Is(target error) bool {
	return target == ErrImageDecode
}

// PixelBuffer is an immutable RGBA pixel buffer.
// Pix holds 4 bytes per pixel (R, G, B, A), rows Stride bytes apart.
type PixelBuffer struct {
	Width  int
	Height int
	Stride int
	Pix    []byte
}

// NewPixelBuffer wraps raw RGBA bytes. The slice is not copied.
func NewPixelBuffer(width, height, stride int, pix []byte) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyImage
	}
	if stride < width*4 {
		return nil, fmt.Errorf("stride %d too small for width %d", stride, width)
	}
	if len(pix) < (height-1)*stride+width*4 {
		return nil, fmt.Errorf("pixel slice of %d bytes too short for %dx%d", len(pix), width, height)
	}
	return &PixelBuffer{Width: width, Height: height, Stride: stride, Pix: pix}, nil
}

// FromImage converts any image.Image to a PixelBuffer with origin (0, 0).
// Colors are converted to non-premultiplied RGBA.
func FromImage(img image.Image) (*PixelBuffer, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyImage
	}

	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Rect.Min == (image.Point{}) {
		return &PixelBuffer{Width: b.Dx(), Height: b.Dy(), Stride: nrgba.Stride, Pix: nrgba.Pix}, nil
	}

	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return &PixelBuffer{Width: dst.Rect.Dx(), Height: dst.Rect.Dy(), Stride: dst.Stride, Pix: dst.Pix}, nil
}

// Decode reads an encoded image (PNG, JPEG, GIF, BMP or WebP).
// Any failure is reported as a *DecodeError matching ErrImageDecode.
func Decode(r io.Reader) (*PixelBuffer, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}
	buf, err := FromImage(img)
	if err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}
	return buf, nil
}

// RGB returns the red, green and blue bytes of the pixel at (x, y).
// The caller must keep x and y inside the buffer.
func (p *PixelBuffer) RGB(x, y int) (r, g, b uint8) {
	i := y*p.Stride + x*4
	return p.Pix[i], p.Pix[i+1], p.Pix[i+2]
}
