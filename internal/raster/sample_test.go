package raster

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func bufferOf(t *testing.T, img image.Image) *PixelBuffer {
	t.Helper()
	buf, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	return buf
}

func TestSampleWindowRule(t *testing.T) {
	buf := bufferOf(t, solidImage(10, 10, color.NRGBA{A: 255}))

	tests := []struct {
		name       string
		cols, rows int
		x, y       int
		expected   image.Rectangle
	}{
		{"exact division", 5, 5, 1, 2, image.Rect(2, 4, 4, 6)},
		{"non-integer first", 3, 3, 0, 0, image.Rect(0, 0, 3, 3)},
		{"non-integer middle", 3, 3, 1, 1, image.Rect(3, 3, 6, 6)},
		{"non-integer last absorbs remainder", 3, 3, 2, 2, image.Rect(6, 6, 10, 10)},
		{"upsampling first", 40, 25, 0, 0, image.Rect(0, 0, 1, 1)},
		{"upsampling shares pixel", 40, 25, 1, 1, image.Rect(0, 0, 1, 1)},
		{"upsampling last", 40, 25, 39, 24, image.Rect(9, 9, 10, 10)},
		{"single cell covers image", 1, 1, 0, 0, image.Rect(0, 0, 10, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SampleWindow(buf, tt.cols, tt.rows, tt.x, tt.y)
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSampleWindowsTileImage(t *testing.T) {
	// 400/40 = 10 and 400/25 = 16 in the default layout; 7 and 3 do not divide.
	sizes := [][2]int{{400, 400}, {101, 37}, {7, 3}}
	grids := [][2]int{{40, 25}, {3, 7}, {13, 11}}

	for _, size := range sizes {
		buf := bufferOf(t, solidImage(size[0], size[1], color.NRGBA{A: 255}))
		for _, g := range grids {
			cols, rows := g[0], g[1]
			counts := make([]int, size[0]*size[1])
			for y := 0; y < rows; y++ {
				for x := 0; x < cols; x++ {
					win := SampleWindow(buf, cols, rows, x, y)
					if win.Empty() {
						t.Fatalf("%v over %v: empty window at (%d,%d)", g, size, x, y)
					}
					if !win.In(image.Rect(0, 0, size[0], size[1])) {
						t.Fatalf("%v over %v: window %v outside image", g, size, win)
					}
					for py := win.Min.Y; py < win.Max.Y; py++ {
						for px := win.Min.X; px < win.Max.X; px++ {
							counts[py*size[0]+px]++
						}
					}
				}
			}
			// When the image is at least as large as the grid every pixel is
			// covered exactly once.
			if size[0] >= cols && size[1] >= rows {
				for i, c := range counts {
					if c != 1 {
						t.Fatalf("%v over %v: pixel %d covered %d times", g, size, i, c)
					}
				}
			}
		}
	}
}

func TestSampleGridSize(t *testing.T) {
	sizes := [][2]int{{400, 400}, {37, 91}, {5, 2}, {1, 1}}

	for _, size := range sizes {
		buf := bufferOf(t, solidImage(size[0], size[1], color.NRGBA{R: 1, G: 2, B: 3, A: 255}))
		cells, err := Sample(buf, 40, 25)
		if err != nil {
			t.Fatalf("Sample failed: %v", err)
		}
		if len(cells) != 40*25 {
			t.Errorf("image %v: expected %d cells, got %d", size, 40*25, len(cells))
		}
		last := cells[len(cells)-1]
		if last.X != 39 || last.Y != 24 {
			t.Errorf("image %v: expected last cell (39,24), got (%d,%d)", size, last.X, last.Y)
		}
	}
}

func TestSampleAverages(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0, G: 100, B: 200, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 255, G: 101, B: 0, A: 255})

	cells, err := Sample(bufferOf(t, img), 1, 1)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	c := cells[0]
	if c.R != 127.5 || c.G != 100.5 || c.B != 100 {
		t.Errorf("unexpected means: %+v", c)
	}
	expected := (0.0 + 100 + 200 + 255 + 101 + 0) / 6
	if c.Brightness != expected {
		t.Errorf("expected brightness %v, got %v", expected, c.Brightness)
	}
	if r, g, b := c.RGB8(); r != 128 || g != 101 || b != 100 {
		t.Errorf("expected rounded (128,101,100), got (%d,%d,%d)", r, g, b)
	}
}

func TestSampleUniform(t *testing.T) {
	buf := bufferOf(t, solidImage(33, 17, color.NRGBA{R: 10, G: 10, B: 10, A: 255}))
	cells, err := Sample(buf, 6, 4)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	for _, c := range cells {
		if c.Brightness != 10 || c.R != 10 || c.G != 10 || c.B != 10 {
			t.Fatalf("expected uniform 10, got %+v", c)
		}
	}
}

func TestSampleInvalid(t *testing.T) {
	buf := bufferOf(t, solidImage(4, 4, color.NRGBA{A: 255}))
	if _, err := Sample(buf, 0, 3); !errors.Is(err, ErrInvalidGrid) {
		t.Errorf("expected ErrInvalidGrid, got %v", err)
	}
	if _, err := Sample(nil, 3, 3); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("expected ErrEmptyImage, got %v", err)
	}
}
