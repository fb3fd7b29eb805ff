package interpolate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/gotps/tps"
)

// ramp returns a 2-image, 2-channel batch whose pixel values encode their
// own location.
func ramp(h, w int) *Image {
	img := NewImage(nil, 2, 2, h, w)
	for i := 0; i < 2; i++ {
		for c := 0; c < 2; c++ {
			for row := 0; row < h; row++ {
				for col := 0; col < w; col++ {
					val := float64(100*i + 10*row + col)
					if c == 1 { val = -val }
					img.Set(i, c, row, col, val)
				}
			}
		}
	}
	return img
}

// constGrid returns a grid where every pixel samples (x, y).
func constGrid(n, h, w int, x, y float64) *tps.SampleGrid {
	sg := &tps.SampleGrid{Vals: make([]float64, n*h*w*2), N: n, H: h, W: w}
	for i := 0; i < n*h*w; i++ {
		sg.Vals[2*i], sg.Vals[2*i + 1] = x, y
	}
	return sg
}

func TestIdentityGridSample(t *testing.T) {
	img := ramp(5, 7)
	theta := tps.NewTheta(nil, 2, 7)
	ctrl := tps.UniformGrid(2, 2)

	sg, err := tps.DenseGrid(theta, ctrl, tps.Size{2, 2, 5, 7})
	require.NoError(t, err)

	for _, filter := range []Filter{Bilinear, Nearest} {
		for _, pad := range []Padding{Zeros, Border, Reflection} {
			out := GridSample(img, sg, pad, filter)
			assert.Equal(t, img.N, out.N)
			assert.Equal(t, img.C, out.C)
			assert.InDeltaSlice(t, img.Vals, out.Vals, 1e-9,
				"padding %s, filter %d", pad, filter)
		}
	}
}

func TestBilinearMidpoint(t *testing.T) {
	img := NewImage([]float64{
		0, 1,
		2, 3,
	}, 1, 1, 2, 2)

	out := GridSample(img, constGrid(1, 1, 1, 0, 0), Zeros, Bilinear)
	assert.InDelta(t, 1.5, out.Vals[0], 1e-12)

	out = GridSample(img, constGrid(1, 1, 1, 1, -1), Zeros, Bilinear)
	assert.InDelta(t, 1.0, out.Vals[0], 1e-12)

	out = GridSample(img, constGrid(1, 1, 1, 0.1, 0.1), Zeros, Nearest)
	assert.Equal(t, 3.0, out.Vals[0])
}

func TestPadding(t *testing.T) {
	img := NewImage([]float64{
		1, 2, 3, 4,
	}, 1, 1, 1, 4)

	// Pixel coordinate -1 along x, i.e. one pixel left of the image.
	x := -1 - 2.0/3
	out := GridSample(img, constGrid(1, 1, 1, x, 0), Zeros, Bilinear)
	assert.InDelta(t, 0.0, out.Vals[0], 1e-12)
	out = GridSample(img, constGrid(1, 1, 1, x, 0), Border, Bilinear)
	assert.InDelta(t, 1.0, out.Vals[0], 1e-12)
	out = GridSample(img, constGrid(1, 1, 1, x, 0), Reflection, Bilinear)
	assert.InDelta(t, 2.0, out.Vals[0], 1e-12)

	// Half a pixel right of the image.
	x = 1 + 1.0/3
	out = GridSample(img, constGrid(1, 1, 1, x, 0), Zeros, Bilinear)
	assert.InDelta(t, 2.0, out.Vals[0], 1e-12)
	out = GridSample(img, constGrid(1, 1, 1, x, 0), Border, Bilinear)
	assert.InDelta(t, 4.0, out.Vals[0], 1e-12)
	out = GridSample(img, constGrid(1, 1, 1, x, 0), Reflection, Bilinear)
	assert.InDelta(t, 3.5, out.Vals[0], 1e-12)
}

func TestReflect(t *testing.T) {
	assert.InDelta(t, 1.0, reflect(-1, 0, 3), 1e-12)
	assert.InDelta(t, 2.0, reflect(4, 0, 3), 1e-12)
	assert.InDelta(t, 1.0, reflect(7, 0, 3), 1e-12)
	assert.InDelta(t, 0.5, reflect(0.5, 0, 3), 1e-12)
	assert.Equal(t, 0.0, reflect(5, 0, 0))
}

func TestParsePadding(t *testing.T) {
	for _, pad := range []Padding{Zeros, Border, Reflection} {
		parsed, err := ParsePadding(pad.String())
		require.NoError(t, err)
		assert.Equal(t, pad, parsed)
	}

	parsed, err := ParsePadding("Border")
	require.NoError(t, err)
	assert.Equal(t, Border, parsed)

	_, err = ParsePadding("wrap")
	assert.Error(t, err)
}

func TestGridSampleBatchMismatch(t *testing.T) {
	assert.Panics(t, func() {
		GridSample(ramp(3, 3), constGrid(1, 3, 3, 0, 0), Zeros, Bilinear)
	})
}
