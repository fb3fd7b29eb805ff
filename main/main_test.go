package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetModeName(t *testing.T) {
	a, b := "", ""
	vars := map[string]*string{"Warp": &a, "Plot": &b}

	_, err := getModeName(vars)
	assert.Error(t, err)

	a = "warp.cfg"
	mode, err := getModeName(vars)
	assert.NoError(t, err)
	assert.Equal(t, "Warp", mode)

	b = "plot.cfg"
	_, err = getModeName(vars)
	assert.Error(t, err)
}

func TestCopyName(t *testing.T) {
	assert.Equal(t, "out/warp.png", copyName("out/warp.png", 0))
	assert.Equal(t, "out/warp_3.png", copyName("out/warp.png", 3))
	assert.Equal(t, "warp_1", copyName("warp", 1))
}

func TestLatticeLines(t *testing.T) {
	pts := latticeLines(3, 5)
	assert.Equal(t, 2*3*5, pts.Len)

	// Second horizontal line.
	x, y := pts.At(0, 5 + 2)
	assert.Equal(t, 0.5, x)
	assert.Equal(t, 0.5, y)
	x, y = pts.At(0, 5 + 4)
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 0.5, y)

	// Third vertical line.
	x, y = pts.At(0, 15 + 10 + 1)
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 0.25, y)
}
