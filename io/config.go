package io

import (
	"fmt"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/gotps/interpolate"
)

const (
	ExampleWarpFile = `[Warp]

#######################
# Required Parameters #
#######################

# PNG file to be warped.
Input = path/to/input.png
# PNG file which the warped image will be written to.
Output = path/to/output.png

#######################
# Optional Parameters #
#######################

# Number of randomly placed control points. Default is 4.
# NumControl = 4

# Standard deviation of the random TPS parameters. Larger values give
# stronger distortions. Default is 0.05.
# Variance = 0.05

# What to sample outside the input image. One of
# [ zeros | border | reflection ]. Default is zeros.
# PaddingMode = zeros

# Seed for the random number generator. If unset or 0, the current time is
# used.
# Seed = 42

# Instead of random parameters, the warp can be read from two text tables.
# ControlFile has x and y columns in normalized [0, 1] coordinates and
# ThetaFile has dx and dy columns with T+3 (or T+2 for the reduced form) rows.
# Both must be set together.
# ControlFile = path/to/ctrl.txt
# ThetaFile = path/to/theta.txt

# Number of times the input is warped. Outputs after the first are named
# with a _%d suffix. Default is 1.
# Copies = 1

# Rotates the image by a random angle in [-MaxAngle, MaxAngle) radians after
# warping. Default is 0.
# MaxAngle = 0.2`

	ExamplePointsFile = `[Points]

#######################
# Required Parameters #
#######################

# Text table of points to warp: x and y columns in normalized [0, 1]
# coordinates.
Input = path/to/points.txt
# Text table which the warped points will be written to.
Output = path/to/warped.txt

# Control points and TPS parameters, in the same format as in [Warp].
ControlFile = path/to/ctrl.txt
ThetaFile = path/to/theta.txt`

	ExamplePlotFile = `[Plot]

#######################
# Required Parameters #
#######################

# Image file which the plot will be saved to. Any format supported by
# matplotlib works.
Output = path/to/plot.png

# Control points and TPS parameters, in the same format as in [Warp].
ControlFile = path/to/ctrl.txt
ThetaFile = path/to/theta.txt

#######################
# Optional Parameters #
#######################

# Number of lattice lines drawn along each axis. Default is 11.
# Lines = 11

# Number of points used to draw each lattice line. Default is 100.
# Resolution = 100`
)

// ExampleConfig returns the example configuration file for the given mode.
func ExampleConfig(mode string) (string, bool) {
	switch strings.ToLower(mode) {
	case "warp":
		return ExampleWarpFile, true
	case "points":
		return ExamplePointsFile, true
	case "plot":
		return ExamplePlotFile, true
	}
	return "", false
}

type WarpConfig struct {
	// Required
	Input, Output string

	// Optional
	NumControl int
	Variance float64
	PaddingMode string
	Seed int64
	ControlFile, ThetaFile string
	Copies int
	MaxAngle float64

	// Set by CheckInit.
	Padding interpolate.Padding
}

type WarpWrapper struct {
	Warp WarpConfig
}

func DefaultWarpWrapper() *WarpWrapper {
	cfg := WarpConfig{
		NumControl: 4,
		Variance: 0.05,
		PaddingMode: "zeros",
		Copies: 1,
	}
	return &WarpWrapper{ cfg }
}

func (con *WarpConfig) ValidInput() bool { return con.Input != "" }
func (con *WarpConfig) ValidOutput() bool { return con.Output != "" }
func (con *WarpConfig) ValidNumControl() bool { return con.NumControl > 0 }
func (con *WarpConfig) ValidVariance() bool { return con.Variance >= 0 }
func (con *WarpConfig) ValidCopies() bool { return con.Copies > 0 }
func (con *WarpConfig) ValidMaxAngle() bool { return con.MaxAngle >= 0 }

// UsesTables returns true if the warp is read from ControlFile and ThetaFile
// rather than drawn randomly.
func (con *WarpConfig) UsesTables() bool {
	return con.ControlFile != "" || con.ThetaFile != ""
}

// CheckInit validates the config and fills in derived fields.
func (con *WarpConfig) CheckInit() error {
	if !con.ValidInput() {
		return fmt.Errorf("Invalid/non-existent 'Input' value.")
	} else if !con.ValidOutput() {
		return fmt.Errorf("Invalid/non-existent 'Output' value.")
	} else if !con.ValidNumControl() {
		return fmt.Errorf(
			"'NumControl' must be positive, but is %d.", con.NumControl,
		)
	} else if !con.ValidVariance() {
		return fmt.Errorf(
			"'Variance' must be non-negative, but is %g.", con.Variance,
		)
	} else if !con.ValidCopies() {
		return fmt.Errorf("'Copies' must be positive, but is %d.", con.Copies)
	} else if !con.ValidMaxAngle() {
		return fmt.Errorf(
			"'MaxAngle' must be non-negative, but is %g.", con.MaxAngle,
		)
	}

	if con.UsesTables() &&
		(con.ControlFile == "" || con.ThetaFile == "") {
		return fmt.Errorf(
			"'ControlFile' and 'ThetaFile' must be set together.",
		)
	}

	pad, err := interpolate.ParsePadding(con.PaddingMode)
	if err != nil { return err }
	con.Padding = pad

	return nil
}

type PointsConfig struct {
	Input, Output string
	ControlFile, ThetaFile string
}

type PointsWrapper struct {
	Points PointsConfig
}

func DefaultPointsWrapper() *PointsWrapper {
	return &PointsWrapper{ PointsConfig{} }
}

func (con *PointsConfig) CheckInit() error {
	if con.Input == "" {
		return fmt.Errorf("Invalid/non-existent 'Input' value.")
	} else if con.Output == "" {
		return fmt.Errorf("Invalid/non-existent 'Output' value.")
	} else if con.ControlFile == "" {
		return fmt.Errorf("Invalid/non-existent 'ControlFile' value.")
	} else if con.ThetaFile == "" {
		return fmt.Errorf("Invalid/non-existent 'ThetaFile' value.")
	}
	return nil
}

type PlotConfig struct {
	// Required
	Output string
	ControlFile, ThetaFile string

	// Optional
	Lines, Resolution int
}

type PlotWrapper struct {
	Plot PlotConfig
}

func DefaultPlotWrapper() *PlotWrapper {
	cfg := PlotConfig{ Lines: 11, Resolution: 100 }
	return &PlotWrapper{ cfg }
}

func (con *PlotConfig) CheckInit() error {
	if con.Output == "" {
		return fmt.Errorf("Invalid/non-existent 'Output' value.")
	} else if con.ControlFile == "" {
		return fmt.Errorf("Invalid/non-existent 'ControlFile' value.")
	} else if con.ThetaFile == "" {
		return fmt.Errorf("Invalid/non-existent 'ThetaFile' value.")
	} else if con.Lines < 2 {
		return fmt.Errorf("'Lines' must be at least 2, but is %d.", con.Lines)
	} else if con.Resolution < 2 {
		return fmt.Errorf(
			"'Resolution' must be at least 2, but is %d.", con.Resolution,
		)
	}
	return nil
}

// ReadWarpConfig reads and validates a [Warp] config file.
func ReadWarpConfig(fname string) (*WarpConfig, error) {
	wrap := DefaultWarpWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.Warp.CheckInit(); err != nil { return nil, err }
	return &wrap.Warp, nil
}

// ReadPointsConfig reads and validates a [Points] config file.
func ReadPointsConfig(fname string) (*PointsConfig, error) {
	wrap := DefaultPointsWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.Points.CheckInit(); err != nil { return nil, err }
	return &wrap.Points, nil
}

// ReadPlotConfig reads and validates a [Plot] config file.
func ReadPlotConfig(fname string) (*PlotConfig, error) {
	wrap := DefaultPlotWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.Plot.CheckInit(); err != nil { return nil, err }
	return &wrap.Plot, nil
}
