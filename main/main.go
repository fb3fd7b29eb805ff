package main

import (
	"flag"
	"fmt"
	"log"
	"path"
	"runtime"
	"strings"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/gotps/augment"
	"github.com/phil-mansfield/gotps/io"
	"github.com/phil-mansfield/gotps/mat"
	"github.com/phil-mansfield/gotps/tps"
)

func main() {
	var (
		warpStr, pointsStr, plotStr string
		exampleConfig string
	)
	vars := map[string]*string{
		"Warp": &warpStr,
		"Points": &pointsStr,
		"Plot": &plotStr,
		"ExampleConfig": &exampleConfig,
	}

	flag.IntVar(
		&mat.NumCores, "Threads", runtime.NumCPU(),
		"Number of threads used. Default is the number of logical cores.",
	)
	flag.StringVar(
		&warpStr, "Warp", "",
		"Configuration file for [Warp] mode, which warps a PNG image.",
	)
	flag.StringVar(
		&pointsStr, "Points", "",
		"Configuration file for [Points] mode, which warps a table of points.",
	)
	flag.StringVar(
		&plotStr, "Plot", "",
		"Configuration file for [Plot] mode, which plots a warped lattice.",
	)
	flag.StringVar(
		&exampleConfig,
		"ExampleConfig", "", "Prints an example configuration file of the " +
			"specified type to stdout. Accepted arguments are 'Warp', " +
			"'Points', and 'Plot'.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil { log.Fatal(err.Error()) }
	if mat.NumCores <= 0 {
		log.Fatalf("Threads must be positive, but is %d.", mat.NumCores)
	}

	switch modeName {
	case "Warp":
		con, err := io.ReadWarpConfig(warpStr)
		if err != nil { log.Fatal(err.Error()) }
		warpMain(con)
	case "Points":
		con, err := io.ReadPointsConfig(pointsStr)
		if err != nil { log.Fatal(err.Error()) }
		pointsMain(con)
	case "Plot":
		con, err := io.ReadPlotConfig(plotStr)
		if err != nil { log.Fatal(err.Error()) }
		plotMain(con)
	case "ExampleConfig":
		body, ok := io.ExampleConfig(exampleConfig)
		if !ok {
			log.Fatalf(
				"Unrecognized configuration file type '%s'.", exampleConfig,
			)
		}
		fmt.Println(body)
	default:
		log.Fatal(
			"Unrecognized mode. (Note: this is an internal error and " +
				"should never happen. Submit a bug report about this message.)",
		)
	}
}

// getModeName returns the name of the single mode flag which was set.
func getModeName(vars map[string]*string) (string, error) {
	setModes := []string{}
	for name, val := range vars {
		if *val != "" { setModes = append(setModes, name) }
	}

	switch len(setModes) {
	case 0:
		return "", fmt.Errorf(
			"No mode flag was set. Run with -help to see the options.",
		)
	case 1:
		return setModes[0], nil
	}
	return "", fmt.Errorf(
		"The following flags were set: %s, but gotps only runs in one mode " +
			"at a time.", strings.Join(setModes, ", "),
	)
}

// readParams reads a single TPS instance from a pair of tables.
func readParams(ctrlFile, thetaFile string) (*tps.Theta, *tps.Points) {
	ctrl, err := io.ReadPoints(ctrlFile)
	if err != nil { log.Fatal(err.Error()) }
	theta, err := io.ReadTheta(thetaFile)
	if err != nil { log.Fatal(err.Error()) }

	form, err := theta.Form(ctrl.Len)
	if err != nil { log.Fatal(err.Error()) }
	log.Printf(
		"Read %d control points and %s form parameters.", ctrl.Len, form,
	)
	return theta, ctrl
}

// copyName returns the output file name of the i-th warped copy.
func copyName(fname string, i int) string {
	if i == 0 { return fname }
	ext := path.Ext(fname)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(fname, ext), i, ext)
}

func warpMain(con *io.WarpConfig) {
	img, err := io.ReadImage(con.Input)
	if err != nil { log.Fatal(err.Error()) }
	log.Printf("Read %d x %d image from %s.", img.W, img.H, con.Input)

	var gen *tps.Generator
	if con.Seed == 0 {
		gen = tps.NewTimeSeedGenerator()
	} else {
		gen = tps.NewGenerator(uint64(con.Seed))
	}

	var tr augment.Transform
	if con.UsesTables() {
		theta, ctrl := readParams(con.ControlFile, con.ThetaFile)
		tr = &augment.FixedTPS{Theta: theta, Ctrl: ctrl, Padding: con.Padding}
	} else {
		tr = augment.NewRandomTPS(con.NumControl, con.Variance, con.Padding, gen)
	}
	if con.MaxAngle > 0 {
		tr = augment.Sequence{
			tr,
			&augment.RandRotate{
				Max: con.MaxAngle, Padding: con.Padding, Gen: gen,
			},
		}
	}

	for i := 0; i < con.Copies; i++ {
		out, err := tr.Apply(img)
		if err != nil { log.Fatal(err.Error()) }

		fname := copyName(con.Output, i)
		if err := io.WriteImage(fname, out, 0); err != nil {
			log.Fatal(err.Error())
		}
		log.Printf("Wrote warped copy %d/%d to %s.", i + 1, con.Copies, fname)
	}
}

func pointsMain(con *io.PointsConfig) {
	theta, ctrl := readParams(con.ControlFile, con.ThetaFile)
	xy, err := io.ReadPoints(con.Input)
	if err != nil { log.Fatal(err.Error()) }

	wp, err := tps.SparseGrid(theta, ctrl, xy)
	if err != nil { log.Fatal(err.Error()) }

	if err := io.WritePoints(con.Output, wp); err != nil {
		log.Fatal(err.Error())
	}
	log.Printf("Wrote %d warped points to %s.", wp.M, con.Output)
}

// latticeLines returns the points along n horizontal lines followed by n
// vertical lines spanning [0, 1]^2, each sampled at res points.
func latticeLines(n, res int) *tps.Points {
	lines := tps.IdentityGrid(1, n, res)
	vals := make([]float64, 0, 4*n*res)
	for j := 0; j < n*res; j++ {
		vals = append(vals, lines.Vals[3*j + 1], lines.Vals[3*j + 2])
	}
	for j := 0; j < n*res; j++ {
		vals = append(vals, lines.Vals[3*j + 2], lines.Vals[3*j + 1])
	}
	return tps.NewSharedPoints(vals)
}

func plotMain(con *io.PlotConfig) {
	theta, ctrl := readParams(con.ControlFile, con.ThetaFile)
	lattice := latticeLines(con.Lines, con.Resolution)

	warped, err := tps.SparseGrid(theta, ctrl, lattice)
	if err != nil { log.Fatal(err.Error()) }
	warpedCtrl, err := tps.SparseGrid(theta, ctrl, ctrl)
	if err != nil { log.Fatal(err.Error()) }

	plt.Figure(plt.FigSize(8, 8))
	for line := 0; line < 2*con.Lines; line++ {
		xs := make([]float64, con.Resolution)
		ys := make([]float64, con.Resolution)
		for j := range xs {
			xs[j], ys[j] = lattice.At(0, line*con.Resolution + j)
		}
		plt.Plot(xs, ys, plt.C("LightGray"), plt.LW(1))

		wxs := make([]float64, con.Resolution)
		wys := make([]float64, con.Resolution)
		for j := range wxs {
			wxs[j], wys[j] = warped.At(0, line*con.Resolution + j)
		}
		plt.Plot(wxs, wys, "k", plt.LW(1))
	}

	cxs, cys := make([]float64, ctrl.Len), make([]float64, ctrl.Len)
	wxs, wys := make([]float64, ctrl.Len), make([]float64, ctrl.Len)
	for j := 0; j < ctrl.Len; j++ {
		cxs[j], cys[j] = ctrl.At(0, j)
		wxs[j], wys[j] = warpedCtrl.At(0, j)
	}
	plt.Plot(cxs, cys, "ob")
	plt.Plot(wxs, wys, "or")

	plt.Title(fmt.Sprintf("TPS with %d control points", ctrl.Len))
	plt.XLabel(`$x$`, plt.FontSize(16))
	plt.YLabel(`$y$`, plt.FontSize(16))
	// Image rows run downwards.
	plt.XLim(-0.25, 1.25)
	plt.YLim(1.25, -0.25)
	plt.SaveFig(con.Output)

	plt.Execute()
	log.Printf("Saved lattice plot to %s.", con.Output)
}
