// Command solve-matrix fits the least squares 3x3 transform mapping a source dataset of 3-D
// points onto a target dataset and prints it as three rows of three values.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aouyang1/go-solvematrix/linearmodel"
	"github.com/aouyang1/go-solvematrix/report"
	"github.com/aouyang1/go-solvematrix/triplet"
	"gonum.org/v1/gonum/mat"
)

const usage = `Usage: solve-matrix [OPTIONS] [SOURCE DATASET PATH] [TARGET DATASET PATH]

OPTIONS
    --help | -h         Show this help message
    --format FORMAT     Output format, text or json (default: text)
    --plot PATH         Also write an HTML chart of the fit to PATH
    -v                  Log parse and fit details to stderr
`

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

func main() {
	run(os.Args[1:])
}

func run(args []string) {
	if wantsHelp(args) {
		fmt.Fprintf(stdout, "%s\n", usage)
		exit(0)
		return
	}

	cfg := unwrapOrReport(parseArgs(args))
	configureLogging(cfg.Verbose)

	source := unwrapOrReport(loadDataset(cfg.SourcePath))
	target := unwrapOrReport(loadDataset(cfg.TargetPath))

	model := unwrapOrReport(linearmodel.NewTransformRegression(nil))
	check(model.Fit(source, target))

	r := unwrapOrReport(report.New(model, source, target))
	slog.Debug("fit transform", "samples", r.Samples, "rank", r.Rank, "outliers", r.Outliers)

	if cfg.PlotPath != "" {
		check(writePlot(cfg.PlotPath, model, source, target))
	}

	switch cfg.Format {
	case formatJSON:
		check(report.WriteJSON(stdout, r))
	default:
		check(report.WriteText(stdout, model.Coef()))
	}
}

// unwrapOrReport returns v when err is nil. Otherwise the error is printed to stderr and
// the process exits with status 1.
func unwrapOrReport[T any](v T, err error) T {
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n\nSee --help\n", err)
		exit(1)
	}
	return v
}

func check(err error) {
	unwrapOrReport(struct{}{}, err)
}

func configureLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
}

func loadDataset(path string) (*mat.Dense, error) {
	points, err := triplet.ReadFile(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("parsed dataset", "path", path, "rows", points.Len())

	mx, err := points.Dense()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mx, nil
}

func writePlot(path string, model *linearmodel.TransformRegression, source, target mat.Matrix) error {
	fitted, err := model.Predict(source)
	if err != nil {
		return fmt.Errorf("unable to predict with transform, %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WritePlot(file, target, fitted); err != nil {
		file.Close()
		return fmt.Errorf("unable to render plot, %w", err)
	}
	slog.Debug("wrote plot", "path", path)
	return file.Close()
}
