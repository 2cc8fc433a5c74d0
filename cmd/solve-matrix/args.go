package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
)

const (
	formatText = "text"
	formatJSON = "json"
)

var (
	errMissingSource = errors.New("Missing source dataset")
	errMissingTarget = errors.New("Missing target dataset")
	errUnknownFormat = errors.New("unknown output format, expected text or json")
)

type config struct {
	SourcePath string
	TargetPath string
	Format     string
	PlotPath   string
	Verbose    bool
}

// wantsHelp reports whether any argument asks for the usage text
func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--help", "-h", "-help":
			return true
		}
	}
	return false
}

// parseArgs collects the two dataset paths and any options, which may appear anywhere in
// args. Positional arguments past the target path are ignored.
func parseArgs(args []string) (*config, error) {
	cfg := &config{}

	fs := flag.NewFlagSet("solve-matrix", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Format, "format", formatText, "output format")
	fs.StringVar(&cfg.PlotPath, "plot", "", "html chart output path")
	fs.BoolVar(&cfg.Verbose, "v", false, "debug logging")

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}

	switch cfg.Format {
	case formatText, formatJSON:
	default:
		return nil, fmt.Errorf("got %q, %w", cfg.Format, errUnknownFormat)
	}

	if len(positional) < 1 {
		return nil, errMissingSource
	}
	if len(positional) < 2 {
		return nil, errMissingTarget
	}
	cfg.SourcePath = positional[0]
	cfg.TargetPath = positional[1]
	return cfg, nil
}
