package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/ironsheep/fondo/internal/config"
	"github.com/ironsheep/fondo/internal/generate"
	"github.com/ironsheep/fondo/internal/render"
	"github.com/ironsheep/fondo/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// progressEvery is the number of pops between verbose progress lines.
const progressEvery = 10_000

type cli struct {
	opts    config.Options
	delta   int
	scale   float64
	verbose bool
	version bool
	mcp     bool
	http    string
}

func newFlagSet(c *cli, out io.Writer) *pflag.FlagSet {
	d := config.Defaults()

	fs := pflag.NewFlagSet("fondo", pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.BoolVarP(&c.verbose, "verbose", "v", false, "print progress while growing")
	fs.StringVarP(&c.opts.Size, "size", "s", d.Size, "image size WxH")
	fs.IntVarP(&c.opts.Number, "number", "n", 0, "number of seed points")
	fs.StringVarP(&c.opts.Positions, "positions", "p", "", "seed positions x,y:x,y:...")
	fs.StringVarP(&c.opts.Colours, "colours", "c", "", "seed colours r,g,b or #rrggbb separated by ':'")
	fs.StringVar(&c.opts.Colours, "colors", "", "alias of --colours")
	fs.BoolVarP(&c.opts.RandomColours, "random", "r", false, "fill missing colours randomly")
	fs.StringVarP(&c.opts.Output, "output", "o", d.Output, "output file (png, jpg, gif, tif, bmp)")
	fs.IntVarP(&c.delta, "delta", "d", config.DefaultDelta, "maximum colour change per step")
	fs.StringVarP(&c.opts.Kind, "kind", "k", d.Kind, "growth pattern: 0-100, tree, treerev or default")
	fs.Uint64Var(&c.opts.Seed, "seed", 0, "random seed, 0 uses the clock")
	fs.Float64Var(&c.scale, "scale", config.DefaultScale, "scale factor applied after growing")
	fs.Float64Var(&c.opts.Smooth, "smooth", 0, "Gaussian blur radius applied after growing")
	fs.BoolVar(&c.version, "version", false, "print version information")
	fs.BoolVar(&c.mcp, "mcp", false, "run the MCP server on stdin/stdout")
	fs.StringVar(&c.http, "http", "", "serve HTTP on the given address, e.g. :8080")
	_ = fs.MarkHidden("colors")

	fs.Usage = func() {
		fmt.Fprintln(out, "fondo - grow coloured background images")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Usage: fondo [options]")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Options:")
		fmt.Fprint(out, fs.FlagUsages())
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Environment variables:")
		fmt.Fprintln(out, "  FONDO_LOG_LEVEL=debug    Set the log level")
	}
	return fs
}

// setupLogging sends logs to stderr; stdout is reserved for MCP.
func setupLogging(verbose bool) {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)
	if lvl, err := log.ParseLevel(os.Getenv("FONDO_LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}

// parseArgs parses the command line. Delta and scale are only set on the
// options when given, so an explicit 0 reaches validation.
func parseArgs(args []string, out io.Writer) (*cli, error) {
	var c cli
	fs := newFlagSet(&c, out)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.Changed("delta") {
		c.opts.Delta = config.Int(c.delta)
	}
	if fs.Changed("scale") {
		c.opts.Scale = config.Float(c.scale)
	}
	return &c, nil
}

func run(args []string, stdout io.Writer) error {
	c, err := parseArgs(args, os.Stderr)
	if err != nil {
		return err
	}

	if c.version {
		fmt.Fprintf(stdout, "fondo %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return nil
	}

	setupLogging(c.verbose)
	server.Version = Version

	switch {
	case c.mcp:
		log.Debugf("fondo MCP server %s (built %s, commit %s)", Version, BuildTime, GitCommit)
		return server.New().Run()
	case c.http != "":
		log.Infof("serving HTTP on %s", c.http)
		return http.ListenAndServe(c.http, server.NewHTTP())
	}

	return generateFile(c.opts, c.verbose)
}

func generateFile(opts config.Options, verbose bool) error {
	// Fail on an unsupported extension before spending time growing.
	if _, err := render.FormatFromFilename(opts.Output); err != nil {
		return err
	}

	var hooks generate.Hooks
	if verbose {
		hooks.Progress = func(done, total int) {
			log.Infof("%.2f%%", float64(done)/float64(total)*100)
		}
		hooks.ProgressEvery = progressEvery
	}

	res, err := generate.Run(opts, hooks)
	if err != nil {
		return err
	}

	if verbose {
		log.Info("Saving...")
	}
	if err := render.Save(res.Image, opts.Output); err != nil {
		return err
	}

	if log.IsLevelEnabled(log.DebugLevel) {
		for _, c := range render.DominantColors(res.Image, 5).Colors {
			log.WithField("percentage", fmt.Sprintf("%.1f", c.Percentage)).Debug(c.Hex)
		}
	}
	log.WithFields(log.Fields{
		"output": opts.Output,
		"size":   fmt.Sprintf("%dx%d", res.Width, res.Height),
		"seed":   res.Seed,
	}).Debug("fondo written")

	if verbose {
		log.Info("Done.")
	}
	return nil
}
