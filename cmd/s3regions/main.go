package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/0xDTC/0xAWSCloud/pkg/core"
	"github.com/0xDTC/0xAWSCloud/pkg/engine"
	"github.com/0xDTC/0xAWSCloud/pkg/logging"
	"github.com/0xDTC/0xAWSCloud/pkg/net"
	"github.com/0xDTC/0xAWSCloud/pkg/permute"
	"github.com/0xDTC/0xAWSCloud/pkg/probe"
)

// Grace period before a second interrupt forces the process down.
const forceExitGrace = 2 * time.Second

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "s3regions",
		Usage: "scan for publicly listable S3 buckets derived from a base name",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "bucket",
				Aliases: []string{"b"},
				Usage:   "base bucket name",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "file of base names, one per line ('#' comments and blanks ignored)",
			},
			&cli.BoolFlag{
				Name:    "cli",
				Aliases: []string{"c"},
				Usage:   "probe through the listing capability",
			},
			&cli.BoolFlag{
				Name:    "web",
				Aliases: []string{"w"},
				Usage:   "probe through raw HTTP",
			},
			&cli.BoolFlag{
				Name:  "variations",
				Usage: "also try generated name variations",
			},
			&cli.IntFlag{
				Name:    "threads",
				Aliases: []string{"t"},
				Value:   30,
				Usage:   "number of concurrent probes",
			},
			&cli.IntFlag{
				Name:  "timeout",
				Value: 10,
				Usage: "per-request timeout in seconds",
			},
			&cli.IntFlag{
				Name:  "rate",
				Usage: "global requests per second, 0 for unlimited",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "show every probe attempt",
			},
			&cli.StringFlag{
				Name:    "write-mode",
				Value:   "skip",
				Usage:   "write permission test: skip, put or put-delete",
				EnvVars: []string{"S3REGIONS_WRITE_MODE"},
			},
			&cli.StringFlag{
				Name:    "marker",
				Usage:   "marker payload for the write probe",
				EnvVars: []string{"S3REGIONS_MARKER"},
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	base := strings.TrimSpace(c.String("bucket"))
	file := c.String("file")
	if base == "" && file == "" {
		return cli.Exit("a base name (-b) or a names file (-f) is required", 2)
	}
	if base != "" && file != "" {
		return cli.Exit("-b and -f are mutually exclusive", 2)
	}

	runListing := c.Bool("cli")
	runWeb := c.Bool("web")
	if !runListing && !runWeb {
		if file != "" {
			// A file of names fans out too far to default to both paths.
			return cli.Exit("scanning a names file requires choosing -c and/or -w explicitly", 2)
		}
		runListing, runWeb = true, true
	}

	threads := c.Int("threads")
	if threads <= 0 {
		return cli.Exit("threads must be a positive integer", 2)
	}

	writeMode, err := core.ParseWriteMode(c.String("write-mode"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	marker := c.String("marker")
	if writeMode != core.WriteSkip && strings.TrimSpace(marker) == "" {
		return cli.Exit("write testing needs a non-empty marker payload (--marker)", 2)
	}

	cfg := &core.Config{
		RunListing: runListing,
		RunWeb:     runWeb,
		Variations: c.Bool("variations"),
		Threads:    threads,
		Timeout:    time.Duration(c.Int("timeout")) * time.Second,
		Rate:       c.Int("rate"),
		Verbose:    c.Bool("verbose"),
		WriteMode:  writeMode,
		Marker:     []byte(marker),
	}

	log := logging.New(cfg.Verbose)

	names := []string{base}
	if file != "" {
		names, err = readNames(file)
		if err != nil {
			return cli.Exit(fmt.Sprintf("reading %s: %v", file, err), 1)
		}
		if len(names) == 0 {
			return cli.Exit(fmt.Sprintf("%s contains no names", file), 1)
		}
	}

	genMode := permute.Exact
	if cfg.Variations {
		genMode = permute.Variations
	}
	var candidates []core.Candidate
	for _, name := range names {
		candidates = append(candidates, permute.Generate(name, genMode)...)
	}

	httpClient := net.NewClient(cfg.Timeout)
	ctx, sup := engine.NewSupervisor(c.Context, httpClient.CloseIdle)

	var listing engine.ListingProber
	var web engine.EndpointProber
	if cfg.RunListing {
		listing = probe.NewListingBackend(probe.NewAnonLister(), cfg, log)
	}
	if cfg.RunWeb {
		web = probe.NewWebBackend(httpClient, cfg, log)
	}

	reg := engine.NewRegistry()
	agg := engine.NewAggregator()
	runner := engine.NewRunner(cfg, listing, web, reg, agg, log)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	go func() {
		<-sig
		log.Warn().Msg("interrupted, stopping new probes")
		sup.Shutdown()
		<-sig
		log.Warn().Msg("second interrupt, forcing exit")
		sup.Wait(forceExitGrace)
		os.Exit(130)
	}()

	log.Info().
		Str("mode", modeLabel(cfg)).
		Int("names", len(names)).
		Int("candidates", len(candidates)).
		Int("threads", cfg.Threads).
		Msg("starting scan")

	start := time.Now()
	runner.Run(ctx, candidates)
	sup.Finished()
	sup.Shutdown()

	summarize(log, agg, runner, time.Since(start))
	return nil
}

func modeLabel(cfg *core.Config) string {
	switch {
	case cfg.RunListing && cfg.RunWeb:
		return "cli+web"
	case cfg.RunListing:
		return "cli-only"
	default:
		return "web-only"
	}
}

func summarize(log zerolog.Logger, agg *engine.Aggregator, runner *engine.Runner, elapsed time.Duration) {
	findings := agg.Report()
	exact, variation := 0, 0
	for _, f := range findings {
		if f.Candidate.Tag == core.TagExact {
			exact++
		} else {
			variation++
		}
	}

	if !agg.AnyFound() {
		log.Info().
			Int64("probed", runner.Probed()).
			Dur("elapsed", elapsed.Round(time.Millisecond)).
			Msg("no accessible buckets found")
		return
	}
	log.Info().
		Int64("found", runner.Found()).
		Int("exact", exact).
		Int("variations", variation).
		Int64("probed", runner.Probed()).
		Dur("elapsed", elapsed.Round(time.Millisecond)).
		Msg("accessible buckets found")
}

// readNames loads base names from a file, skipping blank lines and '#'
// comments.
func readNames(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			names = append(names, line)
		}
	}
	return names, nil
}
