// Package cmd wires up the CLI flags and runs the streaming server.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"gocast/config"
	"gocast/server"
	"gocast/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X gocast/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args, builds the server, and runs it until ctx is
// cancelled (SIGINT/SIGTERM from main).
func Execute(ctx context.Context, args []string) error {
	cfg := config.New()

	// The config file must be loaded before flag parsing so that flags
	// override file values.  GOCAST_CONFIG or -C/--config names it.
	configPath := os.Getenv("GOCAST_CONFIG")
	if p := scanConfigPath(args); p != "" {
		configPath = p
	}
	if configPath != "" {
		if err := config.LoadFile(cfg, configPath); err != nil {
			return err
		}
	}
	config.LoadFromEnv(cfg)

	fs := flag.NewFlagSet("gocast", flag.ContinueOnError)

	// ── endpoint ─────────────────────────────────────────────────
	fs.StringVarP(&cfg.Host, "host", "H", cfg.Host, "Bind address")
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "Bind port (0 = OS-assigned)")

	// ── streaming ────────────────────────────────────────────────
	fs.StringVar(&cfg.Payload, "payload", cfg.Payload, "Payload written on each tick")
	fs.DurationVarP(&cfg.WriteInterval, "interval", "i", cfg.WriteInterval, "Pause between writes per client")
	fs.DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "Accept/reap poll bound")

	// ── output ───────────────────────────────────────────────────
	fs.CountVarP(&cfg.Verbose, "verbose", "v", "Increase verbosity (repeatable)")

	var cfgFlag string
	fs.StringVarP(&cfgFlag, "config", "C", "", "INI config file")

	var showVersion, showHelp, dryRun bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")
	fs.BoolVar(&dryRun, "dry-run", false, "Validate configuration and exit")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("gocast %s\n", version)
		return nil
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}
	if dryRun {
		return nil
	}

	// ── run ──────────────────────────────────────────────────────
	logger := util.NewLogger(cfg.Verbose)

	srv := server.New(cfg, logger)
	if err := srv.Setup(); err != nil {
		return err
	}
	logger.Info().Str("addr", util.FormatAddr(srv.Host(), srv.Port())).Msg("serving")

	<-ctx.Done()

	err := srv.End()
	logger.Debug().RawJSON("metrics", []byte(srv.Metrics().JSON())).Msg("final statistics")
	return err
}

// ── helpers ──────────────────────────────────────────────────────────

// scanConfigPath extracts the -C/--config value without a full parse;
// the file has to be loaded before the real flag pass runs.
func scanConfigPath(args []string) string {
	for i, a := range args {
		switch {
		case a == "-C" || a == "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(a, "--config="):
			return strings.TrimPrefix(a, "--config=")
		case strings.HasPrefix(a, "-C="):
			return strings.TrimPrefix(a, "-C=")
		}
	}
	return ""
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `gocast – concurrent TCP streaming server v%s

Streams a fixed payload to every connected client on a fixed cadence
until the client disconnects or the server shuts down.

Usage:
  gocast [options]                            Serve with defaults
  gocast -H 0.0.0.0 -p 5001                   Serve on an explicit endpoint
  gocast -C gocast.ini -vv                    Serve from a config file, debug logs

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Environment:
  GOCAST_HOST, GOCAST_PORT, GOCAST_PAYLOAD, GOCAST_WRITE_INTERVAL,
  GOCAST_POLL_INTERVAL, GOCAST_VERBOSE, GOCAST_CONFIG

Flags override environment variables, which override the config file.
`)
}
