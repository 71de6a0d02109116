package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/cookieconsent/pkg/config"
	"github.com/umputun/cookieconsent/pkg/consent"
	"github.com/umputun/cookieconsent/pkg/domain"
	"github.com/umputun/cookieconsent/pkg/repository"
	"github.com/umputun/cookieconsent/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"path to YAML config file, defaults used if not set"`
	DB     string `long:"db" env:"DB" description:"database DSN, overrides config"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	Show   bool   `long:"show" description:"print the stored consent decision and exit"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	SetupLog(opts.Debug)

	log.Printf("[INFO] starting cookieconsent version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires storage, consent controller and server, and blocks until ctx is done
func run(ctx context.Context, opts Opts) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	store := consent.NewStore(repos.Setting, cfg.Consent.StorageKey)

	if opts.Show {
		return showDecision(ctx, os.Stdout, store, repos.Setting)
	}

	ctrl := consent.NewController(ctx, store)
	srv := server.New(cfg, ctrl, store, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// loadConfig reads the config file if set and applies command line overrides
func loadConfig(opts Opts) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.DB != "" {
		cfg.Database.DSN = opts.DB
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	return cfg, nil
}

// settingEntryReader gives access to the raw stored value with its write time
type settingEntryReader interface {
	GetSettingEntry(ctx context.Context, key string) (*domain.Setting, error)
}

// showDecision prints the stored consent decision
func showDecision(ctx context.Context, w io.Writer, store *consent.Store, entries settingEntryReader) error {
	rec, ok := store.Load(ctx)
	if !ok {
		_, err := fmt.Fprintln(w, "no consent decision recorded")
		return err
	}

	for _, c := range domain.Categories() {
		if _, err := fmt.Fprintf(w, "%s: %v\n", c, rec.Allows(c)); err != nil {
			return err
		}
	}

	decidedAt := "unknown" // records written without a decision time
	if !rec.DecidedAt.IsZero() {
		decidedAt = rec.DecidedAt.Format(time.RFC3339)
	}
	if _, err := fmt.Fprintf(w, "decided at: %s\n", decidedAt); err != nil {
		return err
	}

	entry, err := entries.GetSettingEntry(ctx, store.Key())
	if err != nil {
		return fmt.Errorf("failed to read %s entry: %w", store.Key(), err)
	}
	if entry == nil {
		return errors.New("consent entry disappeared")
	}
	_, err = fmt.Fprintf(w, "stored at: %s\n", entry.UpdatedAt.UTC().Format(time.RFC3339))
	return err
}

// SetupLog configures lgr and redirects the standard logger through it
func SetupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
