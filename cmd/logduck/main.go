package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/logduck/logduck/internal/duckdb"
	"github.com/logduck/logduck/internal/filter"
	"github.com/logduck/logduck/internal/ingest"
	"github.com/logduck/logduck/internal/tui"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/logduck/config.yml)")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Int("sample-size", defaultSampleSize, "records sampled for schema inference")
	flag.Int("batch-size", defaultBatchSize, "rows per insert transaction")
	flag.String("table-name", defaultTableName, "name of the log table")
	flag.String("db-path", "", "database file (default in-memory)")
	flag.Int("max-rows", defaultMaxRows, "maximum rows returned per query, 0 = unlimited")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <logfile>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Loads a line-delimited JSON log file and opens an interactive viewer.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("logduck - JSON Log Viewer\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyFlagOverrides(&cfg, flag.CommandLine)
	if err := cfg.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg appConfig, logPath string) error {
	// The terminal belongs to the viewer; diagnostic logging would corrupt
	// the alternate screen, so it is silenced for the interactive session.
	log.SetOutput(io.Discard)

	store, err := duckdb.NewStore(cfg.DBPath, cfg.QueryTimeout)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()
	store.MaxRows = cfg.MaxRows

	pipeline := ingest.NewPipeline(store, ingest.Config{
		SampleSize: cfg.SampleSize,
		BatchSize:  cfg.BatchSize,
		TableName:  cfg.TableName,
	})
	sc, report, err := pipeline.Run(logPath)
	if err != nil {
		return err
	}

	machine, err := filter.NewMachine(store)
	if err != nil {
		return fmt.Errorf("loading records: %w", err)
	}

	viewer := tui.NewViewerModel(machine, sc, report)
	p := tea.NewProgram(viewer, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}
