package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

var ErrInvalidOutputDir = errors.New("invalid output directory")

const (
	InvokerExec  = "exec"
	InvokerShell = "shell"

	LogFormatText = "text"
	LogFormatJSON = "json"
)

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Inputs
	CachePath      string `short:"f" long:"file" env:"ARCHIVER_DB" description:"Path to the feed reader cache database" required:"true"`
	OutputDir      string `short:"d" long:"directory" env:"ARCHIVER_OUTPUT_DIR" description:"Directory receiving the captures (must exist)" required:"true"`
	RulesPath      string `short:"r" long:"rules" env:"ARCHIVER_RULES" default:"settings.conf" description:"Capture rule file (tool|match|args per line, or .yml)"`
	ExclusionsPath string `short:"x" long:"exclusions" env:"ARCHIVER_EXCLUSIONS" default:"blacklist.conf" description:"Excluded site URL substrings, one per line (or .yml)"`

	// Capture behaviour
	WorkerCount int    `short:"w" long:"workers" env:"ARCHIVER_WORKERS" default:"1" description:"Number of feeds archived concurrently"`
	Timeout     int    `long:"timeout" env:"ARCHIVER_TIMEOUT" default:"0" description:"Per-capture timeout in seconds (0 disables)"`
	Invoker     string `long:"invoker" env:"ARCHIVER_INVOKER" default:"exec" choice:"exec" choice:"shell" description:"How capture tools are started"`
	LedgerPath  string `long:"ledger" env:"ARCHIVER_LEDGER" description:"Optional SQLite database recording every capture"`
	UserAgent   string `long:"user-agent" env:"ARCHIVER_USER_AGENT" default:"feed-archiver/1.0" description:"User agent for the readability tool"`
	DryRun      bool   `short:"n" long:"dry-run" description:"Log planned captures without running anything"`
	FailFast    bool   `long:"fail-fast" description:"Abort on the first invalid record or launch failure"`

	// Application metadata
	Debug       bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
	LogFormat   string `long:"log-format" env:"ARCHIVER_LOG_FORMAT" default:"text" choice:"text" choice:"json" description:"Log output format"`
	ShowVersion bool   `short:"V" long:"version" description:"Print version and exit"`
}

// Load parses os.Args. It returns nil, nil when help was requested.
func Load() (*Cfg, error) {
	return Parse(os.Args[1:])
}

func Parse(args []string) (*Cfg, error) {
	if wantsVersion(args) {
		// Required options would otherwise reject a bare --version.
		return &Cfg{ShowVersion: true, Version: GetVersion()}, nil
	}

	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)
	parser.Name = "feed-archiver"

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.WorkerCount < 1 {
		return nil, fmt.Errorf("failed to parse configuration: workers must be at least 1, got %d", raw.WorkerCount)
	}
	if raw.Timeout < 0 {
		return nil, fmt.Errorf("failed to parse configuration: timeout must not be negative, got %d", raw.Timeout)
	}

	return &Cfg{
		CachePath:      raw.CachePath,
		OutputDir:      raw.OutputDir,
		RulesPath:      raw.RulesPath,
		ExclusionsPath: raw.ExclusionsPath,
		WorkerCount:    raw.WorkerCount,
		Timeout:        time.Duration(raw.Timeout) * time.Second,
		Invoker:        raw.Invoker,
		LedgerPath:     raw.LedgerPath,
		UserAgent:      raw.UserAgent,
		DryRun:         raw.DryRun,
		FailFast:       raw.FailFast,
		Debug:          raw.Debug,
		LogFormat:      raw.LogFormat,
		ShowVersion:    raw.ShowVersion,
		Version:        GetVersion(),
	}, nil
}

// ValidateOutputDir checks that the output directory exists and is a
// directory. Nothing is archived otherwise.
func ValidateOutputDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOutputDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidOutputDir, path)
	}
	return nil
}

func wantsVersion(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--":
			return false
		case "-V", "--version":
			return true
		}
	}
	return false
}
