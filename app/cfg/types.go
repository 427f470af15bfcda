package cfg

import "time"

type Cfg struct {
	// Inputs
	CachePath      string
	OutputDir      string
	RulesPath      string
	ExclusionsPath string

	// Capture behaviour
	WorkerCount int
	Timeout     time.Duration
	Invoker     string
	LedgerPath  string
	UserAgent   string
	DryRun      bool
	FailFast    bool

	// Application metadata
	Debug       bool
	LogFormat   string
	ShowVersion bool
	Version     string
}
