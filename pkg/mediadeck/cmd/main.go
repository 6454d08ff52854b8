package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/retr0680/mediadeck/pkg/mediadeck"
)

var (
	gitCommit  string
	versionTag string
	buildType  string
	verbose    bool
)

func init() {
	flag.BoolVar(&verbose, "verbose", false, "Show verbose logs (useful for debugging session queries)")
	flag.BoolVar(&verbose, "v", false, "Shorthand for --verbose")
	flag.Parse()
}

func main() {
	// First we need a logger
	logger, err := mediadeck.NewLogger(buildType)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	named := logger.Named("main")
	named.Debug("Created logger")

	if versionTag != "" || gitCommit != "" {
		named.Infow("Version info", "gitCommit", gitCommit, "versionTag", versionTag, "buildType", buildType)
	}

	if verbose {
		named.Debug("Verbose mode enabled, all log messages will be shown")
	}

	d, err := mediadeck.NewDeck(logger, verbose)
	if err != nil {
		named.Fatalw("Failed to create mediadeck instance", "error", err)
	}

	if versionTag != "" || gitCommit != "" {
		versionIdentifier := versionTag
		if versionIdentifier == "" {
			versionIdentifier = gitCommit
		}
		d.SetVersion(fmt.Sprintf("Version %s-%s", buildType, versionIdentifier))
	}

	if err := d.Initialize(); err != nil {
		named.Fatalw("Failed to initialize mediadeck", "error", err)
	}

	named.Info("Mediadeck initialized successfully")
}
