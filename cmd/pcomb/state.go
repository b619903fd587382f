package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/pcomb/project"
)

// globalState is shared by all subcommands. Flags are bound to its fields
// and init completes it once they are parsed.
type globalState struct {
	dir     string
	verbose int
	noColor bool
	logFile string

	stdoutTTY bool
	settings  *project.Settings
	log       commonlog.Logger
}

func newGlobalState() *globalState {
	return &globalState{
		dir:       ".",
		stdoutTTY: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
}

func (gs *globalState) init() error {
	settings, err := project.LoadFrom(gs.dir)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	gs.settings = settings

	verbosity := max(gs.verbose, settings.Verbosity)
	if gs.logFile != "" {
		commonlog.Configure(verbosity, &gs.logFile)
	} else {
		commonlog.Configure(verbosity, nil)
	}
	gs.log = commonlog.GetLogger("pcomb.cli")
	if settings.Path != "" {
		gs.log.Infof("settings loaded from %s", settings.Path)
	}
	return nil
}

// colored reports whether output should carry color escapes.
func (gs *globalState) colored() bool {
	if gs.noColor {
		return false
	}
	switch gs.settings.Color {
	case "always":
		return true
	case "never":
		return false
	}
	return gs.stdoutTTY
}
