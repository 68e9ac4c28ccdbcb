package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// errReported signals a failure whose details were already printed.
var errReported = errors.New("failure already reported")

// ExecuteInit runs the init-machine command with build info injected via ldflags.
func ExecuteInit(version, commit, date string) error {
	setBuildInfo(version, commit, date)
	return execute(newInitMachineCmd())
}

// ExecuteValidate runs the validate-machine command with build info injected via ldflags.
func ExecuteValidate(version, commit, date string) error {
	setBuildInfo(version, commit, date)
	return execute(newValidateMachineCmd())
}

func setBuildInfo(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
}

func execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		console{w: os.Stderr}.error("%v", err)
	}
	return err
}

// applyCommon wires the flags and hooks both commands share.
func applyCommon(cmd *cobra.Command) {
	cmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", buildVersion, buildCommit, buildDate)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			log.SetLevel(log.DebugLevel)
			log.Debug("Debug logging enabled")
		}
	}
}
