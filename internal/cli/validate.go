package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/This-Machine-AI/loving-grace/internal/branding"
	"github.com/This-Machine-AI/loving-grace/internal/validate"
)

type validateOptions struct {
	strict bool
	quiet  bool
}

func newValidateMachineCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   branding.ValidateCLIName() + " <path>",
		Short: "Validate a machine template for completeness",
		Long: `Validate a machine template directory and report errors and warnings.

Examples:
  validate-machine machines/my-machine
  validate-machine machines/code-reviewer --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateMachine(console{w: cmd.OutOrStdout()}, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Treat warnings as errors")
	cmd.Flags().BoolVar(&opts.quiet, "quiet", false, "Only output errors, not warnings")
	applyCommon(cmd)
	return cmd
}

func runValidateMachine(out console, path string, opts *validateOptions) error {
	machinePath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	info, err := os.Stat(machinePath)
	if err != nil {
		out.error("Machine directory not found: %s", machinePath)
		return errReported
	}
	if !info.IsDir() {
		out.error("Path is not a directory: %s", machinePath)
		return errReported
	}

	out.printf("Validating machine: %s\n\n", filepath.Base(machinePath))

	report := validate.Validate(machinePath)
	errs := report.Errors()
	warnings := report.Warnings()

	if len(errs) > 0 {
		out.header("Errors:")
		for _, f := range errs {
			out.printf("  ")
			out.error("%s", f)
		}
		out.println()
	}

	if len(warnings) > 0 && !opts.quiet {
		out.header("Warnings:")
		for _, f := range warnings {
			out.printf("  ")
			out.warning("%s", f)
		}
		out.println()
	}

	failures := report.FailureCount(opts.strict)
	switch {
	case failures == 0 && len(warnings) == 0:
		out.success("Machine template is valid!")
	case failures == 0:
		out.success("Machine template is valid with %d warning(s)", len(warnings))
	default:
		out.error("Validation failed: %d error(s), %d warning(s)", failures, len(warnings))
		return errReported
	}
	return nil
}
