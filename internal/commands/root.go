// Package commands implements the cobra commands of the modelshim CLI.
//
// Every command reads and writes through the cobra command streams, so
// tests drive them with buffers. Failures are returned, never printed;
// Execute hands them to cli.DisplayError.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/reoring/modelshim/cli"
	"github.com/reoring/modelshim/compat"
	"github.com/reoring/modelshim/i18n"
)

// EnvLang names the environment variable holding the default --lang.
const EnvLang = "MODELSHIM_LANG"

// Version is the CLI version; main sets it from ldflags.
var Version = "dev"

// options are the global flags plus the adapter every command works with.
type options struct {
	organization string
	verbose      bool
	lang         string
	adapter      compat.Adapter
}

// NewRootCommand returns the root command bound to the linked generation.
func NewRootCommand() *cobra.Command { return newRootCommand(compat.Default) }

func newRootCommand(a compat.Adapter) *cobra.Command {
	opts := &options{adapter: a}
	root := &cobra.Command{
		Use:   "modelshim",
		Short: "Inspect and validate SDK resource models",
		Long: `modelshim works with the SDK's resource models through one adapter,
whichever generation of the model library is linked in.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.organization, "organization", "", "organization shown in front of errors (default $"+cli.EnvOrganization+")")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&opts.lang, "lang", envOr(EnvLang, "en"), "language of validation messages (en|ja)")

	root.AddCommand(
		newVersionCommand(opts),
		newFieldsCommand(opts),
		newSchemaCommand(opts),
		newValidateCommand(opts),
	)
	return root
}

func (o *options) setup(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(cmd.ErrOrStderr(), &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	})))

	if cmd.Flags().Changed("organization") {
		cli.SetOrganization(o.organization)
	}
	switch o.lang {
	case "en", "ja":
		i18n.SetLanguage(o.lang)
	default:
		return &cli.CLIError{Code: cli.ExitUsageError, Message: fmt.Sprintf("unsupported --lang %q (want en or ja)", o.lang)}
	}
	slog.Debug("model library linked",
		"version", o.adapter.Version(),
		"generation", o.adapter.Generation().String())
	return nil
}

// Execute runs root and returns the process exit status. Errors are
// reported through cli.DisplayError.
func Execute(root *cobra.Command) int {
	if err := root.Execute(); err != nil {
		cli.DisplayError(err)
		return cli.ExitCodeOf(err)
	}
	return int(cli.ExitOK)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
