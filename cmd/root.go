package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// Commands carrying this annotation run without loading config.
const annotationSkipWire = "trj.skip-wire"

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var configPath string
	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "trj",
		Short:         "Career trajectory CLI (trj): predict careers from trait profiles",
		Long:          "trj (Career Trajectory CLI) keeps assessment sessions of trait scores, submits them to a prediction service and shows ranked careers with the traits that drove them.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[annotationSkipWire] != "" {
				return nil
			}

			wired, err := wireApp(cmd.Context(), configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			*app = *wired
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/trajectory/config.toml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newTraitsCmd(),
		newPredictCmd(app),
		newShellCmd(app),
	)

	return rootCmd
}
