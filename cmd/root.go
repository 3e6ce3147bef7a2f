package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/dear-my-friend/internal/config"
	"github.com/spf13/cobra"
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	w := newWiring()
	err := newRootCmd(w).ExecuteContext(ctx)
	return errors.Join(err, w.close())
}

// newRootCmd builds the command tree around w. The caller closes w once the
// command returns, whether or not it failed.
func newRootCmd(w *wiring) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dmf",
		Short: "Dear My Friend (dmf): talk your problems through with yourself",
		Long: "dmf is a local journaling tool. You write as the seeker, switch roles after a short " +
			"countdown and answer as the guide, the way you would answer a friend.\n\n" +
			"Run without arguments to open the interactive chat screen.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return w.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd, w, false)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default <data-dir>/config.toml)")
	flags.String("data-dir", "", "directory holding the journal, config and logs")
	flags.String("backend", "", "storage backend: toml, sqlite or memory")
	flags.String("locale", "", "interface language: zh-TW or en")
	flags.String("env-file", ".env", "dotenv file loaded before reading the environment")
	flags.BoolVarP(&w.verbose, "verbose", "v", false, "enable debug logging")
	w.bindFlag(flags.Lookup("config"), config.KeyConfigFile)
	w.bindFlag(flags.Lookup("data-dir"), config.KeyDataDir)
	w.bindFlag(flags.Lookup("backend"), config.KeyStorageBackend)
	w.bindFlag(flags.Lookup("locale"), config.KeyLocale)

	rootCmd.AddCommand(
		newVersionCmd(),
		newChatCmd(w),
		newSessionCmd(w),
		newMessageCmd(w),
		newClearCmd(w),
		newExportCmd(w),
		newRoleCmd(w),
		newTutorialCmd(w),
		newAssistCmd(w),
	)

	return rootCmd
}
