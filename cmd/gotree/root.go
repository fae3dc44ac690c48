package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"gotree/internal/config"
	"gotree/internal/log"
	"gotree/internal/tree"
	"gotree/internal/watch"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// flags holds everything parsed from the command line.
type flags struct {
	cfgFile  string
	all      bool
	dirsOnly bool
	watch    bool
	debug    bool
}

// addDisplayFlags registers the flags that map onto render.Options.
func addDisplayFlags(fs *pflag.FlagSet, f *flags) {
	fs.BoolVarP(&f.all, "all", "a", false, "List entries whose names start with a dot")
	fs.BoolVarP(&f.dirsOnly, "dirs-only", "d", false, "List directories only")
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "gotree [directory]",
		Short: "List the contents of a directory as a tree",
		Long: `gotree prints every file and directory below a root as an indented
tree, followed by a count of the directories and files it listed.

Entries whose name, or any parent's name, starts with a dot are hidden
unless --all is given.`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(cmd, args, f)
		},
	}
	cmd.SilenceErrors = true
	cmd.SetVersionTemplate("gotree v{{.Version}}\n")

	addDisplayFlags(cmd.Flags(), f)
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "Re-render the tree whenever it changes")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "Log debug information to stderr")
	cmd.PersistentFlags().StringVar(&f.cfgFile, "config", "", "config file (default is $HOME/.config/gotree/config.yaml)")

	return cmd
}

func run(cmd *cobra.Command, args []string, f *flags) error {
	cfg := loadConfig(f.cfgFile)
	configureLogging(cmd.ErrOrStderr(), cfg, f.debug)

	if cmd.Flags().Changed("all") {
		cfg.Display.ShowHidden = f.all
	}
	if cmd.Flags().Changed("dirs-only") {
		cfg.Display.DirectoriesOnly = f.dirsOnly
	}

	root := cfg.Directories.Default
	if len(args) > 0 {
		root = args[0]
	}

	engine := tree.NewWithConfig(cfg)
	out, err := engine.WalkAndRender(root)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)

	if !f.watch {
		return nil
	}
	return watchTree(cmd, engine, root, cfg)
}

// loadConfig reads the configuration, falling back to defaults when it
// cannot be used.
func loadConfig(path string) *config.Config {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadConfigFile(path)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		log.LogError(err, "Could not load config, using default settings")
		return config.New()
	}
	return cfg
}

func configureLogging(w io.Writer, cfg *config.Config, debug bool) {
	opts := []log.Option{log.WithOutput(w)}
	if cfg.Logging.JSON {
		opts = append(opts, log.WithJSON())
	}
	if cfg.Logging.File != "" {
		opts = append(opts, log.WithFile(cfg.Logging.File))
	}
	log.Configure(opts...)
	log.SetDebug(debug || cfg.Logging.Debug)
}

// watchTree re-renders root after every burst of changes until the command
// context is cancelled or the process is interrupted.
func watchTree(cmd *cobra.Command, engine *tree.Engine, root string, cfg *config.Config) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New()
	if err != nil {
		return err
	}
	defer w.Stop()
	if err := w.AddTree(root); err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}

	logger := log.LogWithFields(log.F("root", root), log.F("show_hidden", engine.Options().ShowHidden))
	logger.Info("Watching for changes, press Ctrl+C to stop")

	return w.Run(ctx, cfg.Debounce(), func(changes []watch.Change) {
		logger.Debugf("re-rendering after %d changes", len(changes))
		out, err := engine.WalkAndRender(root)
		if err != nil {
			log.LogError(err, "Cannot render tree")
			return
		}
		fmt.Fprint(cmd.OutOrStdout(), "\n"+out)
	})
}
