package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"housing-info/config"
	"housing-info/knowledge"
	"housing-info/services"
	"housing-info/shell"
	"housing-info/source"
	"housing-info/utils"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	dataPath   string
	verbose    bool
	noColor    bool
}

// application holds everything a command needs once flags and config are resolved.
type application struct {
	cfg      *config.Config
	logger   *utils.Logger
	catalog  *services.Catalog
	renderer *shell.Renderer
	tty      bool
}

func (a *application) kbOptions() knowledge.Options {
	return knowledge.Options{PriceThreshold: a.cfg.PriceThreshold}
}

// newApplication loads configuration and wires the catalog and renderer
// around out.
func newApplication(flags *globalFlags, out io.Writer) (*application, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.dataPath != "" {
		cfg.DataPath = flags.dataPath
	}

	logger := utils.NewLoggerWithLevel(flags.verbose || cfg.Debug())
	logger.Debug("[main] data=%s kb=%s markup=%v%% threshold=%d",
		cfg.DataPath, cfg.KnowledgeBasePath, cfg.MarkupPercent, cfg.PriceThreshold)

	tty := false
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		tty = true
		if f == os.Stdout {
			out = colorable.NewColorableStdout()
		}
	}

	loader := source.NewNDJSONFile(cfg.DataPath, logger)
	return &application{
		cfg:      cfg,
		logger:   logger,
		catalog:  services.NewCatalog(loader, logger),
		renderer: shell.NewRenderer(out, services.NewFormatter(cfg.CurrencySymbol, cfg.Locale), tty && !flags.noColor),
		tty:      tty,
	}, nil
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	var app *application

	root := &cobra.Command{
		Use:   "housing",
		Short: "Browse, search and export a housing-price dataset",
		Long: `housing reads a newline-delimited JSON dataset of houses and offers
display, price-range search, furnishing counts, sorting, price markup and a
Prolog knowledge-base export.

Run without arguments to start the interactive menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			app, err = newApplication(flags, cmd.OutOrStdout())
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				_ = app.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := shell.New(cmd.InOrStdin(), shell.Options{
				Catalog:       app.catalog,
				KnowledgeBase: newKnowledgeBase(app.cfg),
				KBOptions:     app.kbOptions(),
				MarkupPercent: app.cfg.MarkupPercent,
				Renderer:      app.renderer,
				Logger:        app.logger,
				ClearScreen:   app.tty,
			})
			return sh.Run(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "config.yaml", "YAML config file (optional)")
	root.PersistentFlags().StringVar(&flags.dataPath, "data", "", "Housing NDJSON file (overrides HOUSING_DATA_PATH)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable coloured output")

	current := func() *application { return app }
	root.AddCommand(
		newDisplayCmd(current),
		newSearchCmd(current),
		newCountCmd(current),
		newSortCmd(current),
		newMarkupCmd(current),
		newExportCmd(current),
		newQueryCmd(current),
		newStatsCmd(current),
		newSyncDBCmd(current),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger := utils.NewLogger()
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintln(os.Stderr, verr.UserMessage())
		}
		logger.Error("%v", err)
		_ = logger.Sync()
		stop()
		os.Exit(1)
	}
}
