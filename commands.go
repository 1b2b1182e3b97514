package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"housing-info/config"
	"housing-info/knowledge"
	"housing-info/models"
	"housing-info/services"
	"housing-info/storage"
)

// appFunc returns the application built by the root command's pre-run hook.
type appFunc func() *application

func newKnowledgeBase(cfg *config.Config) *storage.KnowledgeBaseWriter {
	return storage.NewKnowledgeBaseWriter(cfg.KnowledgeBasePath)
}

func writeHousesCSV(path string, houses []models.House) error {
	w, err := storage.NewCSVWriter(path, false)
	if err != nil {
		return err
	}
	var sink storage.HouseWriter = w
	if err := sink.Write(houses); err != nil {
		_ = sink.Close()
		return err
	}
	return sink.Close()
}

func writeMarkupCSV(path string, houses []models.MarkedUpHouse) error {
	w, err := storage.NewCSVWriter(path, true)
	if err != nil {
		return err
	}
	if err := w.WriteMarkedUp(houses); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func newDisplayCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "display",
		Short: "Display all housing information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			houses, err := a.catalog.All(cmd.Context())
			if err != nil {
				return err
			}
			a.renderer.Listing(houses)
			return nil
		},
	}
}

func newSearchCmd(app appFunc) *cobra.Command {
	var minPrice, maxPrice, csvPath string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search houses by price range",
		Long: `Lists the houses whose price lies within [min, max], bounds included.
Reversed bounds are swapped.

Example:
  housing search --min 100000 --max 500000 --csv out/search.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			res, err := a.catalog.Search(cmd.Context(), minPrice, maxPrice)
			if err != nil {
				return err
			}
			a.renderer.SearchResult(res)

			if csvPath != "" {
				if err := writeHousesCSV(csvPath, res.Houses); err != nil {
					return err
				}
				a.logger.Info("[search] wrote %d rows to %s", len(res.Houses), csvPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&minPrice, "min", "", "Minimum price (required)")
	cmd.Flags().StringVar(&maxPrice, "max", "", "Maximum price (required)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Also write matching houses to this CSV file")
	_ = cmd.MarkFlagRequired("min")
	_ = cmd.MarkFlagRequired("max")
	return cmd
}

func newCountCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Count houses by furnishing status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			report, err := a.catalog.CountFurnishing(cmd.Context())
			if err != nil {
				return err
			}
			a.renderer.Furnishing(report)
			return nil
		},
	}
}

func newSortCmd(app appFunc) *cobra.Command {
	var by, csvPath string

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Sort houses ascending by one attribute",
		Long: `Sorts ascending by price, parking, area, bedrooms or bathrooms.
Houses with equal keys keep their file order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			key, err := services.ParseSortKey(by)
			if err != nil {
				return err
			}
			houses, err := a.catalog.Sort(cmd.Context(), key)
			if err != nil {
				return err
			}
			a.renderer.Sorted(key, houses)

			if csvPath != "" {
				if err := writeHousesCSV(csvPath, houses); err != nil {
					return err
				}
				a.logger.Info("[sort] wrote %d rows to %s", len(houses), csvPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&by, "by", string(services.SortByPrice), "Sort key: price, parking, area, bedrooms or bathrooms")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Also write the sorted houses to this CSV file")
	return cmd
}

func newMarkupCmd(app appFunc) *cobra.Command {
	var (
		percent float64
		csvPath string
	)

	cmd := &cobra.Command{
		Use:   "markup",
		Short: "Show prices with a percentage markup applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if !cmd.Flags().Changed("percent") {
				percent = a.cfg.MarkupPercent
			}
			res, err := a.catalog.Markup(cmd.Context(), percent)
			if err != nil {
				return err
			}
			a.renderer.Markup(res)

			if csvPath != "" {
				if err := writeMarkupCSV(csvPath, res.Houses); err != nil {
					return err
				}
				a.logger.Info("[markup] wrote %d rows to %s", len(res.Houses), csvPath)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&percent, "percent", 10, "Markup percentage (defaults to MARKUP_PERCENT)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Also write marked-up houses to this CSV file")
	return cmd
}

func newExportCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Generate the Prolog knowledge base",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			res, err := a.catalog.ExportKnowledgeBase(cmd.Context(), newKnowledgeBase(a.cfg), a.kbOptions())
			if err != nil {
				return err
			}
			a.renderer.Export(res)
			return nil
		},
	}
}

func newQueryCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "query [affordable|luxury|preferred]",
		Short: "Run one of the knowledge-base queries",
		Long: `Evaluates a knowledge-base rule over the dataset and lists the houses it
derives.

  affordable  price below KB_PRICE_THRESHOLD
  luxury      price above KB_PRICE_THRESHOLD
  preferred   located in a preferred area`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(knowledge.QueryAffordable), string(knowledge.QueryLuxury), string(knowledge.QueryPreferred)},
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			q, err := knowledge.ParseQuery(args[0])
			if err != nil {
				return err
			}
			matches, err := a.catalog.Query(cmd.Context(), q, a.kbOptions())
			if err != nil {
				return err
			}
			a.renderer.QueryMatches(q, matches)
			return nil
		},
	}
}

func newStatsCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarise prices, sizes and bedroom counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			report, err := a.catalog.Insights(cmd.Context())
			if err != nil {
				return err
			}
			a.renderer.Insights(report)
			return nil
		},
	}
}

func newSyncDBCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "sync-db",
		Short: "Replace the PostgreSQL houses table with the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if a.cfg.Postgres.DSN == "" {
				return fmt.Errorf("sync-db: POSTGRES_DSN is not configured")
			}

			houses, err := a.catalog.All(cmd.Context())
			if err != nil {
				return err
			}

			pg, err := storage.NewPostgresWriter(cmd.Context(), a.cfg.Postgres.DSN, a.cfg.Postgres.MaxRetries, a.logger)
			if err != nil {
				return err
			}
			defer pg.Close()

			var mirror storage.HouseMirror = pg
			n, err := mirror.Replace(cmd.Context(), houses)
			if err != nil {
				return err
			}
			a.logger.Info("[sync-db] replaced houses table with %d rows", n)

			stored, err := pg.FetchAll(cmd.Context())
			if err != nil {
				return err
			}
			if len(stored) != n {
				a.logger.Warn("[sync-db] wrote %d rows but read back %d", n, len(stored))
			}
			a.renderer.Printf("Synced %d houses to PostgreSQL.\n", len(stored))
			return nil
		},
	}
}
