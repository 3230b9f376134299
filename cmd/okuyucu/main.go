package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/JustJay7/hukuk-okuyucu/internal/batch"
	"github.com/JustJay7/hukuk-okuyucu/internal/config"
	"github.com/JustJay7/hukuk-okuyucu/internal/database"
	"github.com/JustJay7/hukuk-okuyucu/internal/export"
	"github.com/JustJay7/hukuk-okuyucu/internal/extract"
	"github.com/JustJay7/hukuk-okuyucu/internal/pdftext"
	"github.com/JustJay7/hukuk-okuyucu/internal/rules"
	"github.com/JustJay7/hukuk-okuyucu/internal/store"
	"github.com/JustJay7/hukuk-okuyucu/pkg/logger"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "okuyucu",
		Short: "Turkish court decision reader",
		Long: `okuyucu reads reasoned court decisions (gerekçeli karar) and extracts
case numbers, parties, dates, the outcome and the awarded amounts.

Configuration is read from the environment and an optional .env file,
the same way as the web server.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(explainCmd())
	rootCmd.AddCommand(recordsCmd())
	rootCmd.AddCommand(exportCmd())
	return rootCmd
}

// app holds what every command needs
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	analyzer *extract.Analyzer
	pdf      *pdftext.Extractor
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	tables, err := rules.Load(cfg.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule tables: %w", err)
	}

	analyzer, err := extract.New(tables, extract.Options{
		FocusWindow:  cfg.FocusWindow,
		AmountWindow: cfg.AmountWindow,
	})
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		log:      log,
		analyzer: analyzer,
		pdf:      pdftext.NewExtractor(log, cfg.MaxUploadSize),
	}, nil
}

// openStore opens the configured record store. The returned close func
// releases the store and, for sqlite, the database.
func (a *app) openStore(ctx context.Context) (store.RecordStore, func(), error) {
	var db *gorm.DB
	if a.cfg.StoreBackend == config.StoreSQLite {
		var err error
		db, err = database.Initialize(a.cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
	}

	s, err := store.Open(ctx, a.cfg, db, a.log)
	if err != nil {
		if db != nil {
			database.Close(db)
		}
		return nil, nil, err
	}

	return s, func() {
		if err := s.Close(); err != nil {
			a.log.Warn("Failed to close record store", "error", err)
		}
		if db != nil {
			database.Close(db)
		}
	}, nil
}

// readText returns the text of a file, through the PDF reader unless
// plain is set
func (a *app) readText(ctx context.Context, path string, plain bool) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if plain {
		return string(data), nil
	}

	doc, err := a.pdf.ExtractBytes(ctx, data)
	if err != nil {
		return "", err
	}
	if doc.FailedPages > 0 {
		a.log.Warn("Some pages could not be read", "file", path, "failed", doc.FailedPages, "pages", doc.Pages)
	}
	return doc.Text, nil
}

func (a *app) analyzeFile(ctx context.Context, path string, plain bool) (extract.Record, error) {
	text, err := a.readText(ctx, path, plain)
	if err != nil {
		return extract.Record{}, err
	}
	if err := pdftext.CheckReadable(a.analyzer.Normalize(text), a.cfg.MinTextLength); err != nil {
		return extract.Record{}, err
	}
	return a.analyzer.Analyze(filepath.Base(path), text), nil
}

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze FILE...",
		Short: "Extract records from decision files",
		Long: `Analyze one or more decision files and print the extracted records as JSON.

Example:
  okuyucu analyze karar.pdf
  okuyucu analyze --save kararlar/*.pdf
  okuyucu analyze --text karar.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			save, _ := cmd.Flags().GetBool("save")
			plain, _ := cmd.Flags().GetBool("text")
			workers, _ := cmd.Flags().GetInt("workers")
			ctx := cmd.Context()

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.log.Sync()

			var recordStore store.RecordStore
			if save {
				s, closeStore, err := a.openStore(ctx)
				if err != nil {
					return err
				}
				defer closeStore()
				recordStore = s
			}

			if workers <= 0 {
				workers = a.cfg.MaxConcurrent
			}
			results := batch.Run(ctx, args, workers, func(ctx context.Context, path string) (extract.Record, error) {
				return a.analyzeFile(ctx, path, plain)
			})

			records := make([]extract.Record, 0, len(args))
			failed := 0
			for i, result := range results {
				if result.Err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", args[i], result.Err)
					continue
				}
				if recordStore != nil {
					if err := recordStore.Append(ctx, result.Value); err != nil {
						return fmt.Errorf("failed to save %s: %w", args[i], err)
					}
				}
				records = append(records, result.Value)
			}

			if err := writeJSON(cmd.OutOrStdout(), records); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be analyzed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().Bool("save", false, "Append the records to the configured store")
	cmd.Flags().Bool("text", false, "Treat inputs as plain text instead of PDF")
	cmd.Flags().Int("workers", 0, "Files analyzed in parallel (default MAX_CONCURRENT_ANALYSES)")
	return cmd
}

func explainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain FILE",
		Short: "Show the ruling block and the rule that decided the outcome",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plain, _ := cmd.Flags().GetBool("text")

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.log.Sync()

			text, err := a.readText(cmd.Context(), args[0], plain)
			if err != nil {
				return err
			}

			window, verdict := a.analyzer.Explain(text)
			out := cmd.OutOrStdout()
			rule := verdict.Rule
			if rule == "" {
				rule = "-"
			}
			fmt.Fprintf(out, "Outcome: %s (%s)\n", verdict.Outcome.Label(), verdict.Outcome)
			fmt.Fprintf(out, "Rule:    %s\n", rule)
			fmt.Fprintf(out, "Winner:  %s\n", verdict.Winner)
			fmt.Fprintf(out, "Payment: %s\n", verdict.PaymentDirection)
			fmt.Fprintf(out, "\n--- focus window ---\n%s\n", strings.TrimSpace(window))
			return nil
		},
	}

	cmd.Flags().Bool("text", false, "Treat the input as plain text instead of PDF")
	return cmd
}

func recordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "records",
		Short: "Print all stored records as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.log.Sync()

			s, closeStore, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			records, err := s.All(cmd.Context())
			if err != nil {
				return err
			}
			if records == nil {
				records = []extract.Record{}
			}
			return writeJSON(cmd.OutOrStdout(), records)
		},
	}
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored records to CSV or Excel",
		Long: `Export every stored record.

Example:
  okuyucu export --format xlsx --out kararlar.xlsx
  okuyucu export --format csv > kararlar.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("out")

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.log.Sync()

			s, closeStore, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			records, err := s.All(cmd.Context())
			if err != nil {
				return err
			}

			var data []byte
			switch strings.ToLower(format) {
			case "csv":
				data, err = export.CSV(records)
			case "xlsx", "excel":
				if output == "" {
					return fmt.Errorf("--out is required for xlsx")
				}
				data, err = export.XLSX(records)
			default:
				return fmt.Errorf("unknown format: %s (use csv or xlsx)", format)
			}
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d records to %s\n", len(records), output)
			return nil
		},
	}

	cmd.Flags().String("format", "csv", "Output format: csv or xlsx")
	cmd.Flags().StringP("out", "o", "", "Output file (default stdout, required for xlsx)")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
