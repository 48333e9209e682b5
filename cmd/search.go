package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/santo-labs/santoscore/internal/model"
	"github.com/santo-labs/santoscore/internal/score"
	"github.com/santo-labs/santoscore/internal/search"
	"github.com/santo-labs/santoscore/pkg/xai"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find and score local contractors",
	Long: `Search the web for local contractors offering a service, validate their
contact details, and rank them by review quality.

Examples:
  # Full search with reviews and quality scoring
  search --service "roof repair" --location "Austin, TX"

  # Fast search, basic info only
  search --service plumbing --location 78701 --skip-reviews

  # Export to CSV
  search --service "hvac repair" --format csv --output contractors.csv`,
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.String("service", "", "service needed (required)")
	f.String("location", "", "city, state, or ZIP code")
	f.Int("max-results", 0, "maximum number of contractors (0=use config default)")
	f.Bool("skip-reviews", false, "skip review collection")
	f.String("output", "", "output file path (default: stdout)")
	f.String("format", "table", "output format: table or csv")

	searchCmd.MarkFlagRequired("service")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("search"); err != nil {
		return err
	}

	service, _ := cmd.Flags().GetString("service")
	location, _ := cmd.Flags().GetString("location")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	skipReviews, _ := cmd.Flags().GetBool("skip-reviews")
	outputPath, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")

	if format != "table" && format != "csv" {
		return eris.Errorf("search: --format must be table or csv (got %q)", format)
	}
	if maxResults <= 0 {
		maxResults = cfg.Search.MaxResults
	}
	if !skipReviews {
		skipReviews = cfg.Search.SkipReviews
	}

	client := xai.NewClient(cfg.XAI.Key, xai.WithBaseURL(cfg.XAI.BaseURL))
	scorer := score.NewScorer(client, cfg.XAI.ScoringModel)
	persona := search.LoadPersona(cfg.Search.PersonaPath)
	searcher := search.New(client, scorer, persona, cfg.XAI.SearchModel)

	progress := func(stage model.Stage, note string) {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", stage, note)
	}

	contractors := searcher.Search(ctx, search.Request{
		ServiceType: service,
		Location:    location,
		MaxResults:  maxResults,
		SkipReviews: skipReviews,
	}, progress)

	zap.L().Info("search finished",
		zap.String("service", service),
		zap.Int("found", len(contractors)),
	)

	if len(contractors) == 0 {
		fmt.Println("No contractors found.")
		return nil
	}

	return outputContractors(contractors, format, outputPath)
}

func outputContractors(contractors []model.Contractor, format, outputPath string) error {
	var w *os.File
	if outputPath != "" {
		var err error
		w, err = os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "search: create output file %s", outputPath)
		}
		defer w.Close() //nolint:errcheck
	} else {
		w = os.Stdout
	}

	switch format {
	case "csv":
		return writeContractorCSV(w, contractors)
	case "table":
		return writeContractorTable(w, contractors)
	default:
		return eris.Errorf("search: unsupported format %q", format)
	}
}

func writeContractorCSV(w *os.File, contractors []model.Contractor) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"name", "phone", "email", "website", "address", "rating", "quality_score", "reviews"}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "search: write CSV header")
	}

	for _, c := range contractors {
		row := []string{
			c.Name,
			c.Phone,
			c.Email,
			c.Website,
			c.Address,
			c.Rating,
			fmt.Sprintf("%.1f", c.QualityScore),
			fmt.Sprintf("%d", len(c.Reviews)),
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "search: write CSV row")
		}
	}
	return nil
}

func writeContractorTable(w *os.File, contractors []model.Contractor) error {
	header := fmt.Sprintf("%-5s %-40s %-16s %-30s %7s %7s\n",
		"Rank", "Name", "Phone", "Website", "Score", "Revs")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "search: write table header")
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 110)); err != nil {
		return eris.Wrap(err, "search: write table separator")
	}

	for i, c := range contractors {
		name := c.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		website := c.Website
		if len(website) > 30 {
			website = website[:27] + "..."
		}
		line := fmt.Sprintf("%-5d %-40s %-16s %-30s %7.1f %7d\n",
			i+1, name, c.Phone, website, c.QualityScore, len(c.Reviews))
		if _, err := fmt.Fprint(w, line); err != nil {
			return eris.Wrap(err, "search: write table row")
		}
	}

	for i, c := range contractors {
		if len(c.Reviews) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%d. %s — reviews:\n", i+1, c.Name)
		for _, r := range c.Reviews {
			fmt.Fprintf(w, "   %s (%s): %s\n", r.ReviewerName, r.Rating, r.ReviewText)
		}
	}
	return nil
}
