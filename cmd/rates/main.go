// Command rates fetches a year of the Treasury daily yield curve feed and
// prints the latest curve as continuously-compounded rates, plus the
// VIX-style near-term and next-term rates for the requested day counts.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/damon-houk/treasury-yield-service/internal/application/service"
	"github.com/damon-houk/treasury-yield-service/internal/domain/entity"
	"github.com/damon-houk/treasury-yield-service/internal/infrastructure/api"
	"github.com/damon-houk/treasury-yield-service/internal/infrastructure/db"
	"github.com/damon-houk/treasury-yield-service/internal/infrastructure/logger"
)

// outputDocument is the JSON shape written to stdout/file
type outputDocument struct {
	Date         string                `json:"date"`
	Year         int                   `json:"year"`
	FullRates    map[string]float64    `json:"full_rates"`
	VIXTermRates entity.TermRateResult `json:"vix_term_rates"`
}

func main() {
	near := flag.Int("near", 30, "near-term days to expiration")
	next := flag.Int("next", 60, "next-term days to expiration")
	year := flag.Int("year", time.Now().Year(), "year for treasury data")
	date := flag.String("date", "", "curve date YYYY-MM-DD (default: latest)")
	jsonOnly := flag.Bool("json-only", false, "output JSON only (no text output)")
	outputFile := flag.String("output-file", "latest_yield_curve.json", "output JSON file name")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	flag.Parse()

	level := logger.InfoLevel
	if *verbose {
		level = logger.DebugLevel
	}
	if *jsonOnly {
		level = logger.ErrorLevel
	}
	log := logger.New(os.Stderr, level)
	logger.SetDefaultLogger(log)

	if err := run(*near, *next, *year, *date, *jsonOnly, *outputFile, log); err != nil {
		if *jsonOnly {
			out, _ := json.MarshalIndent(map[string]string{"error": err.Error()}, "", "  ")
			fmt.Println(string(out))
		} else {
			log.Error("Error processing yield curve data", map[string]interface{}{
				"error": err.Error(),
			})
		}
		os.Exit(1)
	}
}

func run(near, next, year int, date string, jsonOnly bool, outputFile string, log logger.Logger) error {
	store := db.NewMemorySnapshotStore()
	feed := api.NewTreasuryFeedClient("", nil, log)
	ingest := service.NewCurveIngestService(feed, store, log)
	rates := service.NewRatesService(store, log)

	ctx := context.Background()
	if _, _, err := ingest.LoadYear(ctx, year); err != nil {
		return err
	}

	var curve *service.CurveRates
	var termRates *entity.TermRateResult
	var err error
	if date != "" {
		d, parseErr := time.Parse("2006-01-02", date)
		if parseErr != nil {
			return fmt.Errorf("invalid -date %q: %w", date, parseErr)
		}
		if curve, err = rates.GridRatesForDate(ctx, d); err != nil {
			return err
		}
		termRates, err = rates.TermRatesForDate(ctx, d, near, next)
	} else {
		if curve, err = rates.GridRates(ctx); err != nil {
			return err
		}
		termRates, err = rates.TermRates(ctx, near, next)
	}
	if err != nil {
		return err
	}

	doc := outputDocument{
		Date:         curve.Date.Format("2006-01-02"),
		Year:         year,
		FullRates:    make(map[string]float64, len(curve.Points)),
		VIXTermRates: *termRates,
	}
	for _, p := range curve.Points {
		doc.FullRates[strconv.Itoa(p.MaturityDays)] = p.Rate
	}

	if jsonOnly {
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	} else {
		printCurve(curve, termRates)
	}

	if outputFile != "" {
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(outputFile, out, 0644); err != nil {
			return fmt.Errorf("write %s: %w", outputFile, err)
		}
		if !jsonOnly {
			log.Info("Saved latest rates", map[string]interface{}{
				"file": outputFile,
			})
		}
	}

	return nil
}

func printCurve(curve *service.CurveRates, termRates *entity.TermRateResult) {
	fmt.Printf("\nCurve Date: %s\n", curve.Date.Format("2006-01-02"))
	fmt.Println(strings.Repeat("-", 40))
	for _, p := range curve.Points {
		fmt.Printf("Maturity: %5d days, r_t: %.6f\n", p.MaturityDays, p.Rate)
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("VIX-Style Term Rates (Continuously Compounded):")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Near-term rate (%d days): %.6f (%.2f%%)\n",
		termRates.NearTermDays, termRates.NearTermRate, termRates.NearTermRate*100)
	fmt.Printf("Next-term rate (%d days): %.6f (%.2f%%)\n",
		termRates.NextTermDays, termRates.NextTermRate, termRates.NextTermRate*100)
}
