// Package main provides the CLI entry point for simaquote.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simaquote/simaquote-go/pkg/sima"
	"github.com/simaquote/simaquote-go/pkg/sima/views"
)

var (
	inputDir   string
	scrapedCSV string
	outputPath string
	workers    int
	viewsDir   string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "simaquote",
		Short: "ETL for SIMA daily agricultural price quotations",
		Long: `simaquote processes the SIMA (Paraná) daily quotation spreadsheet
archive into one consolidated, deduplicated price table, and generates the
aggregated JSON views consumed by the dashboard and forecast models.`,
	}

	rootCmd.PersistentFlags().StringVar(&outputPath, "output", "data/processed/consolidated.csv", "Canonical table path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Rebuild the consolidated table from the full archive",
		Args:  cobra.NoArgs,
		RunE:  runFull,
	}
	runCmd.Flags().StringVar(&inputDir, "input", "data/extracted", "Directory with the spreadsheet archive")
	runCmd.Flags().StringVar(&scrapedCSV, "scraped", "", "Optional scraped record batch (CSV)")
	runCmd.Flags().IntVar(&workers, "workers", 4, "Concurrent file extractions")

	updateCmd := &cobra.Command{
		Use:   "update [file...]",
		Short: "Process new files and append to the existing table",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runUpdate,
	}
	updateCmd.Flags().IntVar(&workers, "workers", 4, "Concurrent file extractions")

	viewsCmd := &cobra.Command{
		Use:   "views",
		Short: "Generate dashboard JSON views from the consolidated table",
		Args:  cobra.NoArgs,
		RunE:  runViews,
	}
	viewsCmd.Flags().StringVar(&viewsDir, "dir", "data/json", "Output directory for view files")

	rootCmd.AddCommand(runCmd, updateCmd, viewsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func pipelineOptions() sima.Options {
	opts := sima.DefaultOptions()
	opts.InputDir = inputDir
	opts.ScrapedCSV = scrapedCSV
	opts.OutputPath = outputPath
	opts.Workers = workers
	return opts
}

func runFull(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	res, err := sima.New(pipelineOptions(), log).Run()
	if err != nil {
		if errors.Is(err, sima.ErrNoRecords) {
			return fmt.Errorf("pipeline produced no records; previous table left untouched")
		}
		return err
	}

	log.Info("pipeline complete",
		zap.Int("files", res.FilesTotal),
		zap.Int("files_with_data", res.FilesWithData),
		zap.Int("files_failed", res.FilesFailed),
		zap.Int("extracted", res.Extracted),
		zap.Int("written", res.Written))
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	res, err := sima.New(pipelineOptions(), log).RunIncremental(args)
	if err != nil {
		if errors.Is(err, sima.ErrNoRecords) {
			return fmt.Errorf("no records extracted from new files")
		}
		return err
	}

	log.Info("update complete",
		zap.Int("files", res.FilesTotal),
		zap.Int("extracted", res.Extracted),
		zap.Int("written", res.Written))
	return nil
}

func runViews(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	if _, err := os.Stat(outputPath); os.IsNotExist(err) {
		return fmt.Errorf("consolidated table not found: %s", outputPath)
	}
	return views.NewGenerator(log).WriteAll(outputPath, viewsDir)
}
