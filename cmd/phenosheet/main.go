// Package main provides the phenosheet CLI: download an HPO release, parse
// a workbook into phenopackets, or audit a workbook's sheets.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/phenokit/phenosheet/pkg/phenosheet"
	"github.com/phenokit/phenosheet/pkg/phenosheet/audit"
	"github.com/phenokit/phenosheet/pkg/phenosheet/header"
	"github.com/phenokit/phenosheet/pkg/phenosheet/models"
	"github.com/phenokit/phenosheet/pkg/phenosheet/ontology"
	"github.com/phenokit/phenosheet/pkg/phenosheet/output"
	"github.com/phenokit/phenosheet/pkg/phenosheet/parser"
)

var (
	verbose bool

	downloadDir     string
	downloadVersion string

	excelPath      string
	hpoPath        string
	synonymsPath   string
	outDir         string
	pretty         bool
	strictVariants bool

	auditJSON bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "phenosheet",
		Short: "Convert genotype/phenotype workbooks into phenopackets",
		Long: `phenosheet classifies workbook sheets as genotype or phenotype data,
validates rows against an HPO release, and writes one phenopacket per
patient.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download an HPO JSON release",
		RunE:  runDownload,
	}
	downloadCmd.Flags().StringVarP(&downloadDir, "data-path", "d", "data", "Directory to save hp.json into")
	downloadCmd.Flags().StringVarP(&downloadVersion, "hpo-version", "v", "", "Exact HPO release tag (default: latest)")

	parseCmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a workbook and write phenopackets",
		RunE:  runParse,
	}
	parseCmd.Flags().StringVarP(&excelPath, "excel-path", "e", "", "Path to the Excel workbook")
	parseCmd.MarkFlagRequired("excel-path")
	parseCmd.Flags().StringVar(&hpoPath, "hpo", "data/hp.json", "Path to an HPO JSON file")
	parseCmd.Flags().StringVar(&synonymsPath, "synonyms", "", "YAML file with extra header synonyms")
	parseCmd.Flags().StringVarP(&outDir, "output", "o", "phenopacket_from_excel", "Base output directory")
	parseCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	parseCmd.Flags().BoolVar(&strictVariants, "strict-variants", false, "Treat raw/HGVS mismatches as errors")

	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit sheet headers and classification without row validation",
		RunE:  runAudit,
	}
	auditCmd.Flags().StringVarP(&excelPath, "excel-path", "e", "", "Path to the Excel workbook")
	auditCmd.MarkFlagRequired("excel-path")
	auditCmd.Flags().StringVar(&synonymsPath, "synonyms", "", "YAML file with extra header synonyms")
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "Emit the report as JSON")

	rootCmd.AddCommand(downloadCmd, parseCmd, auditCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

func runDownload(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := context.Background()
	d := ontology.NewDownloader()
	tag, err := d.ResolveTag(ctx, downloadVersion)
	if err != nil {
		return err
	}
	logger.Info("downloading HPO release", zap.String("tag", tag))

	path, err := d.Download(ctx, tag, downloadDir)
	if err != nil {
		return err
	}
	fmt.Printf("Saved HPO JSON to %s\n", path)
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	index, err := ontology.LoadJSON(hpoPath)
	if err != nil {
		return fmt.Errorf("loading ontology: %w", err)
	}
	logger.Info("loaded ontology", zap.Int("terms", index.Len()), zap.String("version", index.Version()))

	wb, err := parser.ReadWorkbook(excelPath)
	if err != nil {
		return fmt.Errorf("opening workbook: %w", err)
	}

	now := time.Now().UTC()
	opts := phenosheet.DefaultOptions()
	opts.StrictVariants = strictVariants
	opts.Logger = logger
	opts.Now = func() time.Time { return now }
	if synonymsPath != "" {
		syn, err := header.LoadSynonyms(synonymsPath)
		if err != nil {
			return err
		}
		opts.Synonyms = syn
	}

	res, err := phenosheet.Run(wb, index, opts)
	if err != nil {
		return err
	}
	if res.UsableSheets() == 0 {
		return phenosheet.ErrNoUsableSheets
	}

	reportDiagnostics(res)

	merged := phenosheet.MergeBySubject(res.Packets, index, opts)
	dir := output.OutputDir(outDir, now)
	if err := output.WritePackets(dir, merged, pretty); err != nil {
		return fmt.Errorf("writing phenopackets: %w", err)
	}

	fmt.Printf("Wrote %d phenopacket files to %s\n", len(merged), dir)
	fmt.Printf("Processed %d rows, %d admissible\n", len(res.Records), len(res.Packets))
	return nil
}

// reportDiagnostics prints sheet- and row-level findings. Diagnostics never
// change the exit status.
func reportDiagnostics(res *phenosheet.Result) {
	for _, si := range res.SheetIssues {
		fmt.Printf("- [%s] sheet %q: %s\n", si.Severity, si.SheetName, si.Reason)
	}
	for _, rec := range res.Records {
		for _, issue := range rec.Issues {
			fmt.Printf("- [%s] sheet %q row %d, %s=%q: %s\n",
				issue.Severity, rec.SheetName, rec.Row, issue.Field, issue.RawValue, issue.Reason)
		}
	}
}

func runAudit(cmd *cobra.Command, args []string) error {
	wb, err := parser.ReadWorkbook(excelPath)
	if err != nil {
		return fmt.Errorf("opening workbook: %w", err)
	}

	var overlay map[string]string
	if synonymsPath != "" {
		if overlay, err = header.LoadSynonyms(synonymsPath); err != nil {
			return err
		}
	}

	report := audit.Run(wb, header.NewNormalizer(overlay))
	if auditJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	} else if err := report.WriteTable(os.Stdout); err != nil {
		return err
	}

	// a workbook where nothing classifies is still an audit success, but
	// the parse path would fail; surface that
	usable := 0
	for _, s := range report.Sheets {
		if s.Classification.Category != models.CategoryUnknown {
			usable++
		}
	}
	if usable == 0 {
		fmt.Fprintln(os.Stderr, "warning: no sheet classified as genotype or phenotype")
	}
	return nil
}
