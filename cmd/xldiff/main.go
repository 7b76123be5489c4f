// Package main provides the CLI entry point for xldiff.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/javajack/xldiff"
)

var cfgFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "xldiff",
		Short: "Compare two Excel workbooks and report the differences",
		Long: `xldiff compares a sample workbook against a generated one, sheet by
sheet, and writes a navigable xlsx report of value and formatting
mismatches plus a summary index.`,
		RunE: run,
	}

	flags := rootCmd.Flags()
	flags.String("sample", "", "Path to the sample workbook (.xlsx)")
	flags.String("target", "", "Path to the generated workbook (.xlsx)")
	flags.String("out", "comparison_report.xlsx", "Path to the output report (.xlsx)")
	flags.StringSlice("ignored-colors", nil, "Fill color tokens to ignore (e.g. FF00FF00)")
	flags.StringSlice("include-ranges", nil, "Cell ranges to force-include (e.g. A1:B5)")
	flags.StringSlice("ignored-ranges", nil, "Cell ranges to ignore (e.g. E1:F10)")
	flags.StringSlice("ignored-columns", nil, "Column names to ignore (reserved)")
	flags.String("ignore-expr", "", "Boolean expression; matching cells are routed to the ignored bucket")
	flags.BoolP("verbose", "v", false, "Enable debug logging")
	flags.StringVar(&cfgFile, "config", "", "Config file (default: ./xldiff.yaml)")

	for _, name := range []string{
		"sample", "target", "out", "ignored-colors", "include-ranges",
		"ignored-ranges", "ignored-columns", "ignore-expr", "verbose",
	} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %q: %w", cfgFile, err)
		}
	} else {
		viper.SetConfigName("xldiff")
		viper.AddConfigPath(".")
		_ = viper.ReadInConfig() // optional
	}

	log := logrus.New()
	if viper.GetBool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	}

	samplePath := viper.GetString("sample")
	targetPath := viper.GetString("target")
	if samplePath == "" || targetPath == "" {
		return fmt.Errorf("both --sample and --target are required")
	}
	for _, path := range []string{samplePath, targetPath} {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("input workbook not found: %s", path)
		}
	}

	sample, err := xldiff.OpenGrid(samplePath)
	if err != nil {
		return err
	}
	defer sample.Close()

	target, err := xldiff.OpenGrid(targetPath)
	if err != nil {
		return err
	}
	defer target.Close()

	cfg := xldiff.IgnoreConfig{
		IgnoredColors:      viper.GetStringSlice("ignored-colors"),
		IgnoredColumns:     viper.GetStringSlice("ignored-columns"),
		ForceIncludeRanges: viper.GetStringSlice("include-ranges"),
		IgnoredRanges:      viper.GetStringSlice("ignored-ranges"),
		IgnoreExpr:         viper.GetString("ignore-expr"),
	}

	engine := xldiff.NewEngine(sample, target, cfg, xldiff.WithLogger(log))
	report, err := engine.Run()
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	outPath := viper.GetString("out")
	if err := report.WriteWorkbook(outPath); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	log.Infof("comparison report saved to %s", outPath)

	return report.WriteSummary(os.Stdout)
}
