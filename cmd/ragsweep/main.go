// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"cmp"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/ragsweep"
	"github.com/poiesic/ragsweep/combination"
	"github.com/poiesic/ragsweep/config"
	"github.com/poiesic/ragsweep/core"
	"github.com/poiesic/ragsweep/experiment"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "config",
		Aliases:  []string{"c"},
		Usage:    "Path to the experiment YAML file",
		Required: true,
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "ragsweep",
		Usage: "Find the field combination that retrieves best",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error); defaults to the experiment file's level",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "tables",
				Usage:  "List the tables of the configured row source",
				Action: tablesCommand,
				Flags:  []cli.Flag{configFlag()},
			},
			{
				Name:   "validate",
				Usage:  "Check an experiment file and list the combinations it would evaluate",
				Action: validateCommand,
				Flags:  []cli.Flag{configFlag()},
			},
			{
				Name:   "run",
				Usage:  "Run an experiment and export the result as JSON",
				Action: runCommand,
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the JSON result to this file instead of stdout",
					},
					&cli.StringFlag{
						Name:  "metrics-file",
						Usage: "Write Prometheus metrics in text format to this file",
					},
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "Seed for the train/test split, overriding the experiment file",
					},
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "Testing rows evaluated at once, overriding the experiment file",
					},
					&cli.StringFlag{
						Name:  "provider",
						Usage: "Embedding provider (openai, hashing), overriding the experiment file",
					},
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "Suppress progress and ranking output",
					},
				},
			},
			{
				Name:      "show",
				Usage:     "Print the ranking stored in an exported result",
				ArgsUsage: "<result.json>",
				Action:    showCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "rows",
						Usage: "Also print the N lowest scoring rows of the best combination",
					},
				},
			},
			{
				Name:   "cache",
				Usage:  "Report or purge the embedding cache",
				Action: cacheCommand,
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "purge",
						Usage: "Remove every cached vector",
					},
				},
			},
		},
	}
}

// loadConfig reads the experiment file and, unless --log-level was given,
// applies the file's log level.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if !c.IsSet("log-level") && cfg.Logging.Level != "" {
		level, err := config.ParseLogLevel(cfg.Logging.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level in config: %w", err)
		}
		configureLogger(c.App.ErrWriter, level)
	}
	return cfg, nil
}

func tablesCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	wb, err := ragsweep.Open(c.Context, cfg)
	if err != nil {
		return err
	}
	defer wb.Close()

	tables, err := wb.Tables(c.Context)
	if err != nil {
		return err
	}
	for _, t := range tables {
		fmt.Fprintln(c.App.Writer, t)
	}
	return nil
}

func validateCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid experiment: %w", err)
	}

	combos, err := combination.Generate(cfg.Experiment.CandidateFields)
	if err != nil {
		return err
	}

	out := c.App.Writer
	fmt.Fprintf(out, "Experiment: %s\n", cfg.Experiment.Name)
	fmt.Fprintf(out, "Source: %s table %s\n", cfg.Source.Driver, cfg.Source.Table)
	fmt.Fprintf(out, "Embedding: %s\n", cfg.Experiment.EmbeddingProvider)
	fmt.Fprintf(out, "Scoring: %s\n", cfg.Experiment.ScoringEngine)
	fmt.Fprintf(out, "Combinations (%d):\n", len(combos))
	for _, combo := range combos {
		fmt.Fprintf(out, "  %s\n", combo.Name)
	}
	return nil
}

func runCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	if c.IsSet("seed") {
		seed := c.Int64("seed")
		cfg.Experiment.Seed = &seed
	}
	if c.IsSet("concurrency") {
		cfg.Runner.Concurrency = c.Int("concurrency")
	}
	if c.IsSet("provider") {
		cfg.Embedding.Provider = c.String("provider")
		cfg.Experiment.EmbeddingProvider = ""
		cfg.Normalize()
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid experiment: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	wb, err := ragsweep.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer wb.Close()

	var opts []experiment.Option
	quiet := c.Bool("quiet")
	if !quiet {
		opts = append(opts, experiment.WithMonitor(experiment.NewProgressMonitor(c.App.ErrWriter)))
	}

	registry := prometheus.NewRegistry()
	metricsFile := c.String("metrics-file")
	if metricsFile != "" {
		opts = append(opts, experiment.WithMetrics(experiment.NewMetrics(registry)))
	}

	result, err := wb.Run(ctx, opts...)
	if err != nil {
		return fmt.Errorf("experiment failed: %w", err)
	}

	if output := c.String("output"); output != "" {
		if err := experiment.SaveFile(output, result); err != nil {
			return err
		}
		slog.Info("wrote result", "path", output)
	} else if err := experiment.Export(c.App.Writer, result); err != nil {
		return err
	}

	if metricsFile != "" {
		if err := prometheus.WriteToTextfile(metricsFile, registry); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	if !quiet {
		fmt.Fprintln(c.App.ErrWriter)
		printRanking(c.App.ErrWriter, result)
	}
	return nil
}

func showCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("result file is required")
	}

	result, err := experiment.LoadFile(path)
	if err != nil {
		return err
	}

	out := c.App.Writer
	fmt.Fprintf(out, "Experiment: %s (run %s, %s)\n", result.ExperimentName, result.RunID, result.ScoringEngine)
	printRanking(out, result)

	if n := c.Int("rows"); n > 0 {
		printWorstRows(out, result, n)
	}
	return nil
}

func cacheCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if cfg.Cache.Path == "" {
		return fmt.Errorf("no cache path configured")
	}

	wb, err := ragsweep.Open(c.Context, cfg)
	if err != nil {
		return err
	}
	defer wb.Close()

	if c.Bool("purge") {
		if err := wb.PurgeCache(c.Context); err != nil {
			return fmt.Errorf("failed to purge cache: %w", err)
		}
	}

	size, err := wb.CacheSize(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s: %d vectors\n", cfg.Cache.Path, size)
	return nil
}

func printRanking(w io.Writer, result *core.ExperimentResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tCOMBINATION\tSCORE\tSIMILARITY\tROWS\tSKIPPED\tTIME\tSTATUS")
	for i, res := range result.Ranked() {
		status := "ok"
		switch {
		case res.Failed:
			status = "failed: " + res.Error
		case res.Error != "":
			status = res.Error
		}
		fmt.Fprintf(tw, "%d\t%s\t%.4f\t%.4f\t%d\t%d\t%s\t%s\n",
			i+1, res.Name, res.MeanScore, res.MeanSimilarity, res.RowCount, res.SkippedRows,
			time.Duration(res.ProcessingTimeMs)*time.Millisecond, status)
	}
	tw.Flush()

	s := result.Summary
	fmt.Fprintf(w, "\nBest: %s (%.4f)  Worst: %s (%.4f)  Mean: %.4f  Total: %s\n",
		s.BestCombination, s.BestScore, s.WorstCombination, s.WorstScore, s.MeanScore,
		time.Duration(result.TotalProcessingTimeMs)*time.Millisecond)
}

func printWorstRows(w io.Writer, result *core.ExperimentResult, n int) {
	var best *core.CombinationResult
	for i := range result.Combinations {
		if result.Combinations[i].Name == result.Summary.BestCombination {
			best = &result.Combinations[i]
			break
		}
	}
	if best == nil || len(best.RowScores) == 0 {
		return
	}

	rows := make([]core.RowScore, len(best.RowScores))
	copy(rows, best.RowScores)
	slices.SortStableFunc(rows, func(a, b core.RowScore) int {
		return cmp.Compare(a.Score, b.Score)
	})

	fmt.Fprintf(w, "\nLowest scoring rows for %s:\n", best.Name)
	for _, rs := range rows[:min(n, len(rows))] {
		fmt.Fprintf(w, "  #%d score %.4f similarity %.4f\n", rs.Index, rs.Score, rs.Similarity)
		fmt.Fprintf(w, "    query:     %s\n", oneLine(rs.Query))
		fmt.Fprintf(w, "    expected:  %s\n", oneLine(rs.Expected))
		fmt.Fprintf(w, "    retrieved: %s\n", oneLine(rs.Retrieved))
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))
	level, err := config.ParseLogLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}
	configureLogger(c.App.ErrWriter, level)
	return nil
}

func configureLogger(w io.Writer, level slog.Level) {
	if w == nil {
		w = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
