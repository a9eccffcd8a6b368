// Command speccheck generates the Ed25519 edge-case vector set and scores
// verifier backends against it.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/eddsa-speccheck/internal/backends"
	"github.com/mahdiidarabi/eddsa-speccheck/internal/config"
	"github.com/mahdiidarabi/eddsa-speccheck/internal/report"
	"github.com/mahdiidarabi/eddsa-speccheck/pkg/speccheck"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type cliOptions struct {
	configPath string
	outputDir  string
	verbosity  string
	timeout    string
	workers    int
	backendSel []string
	vectorFile string
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "speccheck",
		Short:         "Ed25519 verification edge-case vectors and compliance matrix",
		Long:          "speccheck builds a fixed set of twelve Ed25519 signatures that separate\ncofactored from cofactorless verification, and scores verifier backends\nagainst them.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML run configuration")
	root.PersistentFlags().StringVarP(&opts.verbosity, "verbosity", "v", "", "quiet, normal or debug")

	root.AddCommand(newGenerateCmd(opts))
	root.AddCommand(newCheckCmd(opts))
	return root
}

// resolve merges the config file with the flags that were explicitly set.
func (o *cliOptions) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("verbosity") {
		cfg.Verbosity = o.verbosity
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputDir = o.outputDir
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = o.timeout
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = o.workers
	}
	if cmd.Flags().Changed("backends") {
		cfg.Backends = o.backendSel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	configureLogging(cfg.Verbosity)
	return cfg, nil
}

func configureLogging(verbosity string) {
	logrus.SetOutput(os.Stderr)
	switch verbosity {
	case "quiet":
		logrus.SetLevel(logrus.ErrorLevel)
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}

func newGenerateCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build the vector set and write cases.json and cases.txt",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			return runGenerate(cfg)
		},
	}
	cmd.Flags().StringVarP(&opts.outputDir, "output", "o", ".", "directory to write vector files to")
	return cmd
}

func runGenerate(cfg *config.Config) error {
	vectors, err := speccheck.BuildVectors()
	if err != nil {
		return fmt.Errorf("build vectors: %w", err)
	}
	logrus.WithField("count", len(vectors)).Info("vector set built")

	if cfg.Verbosity == "debug" {
		for i := range vectors {
			fmt.Println(vectors[i].DescribeVector())
		}
		if err := report.WriteConditionTable(os.Stdout, vectors); err != nil {
			return err
		}
		spew.Fdump(os.Stderr, vectors[0].Wire())
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := writeFile(filepath.Join(cfg.OutputDir, "cases.json"), func(f *os.File) error {
		return speccheck.WriteVectorsJSON(f, vectors)
	}); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(cfg.OutputDir, "cases.txt"), func(f *os.File) error {
		return speccheck.WriteVectorsText(f, vectors)
	}); err != nil {
		return err
	}
	logrus.WithField("dir", cfg.OutputDir).Info("wrote cases.json and cases.txt")
	return nil
}

func writeFile(path string, fill func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fill(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func newCheckCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the compliance harness and print the backend matrix",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			return runCheck(cmd.Context(), cfg, opts.vectorFile)
		},
	}
	cmd.Flags().StringVar(&opts.vectorFile, "vectors", "", "read vectors from a cases.json file instead of regenerating")
	cmd.Flags().StringVar(&opts.timeout, "timeout", "", "per-backend-call budget, e.g. 5s")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "harness parallelism (0 = one per CPU)")
	cmd.Flags().StringSliceVar(&opts.backendSel, "backends", nil, "backend names to run (default all)")
	return cmd
}

func runCheck(ctx context.Context, cfg *config.Config, vectorFile string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	vectors, err := speccheck.BuildVectors()
	if err != nil {
		return fmt.Errorf("build vectors: %w", err)
	}

	wires := speccheck.Wires(vectors)
	if vectorFile != "" {
		f, err := os.Open(vectorFile)
		if err != nil {
			return fmt.Errorf("open vectors: %w", err)
		}
		wires, err = speccheck.LoadVectorsJSON(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("load vectors: %w", err)
		}
		if len(wires) != len(vectors) {
			return fmt.Errorf("vector file has %d entries, expected %d", len(wires), len(vectors))
		}
	}

	selected := backends.Select(cfg.Backends)
	if len(selected) == 0 {
		return fmt.Errorf("no backends matched %v", cfg.Backends)
	}

	timeout, err := cfg.CallTimeout()
	if err != nil {
		return err
	}
	harness := speccheck.NewHarness().
		WithTimeout(timeout).
		WithWorkers(cfg.Workers).
		WithLogger(logrus.StandardLogger())

	matrix, err := harness.RunAll(ctx, wires, selected)
	if err != nil {
		return fmt.Errorf("run harness: %w", err)
	}
	return report.WriteTable(os.Stdout, matrix, vectors)
}
