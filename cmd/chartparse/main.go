// Package main provides the CLI entry point for chartparse.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/chartparse/internal/core"
	"github.com/JonMunkholm/chartparse/internal/logging"
	"github.com/spf13/cobra"
)

type options struct {
	text       string
	hasText    bool
	label      string
	values     []string
	pretty     bool
	outputPath string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "chartparse [file]",
		Short: "Turn a spreadsheet, JSON or CSV table into chart-ready JSON",
		Long: `chartparse reads tabular data from a .xlsx, .json or .csv file, from
--text, or from stdin, and prints labels, datasets and raw records as JSON.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.hasText = cmd.Flags().Changed("text")
			err := run(cmd, args, opts)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), userError(err))
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.text, "text", "t", "", "Parse this JSON or CSV text instead of a file")
	cmd.Flags().StringVarP(&opts.label, "label", "l", "", "Column used for chart labels")
	cmd.Flags().StringSliceVar(&opts.values, "values", nil, "Numeric columns to chart, in order (comma separated)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "error", "Log level: debug, info, warn, error")

	return cmd
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	// Logs go to stderr so stdout only carries the bundle
	logger := logging.New(cmd.ErrOrStderr(), opts.logLevel, "text")
	slog.SetDefault(logger)

	in, err := readInput(cmd, args, opts)
	if err != nil {
		return err
	}

	svc := core.NewService(core.DefaultRegistry(), nil)
	bundle, err := svc.ParseWithOptions(cmd.Context(), in, core.ProjectOptions{
		LabelColumn:  opts.label,
		ValueColumns: opts.values,
	})
	if err != nil {
		logger.Debug("parse failed", "kind", core.KindOf(err).String(), "error", err)
		return err
	}

	var data []byte
	if opts.pretty {
		data, err = json.MarshalIndent(bundle, "", "  ")
	} else {
		data, err = json.Marshal(bundle)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	data = append(data, '\n')

	if opts.outputPath != "" {
		if err := os.WriteFile(opts.outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		logger.Info("bundle written", "path", opts.outputPath, "datasets", len(bundle.Datasets))
		return nil
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// readInput picks the file argument, then --text, then stdin.
func readInput(cmd *cobra.Command, args []string, opts *options) (core.RawInput, error) {
	if len(args) == 1 {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return core.RawInput{}, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return core.FileInput(filepath.Base(path), data), nil
	}

	if opts.hasText {
		return core.TextInput(opts.text), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return core.RawInput{}, fmt.Errorf("failed to read stdin: %w", err)
	}
	return core.TextInput(string(data)), nil
}

// userError renders pipeline errors with their support code and passes
// other errors through.
func userError(err error) string {
	if core.IsUserFacing(err) {
		return "error: " + core.FormatUserError(err)
	}
	return "error: " + err.Error()
}
