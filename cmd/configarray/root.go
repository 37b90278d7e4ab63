package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/configarray/configarray"
)

var (
	flagConfigPath string
	flagBasePath   string
	flagVerbose    bool
	flagNoGlobal   bool

	logger *zap.Logger
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "configarray",
		Short: "Resolve per-file configuration from an ordered list of config entries",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(flagVerbose)
			if err != nil {
				return errors.Wrap(err, "constructing logger")
			}
			logger = l
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&flagConfigPath, "config", "c", "", "path to a YAML file describing config entries")
	root.PersistentFlags().StringVar(&flagBasePath, "base-path", ".", "absolute base path entries are resolved against")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&flagNoGlobal, "no-global-ignore", false, "skip loading this tool's own global ignore file")

	root.AddCommand(newResolveCmd(), newIgnoredCmd(), newExplainCmd())
	return root
}

// buildArray loads the configured entries (plus, unless disabled, this
// tool's own global ignore file) into a normalized ConfigArray.
func buildArray() (*configarray.ConfigArray, error) {
	var elements []configarray.RawConfigElement

	if flagConfigPath != "" {
		loaded, err := loadEntriesFile(flagConfigPath)
		if err != nil {
			return nil, err
		}
		elements = append(elements, loaded...)
	}

	arr := configarray.New(elements, flagBasePath, nil, 0)

	if !flagNoGlobal {
		globalEntry, err := loadGlobalIgnoreEntry()
		if err != nil {
			return nil, err
		}
		if globalEntry != nil {
			if err := arr.Push(globalEntry); err != nil {
				return nil, err
			}
		}
	}

	if err := arr.NormalizeSync(nil); err != nil {
		return nil, errors.Wrap(err, "normalizing config array")
	}
	return arr, nil
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <file>",
		Short: "Print the merged configuration for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arr, err := buildArray()
			if err != nil {
				return err
			}
			cfg, err := arr.GetConfig(args[0])
			if err != nil {
				return err
			}
			logger.Debug("resolved config", zap.String("file", args[0]), zap.Int("keys", len(cfg)))
			fmt.Fprintf(cmd.OutOrStdout(), "%v\n", cfg)
			return nil
		},
	}
}

func newIgnoredCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ignored <file>",
		Short: "Report whether a file is globally ignored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arr, err := buildArray()
			if err != nil {
				return err
			}
			ignored, err := arr.IsFileIgnored(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ignored)
			return nil
		},
	}
}

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <file>",
		Short: "Print which entries contributed to a file's configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arr, err := buildArray()
			if err != nil {
				return err
			}
			_, reasons, err := arr.GetConfigWithReason(args[0])
			if err != nil {
				return err
			}
			for _, r := range reasons {
				fmt.Fprintln(cmd.OutOrStdout(), r)
			}
			return nil
		},
	}
}

func execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}
