// Command seqdemo demonstrates lazy sequences by applying a list of
// operations to an initial sequence and printing the sequence after each
// step.
//
// Operations are given as colon-separated tokens:
//
//	insert:POS:V1,V2,...   add:L:R:DELTA   assign:L:R:VALUE
//	reverse:L:R            erase:L:R       sum:L:R        get:POS
//
// Ranges are half-open and 0-based.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string
	rootCmd := &cobra.Command{
		Use:   "seqdemo",
		Short: "Apply range operations to a lazy sequence",
		Long: `seqdemo applies positional edits and range updates to a sequence of
integers held in an implicit-key treap.

Commands:
  scenario  run the reference scenario on [1 2 3 4 5]
  run       apply operations given as arguments
  dot       print the final tree in Graphviz DOT format`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (yaml, json or toml)")
	flags.Uint64("seed", defaultSeed, "seed for node priorities")
	flags.String("color", defaultColor, "colored output: auto, always or never")
	flags.Bool("table", false, "render steps as a table")
	flags.Bool("debug", false, "check tree invariants after every operation")
	flags.String("trace", defaultTrace, "trace level: error, info or debug")
	flags.IntSlice("initial", defaultInitial, "initial sequence")

	rootCmd.AddCommand(scenarioCmd(&configPath))
	rootCmd.AddCommand(runCmd(&configPath))
	rootCmd.AddCommand(dotCmd(&configPath))
	return rootCmd
}

func scenarioCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "scenario",
		Short: "Run the reference scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, *configPath)
			if err != nil {
				return err
			}
			return runSteps(cmd, cfg, scenarioOps)
		},
	}
}

func runCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run OP...",
		Short: "Apply operations to the initial sequence",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *configPath)
			if err != nil {
				return err
			}
			return runSteps(cmd, cfg, args)
		},
	}
}

func dotCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dot [OP...]",
		Short: "Print the tree after all operations in Graphviz DOT format",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *configPath)
			if err != nil {
				return err
			}
			ops, err := parseOps(args)
			if err != nil {
				return err
			}
			seq, err := cfg.newSequence()
			if err != nil {
				return err
			}
			for _, op := range ops {
				if _, err := op.apply(seq); err != nil {
					return fmt.Errorf("%s: %w", op, err)
				}
			}
			return seq.WriteDot(cmd.OutOrStdout())
		},
	}
}

func runSteps(cmd *cobra.Command, cfg *Config, args []string) error {
	ops, err := parseOps(args)
	if err != nil {
		return err
	}
	seq, err := cfg.newSequence()
	if err != nil {
		return err
	}
	results := execute(seq, ops)
	out := cmd.OutOrStdout()
	setupConsole(cfg, out)
	if cfg.Table {
		renderTable(out, results)
	} else {
		renderText(out, results, terminalWidth(out))
	}
	for _, res := range results {
		if res.err != nil {
			return fmt.Errorf("step %d failed", res.step)
		}
	}
	return nil
}
