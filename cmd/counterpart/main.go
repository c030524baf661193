// Package main provides the CLI interface for counterpart.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sivchari/counterpart/internal/config"
	"github.com/sivchari/counterpart/internal/host"
	"github.com/sivchari/counterpart/internal/logging"
	"github.com/sivchari/counterpart/internal/report"
	"github.com/sivchari/counterpart/pkg/counterpart"
)

const version = "0.1.0"

var (
	configFile string
	verbose    bool
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "counterpart [file]",
		Short: "Jump between a file and its counterpart",
		Long: `counterpart guesses the "other" file of the file you are editing, such as
the test file of a module or the module of a test file.

Rules are tried in order: rules from the nearest .counterpart file, rules
from the configuration, then the built-in rules. Existing files win over
files that could be created in an existing directory.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.SetupLoggerWithWriter(cmd.ErrOrStderr(), verbose)
		},
		RunE: runSwitch,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .counterpart.yaml or $XDG_CONFIG_HOME/counterpart/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace rule evaluation on stderr")

	addSwitchFlags(rootCmd)

	switchCmd := &cobra.Command{
		Use:   "switch [file]",
		Short: "Resolve the counterpart of a file and open it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSwitch,
	}
	addSwitchFlags(switchCmd)

	candidatesCmd := &cobra.Command{
		Use:   "candidates [file]",
		Short: "List every counterpart candidate of a file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCandidates,
	}
	candidatesCmd.Flags().IntP("count", "n", 0, "rank of the match to highlight (default from config)")
	candidatesCmd.Flags().String("format", "", "output format (text, json, yaml)")

	rulesCmd := &cobra.Command{
		Use:   "rules [file]",
		Short: "Print the effective rules, optionally for a given file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRules,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "counterpart version %s\n", version)
		},
	}

	rootCmd.AddCommand(switchCmd, candidatesCmd, rulesCmd, versionCmd, newConfigCmd())

	return rootCmd
}

func addSwitchFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("count", "n", 0, "pick the nth best match (default from config)")
	cmd.Flags().Bool("open", false, "open the match with the configured editor instead of printing it")
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage counterpart configuration",
		Long:  "Commands for managing counterpart configuration files",
	}

	configInitCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Initialize a new counterpart configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigInit,
	}
	configInitCmd.Flags().Bool("force", false, "overwrite existing config file")
	configInitCmd.Flags().Bool("global", false, "write the user-wide config under $XDG_CONFIG_HOME")

	configValidateCmd := &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := configFile
			if len(args) > 0 {
				file = args[0]
			}

			cfg, err := config.Load(file)
			if err == nil {
				err = cfg.Validate()
			}

			if err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")

			return nil
		},
	}

	configCmd.AddCommand(configInitCmd, configValidateCmd)

	return configCmd
}

func loadEngine(cmd *cobra.Command) (*config.Config, *counterpart.Engine, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	if verbose || cfg.Verbose {
		cfg.Verbose = true
		// The config may ask for more than the -v flag did.
		logging.SetupLoggerWithWriter(cmd.ErrOrStderr(), true)
	}

	engine, err := counterpart.NewEngine(cfg, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create engine: %w", err)
	}

	return cfg, engine, nil
}

func countFlag(cmd *cobra.Command, cfg *config.Config) int {
	if n, _ := cmd.Flags().GetInt("count"); n > 0 {
		return n
	}

	return cfg.Count
}

func newOpener(cmd *cobra.Command, cfg *config.Config) (host.Opener, error) {
	open, _ := cmd.Flags().GetBool("open")
	if !open && cfg.Open.Mode != config.OpenEditor {
		return host.NewPrinter(cmd.OutOrStdout()), nil
	}

	return host.NewEditor(cfg.Open.Command)
}

func runSwitch(cmd *cobra.Command, args []string) error {
	cfg, engine, err := loadEngine(cmd)
	if err != nil {
		return err
	}

	file := ""
	if len(args) > 0 {
		file = args[0]
	}

	opener, err := newOpener(cmd, cfg)
	if err != nil {
		return err
	}

	result, err := engine.Switch(host.NewStatic(file, opener), countFlag(cmd, cfg), cfg.Verbose)
	if err != nil {
		return err
	}

	if !result.Found {
		// Nothing to switch to is a normal outcome.
		logger := logging.GetLogger("cli")
		logger.Debug().Str("file", result.File).Msg("No counterpart found")
	}

	return nil
}

func runCandidates(cmd *cobra.Command, args []string) error {
	cfg, engine, err := loadEngine(cmd)
	if err != nil {
		return err
	}

	file := ""
	if len(args) > 0 {
		file = args[0]
	}

	if file, err = host.NewStatic(file, nil).CurrentFile(); err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = cfg.Output.Format
	}

	generator, err := report.New(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	listing, err := engine.Candidates(file, countFlag(cmd, cfg), cfg.Verbose)
	if err != nil {
		return err
	}

	return generator.Generate(listing)
}

func runRules(cmd *cobra.Command, args []string) error {
	_, engine, err := loadEngine(cmd)
	if err != nil {
		return err
	}

	file := ""
	if len(args) > 0 {
		if file, err = host.NewStatic(args[0], nil).CurrentFile(); err != nil {
			return err
		}
	}

	set, rulesFile, err := engine.Rules(file)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if rulesFile != "" {
		fmt.Fprintf(out, "# project rules from %s\n", rulesFile)
	}

	for i, r := range set {
		fmt.Fprintf(out, "%3d  %s\n", i, r)
	}

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	global, _ := cmd.Flags().GetBool("global")

	filename := ".counterpart.yaml"

	switch {
	case len(args) > 0:
		filename = args[0]
	case global:
		path, err := config.GlobalPath()
		if err != nil {
			return err
		}

		filename = path
	}

	if _, err := os.Stat(filename); err == nil && !force {
		return fmt.Errorf("configuration file %s already exists (use --force to overwrite)", filename)
	}

	if err := config.Default().Save(filename); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", filename)

	return nil
}

func execute(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)

		return 1
	}

	return 0
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
