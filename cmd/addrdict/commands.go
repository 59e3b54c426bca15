package main

import (
	"fmt"
	"os"

	"github.com/bastiangx/addrdict/internal/cli"
	"github.com/bastiangx/addrdict/internal/logger"
	"github.com/bastiangx/addrdict/internal/utils"
	"github.com/bastiangx/addrdict/pkg/config"
	"github.com/bastiangx/addrdict/pkg/dictionary"
	"github.com/bastiangx/addrdict/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	configFlag string
	debugMode  bool

	appConfig  *config.Config
	configPath string
	resolver   *utils.PathResolver

	rootCmd = &cobra.Command{
		Use:   AppName,
		Short: "Address dictionary with exact and closest-key lookup",
		Long: `addrdict stores CSV records in a bitwise PATRICIA trie and answers
exact key lookups, falling back to the nearest key by edit distance.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
	queryCmd = &cobra.Command{
		Use:   "query [data.csv] [output]",
		Short: "Answer keys read from stdin, writing records to output",
		Args:  cobra.ExactArgs(2),
		RunE:  runQuery,
	}
	serveCmd = &cobra.Command{
		Use:   "serve [data.csv]",
		Short: "Serve lookups over msgpack on stdin/stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  runServe,
	}
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the active config file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if configPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "(built-in defaults)")
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), configPath)
		},
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Show current version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			showVersion()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "Toggle debug mode")

	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().Bool("no-counters", false, "Omit comparison counters from the summary lines")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup runs before every subcommand: logging first, then config.
func setup(cmd *cobra.Command, args []string) error {
	logger.Setup(debugMode)
	if cmd == versionCmd {
		return nil
	}

	var err error
	resolver, err = utils.NewPathResolver()
	if err != nil {
		log.Warnf("Failed to initialize path resolver: %v", err)
	}
	appConfig, configPath = config.LoadConfigWithPriority(configFlag, resolver)
	log.Debugf("Using config file: (%s)", configPath)
	return nil
}

func loadDictionary(path string) (*dictionary.Dictionary, error) {
	dataPath := path
	if resolver != nil {
		resolved, err := resolver.ResolveDataFile(path)
		if err != nil {
			return nil, fmt.Errorf("dataset %s: %w", path, err)
		}
		dataPath = resolved
	}

	opts := dictionary.Options{
		KeyColumn:      appConfig.Dict.KeyColumn,
		CoordColumns:   appConfig.Dict.CoordColumns,
		CoordPrecision: appConfig.Dict.CoordPrecision,
		MaxKeyLength:   appConfig.Dict.MaxKeyLength,
	}
	log.Debug("Loading dataset", "path", utils.GetAbsolutePath(dataPath), "key", opts.KeyColumn)
	return dictionary.Load(dataPath, opts)
}

func runQuery(cmd *cobra.Command, args []string) error {
	dict, err := loadDictionary(args[0])
	if err != nil {
		return err
	}
	defer dict.Close()

	out, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	noCounters, _ := cmd.Flags().GetBool("no-counters")
	runner := cli.NewQueryRunner(dict, out, cmd.OutOrStdout(), cli.Options{
		ShowCounters:  appConfig.CLI.ShowCounters && !noCounters,
		Prompt:        appConfig.CLI.Prompt,
		CompleteLimit: appConfig.Server.MaxComplete,
	})
	if err := runner.Run(cmd.InOrStdin()); err != nil {
		return err
	}
	return out.Close()
}

func runServe(cmd *cobra.Command, args []string) error {
	dict, err := loadDictionary(args[0])
	if err != nil {
		return err
	}
	defer dict.Close()

	srv := server.NewServerWithIO(dict, server.Config{
		MaxResults:  appConfig.Server.MaxResults,
		MaxComplete: appConfig.Server.MaxComplete,
	}, cmd.InOrStdin(), cmd.OutOrStdout())

	showStartupInfo(args[0])
	return srv.Start()
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dataPath string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("dataset: ( %s )", dataPath)
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}

func showVersion() {
	l := logger.NewWithConfig(os.Stderr, "", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ addrdict ] exact and closest-key address lookups")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}
