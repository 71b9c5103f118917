package commands

import (
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-comlinkgen/internal/cli/config"
	"github.com/goliatone/go-comlinkgen/internal/cli/logging"
	"github.com/goliatone/go-comlinkgen/internal/cli/ui"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// app carries what every subcommand needs once flags and config are resolved.
type app struct {
	cfg     *config.Config
	log     *zap.SugaredLogger
	printer *ui.Printer
	prompts ui.PromptDriver
	stdin   io.Reader
}

type rootFlags struct {
	configFile  string
	envFile     string
	logLevel    string
	logJSON     bool
	noColor     bool
	maxRefDepth int
}

// Option customises the root command, mostly for tests.
type Option func(*app)

// WithPromptDriver replaces the survey-backed prompts.
func WithPromptDriver(driver ui.PromptDriver) Option {
	return func(a *app) {
		a.prompts = driver
	}
}

// NewRootCommand creates the root command
func NewRootCommand(options ...Option) *cobra.Command {
	state := &app{
		log:     logging.Nop(),
		prompts: ui.NewSurveyDriver(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(state)
		}
	}
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "comlinkgen",
		Short: "Generate Comlink maps, mocks, tests and client snippets from profiles",
		Long: color.CyanString(`comlinkgen - Comlink code generation

Reads a profile document (AST interchange JSON/YAML, or an OpenAPI 3
document) and writes:
  • Comlink map skeletons
  • mock provider maps
  • test files
  • JavaScript and Python client snippets
  • empty profile, map and provider scaffolds`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return state.init(cmd, flags)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "config file (default ./comlinkgen.yaml)")
	pf.StringVar(&flags.envFile, "env-file", "", "dotenv file (default ./.env)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&flags.logJSON, "log-json", false, "emit JSON logs")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	pf.IntVar(&flags.maxRefDepth, "max-ref-depth", 0, "named model reference depth limit")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newGenerateCommand(state))
	rootCmd.AddCommand(newModelCommand(state))
	rootCmd.AddCommand(newExampleCommand(state))
	rootCmd.AddCommand(newImportOpenAPICommand(state))
	rootCmd.AddCommand(newScaffoldCommand(state))
	rootCmd.AddCommand(newRenderersCommand(state))

	return rootCmd
}

func (a *app) init(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := config.Load(config.Options{File: flags.configFile, EnvFile: flags.envFile})
	if err != nil {
		return err
	}

	changed := cmd.Flags().Changed
	if changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if changed("log-json") {
		cfg.Log.JSON = flags.logJSON
	}
	if changed("max-ref-depth") {
		cfg.MaxRefDepth = flags.maxRefDepth
	}

	log, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		JSON:   cfg.Log.JSON,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	a.printer = ui.NewPrinter(cmd.ErrOrStderr(), flags.noColor)
	a.stdin = cmd.InOrStdin()
	return nil
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the comlinkgen version, Git commit, build date, and Go version",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			out := cmd.OutOrStdout()
			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)

			line := func(title, value string) {
				titleColor.Fprint(out, title)
				valueColor.Fprintln(out, value)
			}
			line("comlinkgen version: ", Version)
			line("Git commit: ", GitCommit)
			line("Build date: ", BuildDate)
			line("Go version: ", goVer)
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
