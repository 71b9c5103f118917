package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-comlinkgen/internal/cli/logging"
	"github.com/goliatone/go-comlinkgen/pkg/ast"
	"github.com/goliatone/go-comlinkgen/pkg/render"
)

// allRenderers is what "generate all" writes, in order.
var allRenderers = []string{"map", "mock-map", "test", "snippet-js", "snippet-python"}

type generateFlags struct {
	sourceFlags
	output   string
	provider string
	dialect  string
	indent   int
}

func newGenerateCommand(a *app) *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:     "generate <renderer> <source>",
		Aliases: []string{"g"},
		Short:   "Render a profile with one renderer",
		Long: `Render a profile document with the named renderer.

Renderers:
  map             - Comlink map skeleton
  mock-map        - mock provider map echoing example results
  test            - test file with one test per example
  snippet         - client snippet in --dialect (js or python)
  snippet-js      - JavaScript client snippet
  snippet-python  - Python client snippet
  all             - every renderer above, written to the output directory

Examples:
  comlinkgen generate map weather.profile.json --provider acme
  comlinkgen generate snippet weather.profile.json --dialect python
  comlinkgen generate all openapi.yaml -o generated/`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, args[0], args[1], flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file, or directory for 'all' (default stdout / output_dir)")
	cmd.Flags().StringVarP(&flags.provider, "provider", "p", "", "provider name (default from config or <profile>-provider)")
	cmd.Flags().StringVar(&flags.dialect, "dialect", "", "snippet dialect: js or python (default from config)")
	cmd.Flags().IntVar(&flags.indent, "indent", 0, "spaces per indentation level")

	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, rendererName, location string, flags *generateFlags) error {
	ctx := cmd.Context()

	dialect, err := render.ParseDialect(firstNonEmpty(flags.dialect, a.cfg.Dialect))
	if err != nil {
		return err
	}
	if rendererName == "snippet" {
		rendererName = "snippet-" + string(dialect)
	}

	orch, err := a.newOrchestrator(&flags.sourceFlags)
	if err != nil {
		return err
	}
	if rendererName != "all" && !orch.Registry().Has(rendererName) {
		return errors.Newf("unknown renderer %q (see 'comlinkgen renderers')", rendererName)
	}

	prepared, err := a.prepareSource(ctx, orch, location, &flags.sourceFlags)
	if err != nil {
		return err
	}
	useCases, err := a.selectUseCases(ctx, prepared, &flags.sourceFlags)
	if err != nil {
		return err
	}

	options := render.RenderOptions{
		Provider: firstNonEmpty(flags.provider, a.cfg.Provider),
		UseCases: useCases,
		Dialect:  dialect,
		Indent:   flags.indent,
	}

	if rendererName != "all" {
		a.log.Infow("rendering", logging.FieldRenderer, rendererName, logging.FieldProfile, prepared.Header.FullID())
		output, err := orch.Render(ctx, prepared, rendererName, options)
		if err != nil {
			return err
		}
		return a.writeOutput(cmd, flags.output, output, flags.interactive)
	}

	dir := firstNonEmpty(flags.output, a.cfg.OutputDir, ".")
	provider := options.ProviderName(prepared.Header)
	for _, name := range allRenderers {
		a.log.Infow("rendering", logging.FieldRenderer, name, logging.FieldProfile, prepared.Header.FullID())
		output, err := orch.Render(ctx, prepared, name, options)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, OutputFileName(name, prepared.Header, provider))
		if err := a.writeOutput(cmd, path, output, flags.interactive); err != nil {
			return err
		}
	}
	return nil
}

// OutputFileName is the conventional file name for a renderer's output.
func OutputFileName(rendererName string, header ast.Header, provider string) string {
	base := header.Name
	if base == "" {
		base = "profile"
	}
	if header.Scope != "" {
		base = header.Scope + "." + base
	}
	switch rendererName {
	case "map":
		return fmt.Sprintf("%s.%s.suma", base, provider)
	case "mock-map":
		return base + ".mock.suma"
	case "test":
		return fmt.Sprintf("%s.%s.test.ts", base, provider)
	case "snippet-js":
		return base + ".snippet.js"
	case "snippet-python":
		return strings.NewReplacer("-", "_", ".", "_").Replace(base) + "_snippet.py"
	default:
		return base + "." + rendererName
	}
}
