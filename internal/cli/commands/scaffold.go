package commands

import (
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-comlinkgen/pkg/render"
	"github.com/goliatone/go-comlinkgen/pkg/renderers/scaffold"
)

type scaffoldFlags struct {
	useCases []string
	provider string
	output   string
	stdout   bool
}

func newScaffoldCommand(a *app) *cobra.Command {
	flags := &scaffoldFlags{}

	cmd := &cobra.Command{
		Use:   "scaffold <profile|map|provider|all> <scope/name[@version]>",
		Short: "Write empty profile, map or provider documents",
		Long: `Write starting documents for a profile that does not exist yet.

Examples:
  comlinkgen scaffold profile weather/current-city@1.0.0 -u GetWeather -u ListCities
  comlinkgen scaffold map weather/current-city -p acme -u GetWeather
  comlinkgen scaffold all weather/current-city -p acme -o superface/`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runScaffold(cmd, args[0], args[1], flags)
		},
	}

	cmd.Flags().StringSliceVarP(&flags.useCases, "use-case", "u", nil, "use case names (repeatable)")
	cmd.Flags().StringVarP(&flags.provider, "provider", "p", "", "provider name (default from config or <profile>-provider)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output directory (default output_dir)")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "print instead of writing files")

	return cmd
}

func (a *app) runScaffold(cmd *cobra.Command, kindArg, id string, flags *scaffoldFlags) error {
	var kinds []scaffold.Kind
	if kindArg == "all" {
		kinds = scaffold.Kinds()
	} else {
		kind := scaffold.Kind(kindArg)
		if !containsKind(scaffold.Kinds(), kind) {
			return errors.Newf("unknown scaffold kind %q", kindArg)
		}
		kinds = []scaffold.Kind{kind}
	}

	input, err := scaffold.InputFromID(id, flags.useCases...)
	if err != nil {
		return err
	}
	options := render.RenderOptions{Provider: firstNonEmpty(flags.provider, a.cfg.Provider)}
	provider := options.ProviderName(input.Header)
	dir := firstNonEmpty(flags.output, a.cfg.OutputDir, ".")

	for _, kind := range kinds {
		renderer, err := scaffold.New(kind)
		if err != nil {
			return err
		}
		output, err := renderer.Render(cmd.Context(), input, options)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, renderer.FileName(input.Header, provider))
		if flags.stdout {
			path = ""
		}
		if err := a.writeOutput(cmd, path, output, false); err != nil {
			return err
		}
	}
	return nil
}

func containsKind(kinds []scaffold.Kind, kind scaffold.Kind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
