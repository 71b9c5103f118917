package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-comlinkgen/internal/cli/logging"
	"github.com/goliatone/go-comlinkgen/internal/cli/ui"
	internalloader "github.com/goliatone/go-comlinkgen/internal/profile/loader"
	"github.com/goliatone/go-comlinkgen/pkg/ast"
	"github.com/goliatone/go-comlinkgen/pkg/model"
	"github.com/goliatone/go-comlinkgen/pkg/orchestrator"
	"github.com/goliatone/go-comlinkgen/pkg/profile"
	"github.com/goliatone/go-comlinkgen/pkg/render"
)

// sourceFlags are shared by every command that reads a profile.
type sourceFlags struct {
	format      string
	preset      string
	useCases    []string
	interactive bool
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", "", "input format: profile or openapi (default: detect)")
	cmd.Flags().StringVar(&f.preset, "preset", "", "JSON preset applied to the parsed profile")
	cmd.Flags().StringSliceVarP(&f.useCases, "use-case", "u", nil, "restrict output to these use cases (repeatable)")
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "pick use cases interactively")
}

// newOrchestrator wires the pipeline from the resolved configuration.
func (a *app) newOrchestrator(flags *sourceFlags, extra ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	loader := internalloader.New(profile.NewLoaderOptions(
		profile.WithHTTPFallback(a.cfg.HTTP.Timeout),
		profile.WithStdin(a.stdin),
	))

	options := []orchestrator.Option{
		orchestrator.WithLoader(loader),
		orchestrator.WithMaxRefDepth(a.cfg.MaxRefDepth),
		orchestrator.WithDuplicateHandler(func(header ast.Header, duplicates []string) {
			a.log.Warnw("duplicate definitions, last declaration wins",
				logging.FieldProfile, header.FullID(),
				"duplicates", duplicates,
			)
		}),
	}

	if flags != nil && flags.preset != "" {
		dir, base := filepath.Split(flags.preset)
		if dir == "" {
			dir = "."
		}
		preset, err := orchestrator.NewJSONPresetTransformerFromFS(os.DirFS(dir), base)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithTransformer(preset))
	}
	return orchestrator.New(append(options, extra...)...), nil
}

// prepareSource loads, parses and prepares location.
func (a *app) prepareSource(ctx context.Context, orch *orchestrator.Orchestrator, location string, flags *sourceFlags) (model.Profile, error) {
	source, err := profile.SourceFromLocation(location)
	if err != nil {
		return model.Profile{}, err
	}

	format := ""
	if flags != nil {
		format = flags.format
	}
	a.log.Debugw("loading profile", logging.FieldSource, location, logging.FieldFormat, format)

	doc, err := orch.Load(ctx, orchestrator.Request{Source: source, Format: format})
	if err != nil {
		return model.Profile{}, err
	}
	prepared, err := orch.Prepare(ctx, doc)
	if err != nil {
		return model.Profile{}, err
	}
	a.log.Debugw("prepared profile",
		logging.FieldProfile, prepared.Header.FullID(),
		logging.FieldCount, len(prepared.UseCases),
	)
	return prepared, nil
}

// selectUseCases resolves the use case subset from flags, prompting when
// interactive and nothing was named.
func (a *app) selectUseCases(ctx context.Context, prepared model.Profile, flags *sourceFlags) ([]string, error) {
	if flags == nil {
		return nil, nil
	}
	if len(flags.useCases) > 0 || !flags.interactive {
		return flags.useCases, nil
	}
	names := make([]string, 0, len(prepared.UseCases))
	for _, uc := range prepared.UseCases {
		names = append(names, uc.Name)
	}
	return ui.SelectUseCases(ctx, a.prompts, names)
}

// filterUseCases applies the same matching renderers use.
func filterUseCases(prepared model.Profile, names []string) (model.Profile, error) {
	input, err := render.SelectUseCases(render.NewInput(prepared), names)
	if err != nil {
		return model.Profile{}, err
	}
	prepared.UseCases = input.UseCases
	return prepared, nil
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
// Existing files are only replaced after confirmation in interactive mode.
func (a *app) writeOutput(cmd *cobra.Command, path string, data []byte, interactive bool) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if _, err := os.Stat(path); err == nil && interactive {
		ok, err := ui.ConfirmOverwrite(cmd.Context(), a.prompts, path)
		if err != nil {
			return err
		}
		if !ok {
			a.printer.Warn("skipped %s", path)
			return nil
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	a.log.Infow("wrote file", logging.FieldFile, path, logging.FieldSize, len(data))
	a.printer.Success("wrote %s", path)
	return nil
}

// writeJSON pretty prints value to stdout.
func writeJSON(cmd *cobra.Command, value any) error {
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode json")
	}
	_, err = cmd.OutOrStdout().Write(append(payload, '\n'))
	return err
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
