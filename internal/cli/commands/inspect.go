package commands

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-comlinkgen/pkg/model"
)

type slotModels struct {
	Name   string       `json:"name"`
	Input  *model.Model `json:"input,omitempty"`
	Result *model.Model `json:"result,omitempty"`
	Error  *model.Model `json:"error,omitempty"`
}

func newModelCommand(a *app) *cobra.Command {
	flags := &sourceFlags{}

	cmd := &cobra.Command{
		Use:   "model <source>",
		Short: "Print the resolved Model of every use case slot as JSON",
		Long: `Resolve named models and fields and print the structural Model of
each use case's input, result and error slot.

Examples:
  comlinkgen model weather.profile.json
  comlinkgen model openapi.yaml -u GetWeather`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prepared, err := a.prepareSelected(cmd, args[0], flags)
			if err != nil {
				return err
			}
			out := make([]slotModels, 0, len(prepared.UseCases))
			for _, uc := range prepared.UseCases {
				out = append(out, slotModels{Name: uc.Name, Input: uc.Input, Result: uc.Result, Error: uc.Error})
			}
			return writeJSON(cmd, out)
		},
	}
	flags.register(cmd)
	return cmd
}

type blockExamples struct {
	Name   string `json:"name,omitempty"`
	Kind   string `json:"kind"`
	Input  any    `json:"input,omitempty"`
	Result any    `json:"result,omitempty"`
	Error  any    `json:"error,omitempty"`
}

type useCaseExamples struct {
	Name     string          `json:"name"`
	Examples []blockExamples `json:"examples"`
}

func newExampleCommand(a *app) *cobra.Command {
	flags := &sourceFlags{}
	var tree bool

	cmd := &cobra.Command{
		Use:   "example <source>",
		Short: "Print the synthesized examples of every use case as JSON",
		Long: `Synthesize one example per example block (or a default one) and print
the values as plain JSON. --tree prints the typed Example trees instead.

Examples:
  comlinkgen example weather.profile.json
  comlinkgen example weather.profile.json --tree -u GetWeather`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prepared, err := a.prepareSelected(cmd, args[0], flags)
			if err != nil {
				return err
			}
			project := plain
			if tree {
				project = typed
			}

			out := make([]useCaseExamples, 0, len(prepared.UseCases))
			for _, uc := range prepared.UseCases {
				entry := useCaseExamples{Name: uc.Name}
				for _, ex := range uc.Examples {
					entry.Examples = append(entry.Examples, blockExamples{
						Name:   ex.Name,
						Kind:   string(ex.Kind),
						Input:  project(ex.Input),
						Result: project(ex.Result),
						Error:  project(ex.Error),
					})
				}
				out = append(out, entry)
			}
			return writeJSON(cmd, out)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&tree, "tree", false, "print typed Example trees")
	return cmd
}

func (a *app) prepareSelected(cmd *cobra.Command, location string, flags *sourceFlags) (model.Profile, error) {
	orch, err := a.newOrchestrator(flags)
	if err != nil {
		return model.Profile{}, err
	}
	prepared, err := a.prepareSource(cmd.Context(), orch, location, flags)
	if err != nil {
		return model.Profile{}, err
	}
	names, err := a.selectUseCases(cmd.Context(), prepared, flags)
	if err != nil {
		return model.Profile{}, err
	}
	return filterUseCases(prepared, names)
}

// plain and typed keep absent slots absent in the JSON output.
func plain(ex *model.Example) any {
	if ex == nil {
		return nil
	}
	return ex.Plain()
}

func typed(ex *model.Example) any {
	if ex == nil {
		return nil
	}
	return ex
}
