package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rendererDescriptions = map[string]string{
	"map":               "Comlink map skeleton",
	"mock-map":          "mock provider map echoing example results",
	"test":              "test file with one test per example",
	"snippet-js":        "JavaScript client snippet",
	"snippet-python":    "Python client snippet",
	"scaffold-profile":  "empty profile document",
	"scaffold-map":      "empty map document",
	"scaffold-provider": "empty provider definition",
}

func newRenderersCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "renderers",
		Short: "List available renderers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := a.newOrchestrator(nil)
			if err != nil {
				return err
			}
			entries := orch.Registry().Entries()
			rows := make([][2]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, [2]string{entry.Name, fmt.Sprintf("%s (%s)", rendererDescriptions[entry.Name], entry.ContentType)})
			}
			a.printer.WithOutput(cmd.OutOrStdout()).Table(rows)
			return nil
		},
	}
}
