package commands

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-comlinkgen/internal/cli/logging"
	internalopenapi "github.com/goliatone/go-comlinkgen/internal/openapi/parser"
	profileparser "github.com/goliatone/go-comlinkgen/internal/profile/parser"
	pkgopenapi "github.com/goliatone/go-comlinkgen/pkg/openapi"
	"github.com/goliatone/go-comlinkgen/pkg/orchestrator"
	"github.com/goliatone/go-comlinkgen/pkg/profile"
)

type importFlags struct {
	profileID  string
	version    string
	noExamples bool
	noValidate bool
	partial    bool
	output     string
	outFormat  string
	preset     string
}

func newImportOpenAPICommand(a *app) *cobra.Command {
	flags := &importFlags{}

	cmd := &cobra.Command{
		Use:   "import-openapi <source>",
		Short: "Convert an OpenAPI 3 document into a profile AST document",
		Long: `Convert an OpenAPI 3 document into the profile AST interchange format.

Operations become use cases (parameters and request body form the input,
the first 2xx JSON response the result, the first 4xx/5xx the error),
components.schemas become named models, and media type examples become
example blocks.

Examples:
  comlinkgen import-openapi openapi.yaml -o weather.profile.json
  comlinkgen import-openapi https://api.example.com/openapi.json --profile-id weather/current --out-format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runImportOpenAPI(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.profileID, "profile-id", "", "profile id as scope/name (default: slug of info.title)")
	cmd.Flags().StringVar(&flags.version, "version", "", "profile version (default: info.version)")
	cmd.Flags().BoolVar(&flags.noExamples, "no-examples", false, "skip media type examples")
	cmd.Flags().BoolVar(&flags.noValidate, "no-validate", false, "skip OpenAPI validation and external references")
	cmd.Flags().BoolVar(&flags.partial, "partial", false, "accept documents without operations")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&flags.outFormat, "out-format", "json", "output format: json or yaml")
	cmd.Flags().StringVar(&flags.preset, "preset", "", "JSON preset applied to the imported profile")

	return cmd
}

func (a *app) runImportOpenAPI(cmd *cobra.Command, location string, flags *importFlags) error {
	var format profile.Format
	switch flags.outFormat {
	case "", "json":
		format = profile.FormatJSON
	case "yaml", "yml":
		format = profile.FormatYAML
	default:
		return errors.Newf("unsupported output format %q", flags.outFormat)
	}

	importer := internalopenapi.New(pkgopenapi.NewImportOptions(
		pkgopenapi.WithProfileID(flags.profileID),
		pkgopenapi.WithVersion(flags.version),
		pkgopenapi.WithExamples(!flags.noExamples),
		pkgopenapi.WithReferenceResolution(!flags.noValidate),
		pkgopenapi.WithPartialDocuments(flags.partial),
	))
	adapters := orchestrator.NewAdapterRegistry()
	adapters.MustRegister(orchestrator.NewOpenAPIAdapter(importer))

	orch, err := a.newOrchestrator(
		&sourceFlags{preset: flags.preset},
		orchestrator.WithAdapterRegistry(adapters),
		orchestrator.WithDefaultAdapter(orchestrator.AdapterOpenAPI),
	)
	if err != nil {
		return err
	}

	source, err := profile.SourceFromLocation(location)
	if err != nil {
		return err
	}
	doc, err := orch.Load(cmd.Context(), orchestrator.Request{Source: source, Format: orchestrator.AdapterOpenAPI})
	if err != nil {
		return err
	}
	a.log.Infow("imported openapi document",
		logging.FieldSource, location,
		logging.FieldProfile, doc.Header.FullID(),
		logging.FieldCount, len(doc.UseCases()),
	)

	// Prepare once so unresolved references surface here, not at generate time.
	if _, err := orch.Prepare(cmd.Context(), doc); err != nil {
		return err
	}

	payload, err := profileparser.Encode(doc, format)
	if err != nil {
		return err
	}
	return a.writeOutput(cmd, flags.output, payload, false)
}
