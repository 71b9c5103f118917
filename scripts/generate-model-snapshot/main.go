package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-comlinkgen"
	"github.com/goliatone/go-comlinkgen/pkg/orchestrator"
	"github.com/goliatone/go-comlinkgen/pkg/profile"
	"github.com/goliatone/go-comlinkgen/pkg/render"
)

const snapshotRendererName = "model-snapshot"

// snapshotRenderer serialises the prepared renderer input so template
// changes can be reviewed against the Models and Examples they consume.
type snapshotRenderer struct {
	path string
}

func (r *snapshotRenderer) Name() string {
	return snapshotRendererName
}

func (r *snapshotRenderer) ContentType() string {
	return "application/json"
}

func (r *snapshotRenderer) Render(_ context.Context, input render.Input, _ render.RenderOptions) ([]byte, error) {
	payload, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return nil, err
	}
	payload = append(payload, '\n')
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(r.path, payload, 0o644); err != nil {
		return nil, err
	}
	return payload, nil
}

func main() {
	var (
		sourcePath = flag.String("source", "examples/fixtures/weather.json", "profile AST or OpenAPI document")
		outputPath = flag.String("output", "pkg/render/testdata/weather_input.json", "output path for the serialized renderer input")
	)
	flag.Parse()

	registry := render.NewRegistry()
	registry.MustRegister(&snapshotRenderer{path: *outputPath})

	orch := comlinkgen.NewOrchestrator(
		orchestrator.WithLoader(comlinkgen.NewLoader()),
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(snapshotRendererName),
	)

	_, err := orch.Generate(context.Background(), orchestrator.Request{
		Source: profile.SourceFromFile(*sourcePath),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to snapshot renderer input: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Wrote renderer input snapshot to %s\n", *outputPath)
}
