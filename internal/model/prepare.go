package model

import (
	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-comlinkgen/pkg/ast"
)

// Profile is the engine output for a whole document: one prepared UseCase per
// use-case definition, in declaration order.
type Profile struct {
	Header     ast.Header `json:"header"`
	UseCases   []UseCase  `json:"useCases"`
	Duplicates []string   `json:"duplicates,omitempty"`
}

// UseCase carries the Models of a use case's slots and one set of Examples
// per example block. Slots the use case does not declare are nil.
type UseCase struct {
	Name        string           `json:"name"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Safety      string           `json:"safety"`
	Input       *Model           `json:"input"`
	Result      *Model           `json:"result"`
	Error       *Model           `json:"error"`
	Examples    []UseCaseExample `json:"examples"`
}

// UseCaseExample is one synthesized example block.
type UseCaseExample struct {
	Name   string          `json:"name"`
	Kind   ast.ExampleKind `json:"kind"`
	Input  *Example        `json:"input"`
	Result *Example        `json:"result"`
	Error  *Example        `json:"error"`
}

// IsError reports whether the block describes an error outcome.
func (e UseCaseExample) IsError() bool {
	return e.Kind == ast.ExampleError
}

// SuccessExample returns the first success block, if any.
func (u UseCase) SuccessExample() (UseCaseExample, bool) {
	for _, ex := range u.Examples {
		if !ex.IsError() {
			return ex, true
		}
	}
	return UseCaseExample{}, false
}

// ErrorExample returns the first error block, if any.
func (u UseCase) ErrorExample() (UseCaseExample, bool) {
	for _, ex := range u.Examples {
		if ex.IsError() {
			return ex, true
		}
	}
	return UseCaseExample{}, false
}

// Prepare builds the definition cache for doc once and prepares every use
// case against it.
func Prepare(doc ast.ProfileDocument, options Options) (Profile, error) {
	engine := NewForDocument(doc, options)
	profile := Profile{
		Header:     doc.Header,
		Duplicates: engine.cache.Duplicates(),
	}
	for _, uc := range doc.UseCases() {
		prepared, err := engine.PrepareUseCase(uc)
		if err != nil {
			return Profile{}, errors.Wrapf(err, "use case %s", uc.Name)
		}
		profile.UseCases = append(profile.UseCases, prepared)
	}
	return profile, nil
}

// PrepareUseCase builds slot Models and synthesizes one example per block.
// A use case without example blocks gets a single default success block.
func (e *Engine) PrepareUseCase(uc *ast.UseCaseDefinition) (UseCase, error) {
	if uc == nil {
		return UseCase{}, invalidKindError(uc)
	}

	out := UseCase{
		Name:        uc.Name,
		Title:       uc.Title,
		Description: uc.Description,
		Safety:      uc.Safety,
	}

	var err error
	if out.Input, err = e.slotModel(uc.Input); err != nil {
		return UseCase{}, errors.Wrap(err, "input")
	}
	if out.Result, err = e.slotModel(uc.Result); err != nil {
		return UseCase{}, errors.Wrap(err, "result")
	}
	if out.Error, err = e.slotModel(uc.Error); err != nil {
		return UseCase{}, errors.Wrap(err, "error")
	}

	blocks := uc.Examples
	if len(blocks) == 0 {
		blocks = []ast.ExampleBlock{{Kind: ast.ExampleSuccess}}
	}

	out.Examples = make([]UseCaseExample, 0, len(blocks))
	for _, block := range blocks {
		ex, err := e.synthesizeBlock(uc, block)
		if err != nil {
			return UseCase{}, errors.Wrapf(err, "example %q", block.Name)
		}
		out.Examples = append(out.Examples, ex)
	}
	return out, nil
}

func (e *Engine) synthesizeBlock(uc *ast.UseCaseDefinition, block ast.ExampleBlock) (UseCaseExample, error) {
	kind := block.Kind
	if kind == "" {
		kind = ast.ExampleSuccess
	}
	out := UseCaseExample{Name: block.Name, Kind: kind}

	var err error
	if out.Input, err = e.slotExample(uc.Input, block.Input); err != nil {
		return UseCaseExample{}, err
	}
	if kind == ast.ExampleError {
		out.Error, err = e.slotExample(uc.Error, block.Error)
	} else {
		out.Result, err = e.slotExample(uc.Result, block.Result)
	}
	if err != nil {
		return UseCaseExample{}, err
	}
	return out, nil
}

func (e *Engine) slotModel(node ast.TypeNode) (*Model, error) {
	if isNilNode(node) {
		return nil, nil
	}
	built, err := e.BuildModel(node, false)
	if err != nil {
		return nil, err
	}
	return &built, nil
}

func (e *Engine) slotExample(node ast.TypeNode, literal ast.LiteralNode) (*Example, error) {
	if isNilNode(node) && literal == nil {
		return nil, nil
	}
	value, err := e.Synthesize(node, true, literal)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// SynthesizeUseCase returns the synthesized example blocks of uc against an
// existing cache, including the default block when uc declares none.
func SynthesizeUseCase(uc *ast.UseCaseDefinition, cache *DefinitionCache) ([]UseCaseExample, error) {
	prepared, err := New(cache, Options{}).PrepareUseCase(uc)
	if err != nil {
		return nil, err
	}
	return prepared.Examples, nil
}
