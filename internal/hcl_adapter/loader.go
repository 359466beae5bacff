package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/expgrid/internal/config"
	"github.com/vk/expgrid/internal/ctxlog"
	"github.com/vk/expgrid/internal/fsutil"
)

// Extension is the file extension handled by this loader.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under paths and returns the experiments in
// file order, then declaration order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, Extension)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := config.NewModel()
	parser := hclparse.NewParser()
	for _, file := range files {
		experiments, err := l.loadFile(ctx, parser, file)
		if err != nil {
			return nil, err
		}
		model.Experiments = append(model.Experiments, experiments...)
	}

	logger.Debug("HCL loading complete.", "files", len(files), "experiments", len(model.Experiments))
	return model, nil
}

// LoadSource parses a single in-memory HCL document. filename is used only
// for diagnostics.
func (l *Loader) LoadSource(ctx context.Context, filename string, src []byte) (*config.Model, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	experiments, err := l.translateFile(ctx, hclFile, filename)
	if err != nil {
		return nil, err
	}
	return &config.Model{Experiments: experiments}, nil
}

func (l *Loader) loadFile(ctx context.Context, parser *hclparse.Parser, file string) ([]*config.Experiment, error) {
	hclFile, diags := parser.ParseHCLFile(file)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
	}
	return l.translateFile(ctx, hclFile, file)
}

func (l *Loader) translateFile(ctx context.Context, hclFile *hcl.File, file string) ([]*config.Experiment, error) {
	ctx, logger := ctxlog.With(ctx, "path", file)

	content, diags := hclFile.Body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
	}

	var localBodies []hcl.Body
	var experimentBlocks []*hcl.Block
	for _, block := range content.Blocks {
		switch block.Type {
		case "locals":
			localBodies = append(localBodies, block.Body)
		case "experiment":
			experimentBlocks = append(experimentBlocks, block)
		}
	}

	locals, err := evalLocals(ctx, localBodies)
	if err != nil {
		return nil, fmt.Errorf("in file %s: %w", file, err)
	}
	evalCtx := newEvalContext(locals)

	experiments := make([]*config.Experiment, 0, len(experimentBlocks))
	for _, block := range experimentBlocks {
		exp, err := l.translateExperiment(ctx, block, evalCtx, file)
		if err != nil {
			return nil, fmt.Errorf("in file %s: %w", file, err)
		}
		experiments = append(experiments, exp)
	}
	logger.Debug("HCL file translated.", "experiments", len(experiments), "locals", len(locals))
	return experiments, nil
}
