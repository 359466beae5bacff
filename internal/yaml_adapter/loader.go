package yaml_adapter

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/expgrid/internal/config"
	"github.com/vk/expgrid/internal/ctxlog"
	"github.com/vk/expgrid/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// Extensions are the file extensions handled by this loader.
var Extensions = []string{".yaml", ".yml"}

// Loader is the YAML implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every YAML file under paths.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, Extensions...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	model := config.NewModel()
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read YAML file %s: %w", file, err)
		}
		m, err := l.LoadSource(ctx, file, data)
		if err != nil {
			return nil, err
		}
		model.Merge(m)
	}

	logger.Debug("YAML loading complete.", "files", len(files), "experiments", len(model.Experiments))
	return model, nil
}

// LoadSource parses a single in-memory YAML document. filename is used for
// diagnostics and FSInfo.
func (l *Loader) LoadSource(ctx context.Context, filename string, data []byte) (*config.Model, error) {
	_, logger := ctxlog.With(ctx, "path", filename)

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", filename, err)
	}

	model := config.NewModel()
	if root.Kind == 0 || len(root.Content) == 0 {
		logger.Debug("YAML file is empty.")
		return model, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s:%d: top level must be a mapping", filename, doc.Line)
	}
	if unknown := unknownKeys(doc, map[string]struct{}{"experiments": {}}); len(unknown) > 0 {
		return nil, fmt.Errorf("%s:%d: unknown top-level keys %v", filename, doc.Line, unknown)
	}

	var items *yaml.Node
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value == "experiments" {
			items = doc.Content[i+1]
		}
	}
	if items == nil || items.ShortTag() == "!!null" {
		return model, nil
	}
	if items.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%s:%d: experiments must be a list", filename, items.Line)
	}

	for _, item := range items.Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%s:%d: experiment must be a mapping", filename, item.Line)
		}
		if unknown := unknownKeys(item, experimentKeys); len(unknown) > 0 {
			return nil, fmt.Errorf("%s:%d: unknown experiment keys %v", filename, item.Line, unknown)
		}
		var raw Experiment
		if err := item.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filename, item.Line, err)
		}
		exp, err := translateExperiment(&raw, config.NewFSInfo(filename, item.Line))
		if err != nil {
			return nil, fmt.Errorf("in file %s: %w", filename, err)
		}
		model.Experiments = append(model.Experiments, exp)
	}

	logger.Debug("YAML file translated.", "experiments", len(model.Experiments))
	return model, nil
}
