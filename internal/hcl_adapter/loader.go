package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/gridsched/internal/config"
	"github.com/vk/gridsched/internal/ctxlog"
	"github.com/vk/gridsched/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load orchestrates the entire HCL loading process. Any block may appear in
// any file; references between resources and tasks are resolved once every
// file has been read.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := &config.Model{}

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, nil, err
	}
	if len(hclFiles) == 0 {
		return nil, nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	declared := make(map[string]*config.Resource)

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		ranges := resourceRanges(hclFile.Body)
		for _, block := range root.Resources {
			key := block.Kind + "." + block.Name
			res, diags := l.translateResource(block, ranges[key])
			if diags.HasErrors() {
				return nil, nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
			}
			if prev, dup := declared[key]; dup {
				diags := hcl.Diagnostics{errorDiag(
					"Duplicate resource",
					fmt.Sprintf("resource %q %q was already declared at %s.", block.Kind, block.Name, prev.Range),
					res.Range,
				)}
				return nil, nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
			}
			declared[key] = res
			model.Resources = append(model.Resources, res)
		}

		for _, block := range root.Stages {
			stage, diags := l.translateStage(ctx, block)
			if diags.HasErrors() {
				return nil, nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
			}
			model.Stages = append(model.Stages, stage)
		}
	}

	if diags := resolveReferences(model, declared); diags.HasErrors() {
		return nil, nil, fmt.Errorf("invalid resource reference: %w", diags)
	}

	logger.Debug("HCL loading complete.", "resources", len(model.Resources), "stages", len(model.Stages), "tasks", model.TaskCount())
	return model, NewConverter(), nil
}

// resolveReferences checks that every reads/writes entry names a declared
// resource.
func resolveReferences(model *config.Model, declared map[string]*config.Resource) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, stage := range model.Stages {
		for _, task := range stage.Tasks {
			for _, ref := range append(append([]config.ResourceRef(nil), task.Reads...), task.Writes...) {
				if _, ok := declared[ref.Key()]; ok {
					continue
				}
				diags = append(diags, errorDiag(
					"Reference to undeclared resource",
					fmt.Sprintf("task %q in stage %q refers to %s, which is not declared.", task.Name, stage.Name, ref.Key()),
					ref.Range,
				))
			}
		}
	}
	return diags
}

// findAllHCLFiles walks all given paths and returns a flat, sorted list of all
// .hcl files found.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			found, err := fsutil.FindFilesByExtension(path, ".hcl")
			if err != nil {
				return nil, err
			}
			for _, p := range found {
				add(p)
			}
		} else if filepath.Ext(path) == ".hcl" {
			add(path)
		}
	}
	sort.Strings(allFiles)
	return allFiles, nil
}
