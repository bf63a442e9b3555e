package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/scicrunch/sckan-nli/internal/common/sckanerrors"
)

// Step pairs a query document with the file its results are written to.
type Step struct {
	Query  string `json:"query" mapstructure:"query"`
	Output string `json:"output" mapstructure:"output"`
}

// Plan is the ordered list of steps making up one export run.
type Plan struct {
	Steps []Step `json:"queries"`
}

// DefaultPlan returns the queries backing SCKAN NLI, relative to the working directory.
func DefaultPlan() *Plan {
	return &Plan{Steps: []Step{
		{Query: "./sparql-queries/sckan-all-locations.rq", Output: "./sckan-nli-data/sckan-all-locations.json"},
		{Query: "./sparql-queries/a-b-via-c.rq", Output: "./sckan-nli-data/a-b-via-c.json"},
		{Query: "./sparql-queries/axonal-path-partial-order.rq", Output: "./sckan-nli-data/axonal-path.json"},
		{Query: "./sparql-queries/neuron-metadata.rq", Output: "./sckan-nli-data/neuron-metadata.json"},
		{Query: "./sparql-queries/major-organs-synonyms.rq", Output: "./sckan-nli-data/major-organs-synonyms.json"},
		{Query: "./sparql-queries/species-synonyms.rq", Output: "./sckan-nli-data/species-synonyms.json"},
		{Query: "./sparql-queries/senmot-organ-innervation.rq", Output: "./sckan-nli-data/senmot-organ-innervation.json"},
		{Query: "./sparql-queries/major-nerves.rq", Output: "./sckan-nli-data/major-nerves.json"},
		{Query: "./sparql-queries/axonal-path-with-synapse.rq", Output: "./sckan-nli-data/axonal-path-with-synapse.json"},
		{Query: "./sparql-queries/organ-innervation-collapsed.rq", Output: "./sckan-nli-data/organ-innervation-pathways-with-collapsed-nodes.json"},
		{Query: "./sparql-queries/sckan-version-info.rq", Output: "./sckan-nli-data/sckan-version.json"},
	}}
}

// LoadPlan reads a plan from a YAML or JSON file of the form
//
//	queries:
//	  - query: ./sparql-queries/a.rq
//	    output: ./out/a.json
func LoadPlan(filePath string) (*Plan, error) {
	b, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.WithStack(&sckanerrors.ErrInvalidArgument{
			Name:    "plan",
			Value:   filePath,
			Message: err.Error(),
		})
	}
	plan := &Plan{}
	if err := yaml.UnmarshalStrict(b, plan); err != nil {
		return nil, errors.WithStack(&sckanerrors.ErrInvalidArgument{
			Name:    "plan",
			Value:   filePath,
			Message: err.Error(),
		})
	}
	return plan, nil
}

// Resolve returns a copy of the plan with relative paths anchored at baseDir.
// Absolute paths and an empty baseDir leave paths unchanged.
func (p *Plan) Resolve(baseDir string) *Plan {
	resolved := &Plan{Steps: make([]Step, len(p.Steps))}
	for i, step := range p.Steps {
		resolved.Steps[i] = Step{
			Query:  resolvePath(baseDir, step.Query),
			Output: resolvePath(baseDir, step.Output),
		}
	}
	return resolved
}

func resolvePath(baseDir string, path string) string {
	if baseDir == "" || path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// Validate checks that every query has exactly one output file:
// the plan is not empty, no step misses a path, no two steps write the same file
// and no step writes over a query file.
func (p *Plan) Validate() error {
	if len(p.Steps) == 0 {
		return errors.WithStack(&sckanerrors.ErrInvalidArgument{
			Name:    "queries",
			Value:   "",
			Message: "no queries provided",
		})
	}

	var result *multierror.Error
	outputs := make(map[string]int, len(p.Steps))
	queries := make(map[string]int, len(p.Steps))
	for i, step := range p.Steps {
		if strings.TrimSpace(step.Query) != "" {
			queries[filepath.Clean(step.Query)] = i
		}
	}
	for i, step := range p.Steps {
		if strings.TrimSpace(step.Query) == "" {
			result = multierror.Append(result, &sckanerrors.ErrInvalidArgument{
				Name:    fieldName(i, "query"),
				Value:   step.Query,
				Message: "query file not provided",
			})
		}
		if strings.TrimSpace(step.Output) == "" {
			result = multierror.Append(result, &sckanerrors.ErrInvalidArgument{
				Name:    fieldName(i, "output"),
				Value:   step.Output,
				Message: "output file not provided",
			})
			continue
		}
		key := filepath.Clean(step.Output)
		if owner, ok := queries[key]; ok {
			result = multierror.Append(result, &sckanerrors.ErrInvalidArgument{
				Name:    fieldName(i, "output"),
				Value:   step.Output,
				Message: fmt.Sprintf("is the query file of queries[%d]", owner),
			})
			continue
		}
		if previous, ok := outputs[key]; ok {
			result = multierror.Append(result, &sckanerrors.ErrInvalidArgument{
				Name:    fieldName(i, "output"),
				Value:   step.Output,
				Message: "already written by query " + strings.TrimSpace(p.Steps[previous].Query),
			})
			continue
		}
		outputs[key] = i
	}
	return result.ErrorOrNil()
}

func fieldName(i int, field string) string {
	return fmt.Sprintf("queries[%d].%s", i, field)
}
