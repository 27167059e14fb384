// ABOUTME: YAML problem definitions for batch analysis: alternatives plus judgments
// ABOUTME: Judgments carry either a direct ratio or a grade under a named scale

package print

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/prefscale-go/internal/ahp"
	"github.com/mauromedda/prefscale-go/internal/scale"
)

// Problem is a parsed problem definition file. Judgments at the top level
// form the main matrix; criteria add further named matrices over the same
// alternatives. Pairs without a judgment stay at the neutral ratio 1.
type Problem struct {
	Alternatives []string       `yaml:"alternatives"`
	Scale        string         `yaml:"scale,omitempty"`
	Judgments    []JudgmentDef  `yaml:"judgments,omitempty"`
	Criteria     []CriterionDef `yaml:"criteria,omitempty"`
}

// JudgmentDef is one pairwise judgment. Row and Col are zero-based indexes
// into the alternatives. Ratio wins when both ratio and grade are given.
type JudgmentDef struct {
	Row   int     `yaml:"row"`
	Col   int     `yaml:"col"`
	Ratio float64 `yaml:"ratio,omitempty"`
	Grade float64 `yaml:"grade,omitempty"`
	Scale string  `yaml:"scale,omitempty"`
}

// CriterionDef is a named judgment matrix over the problem's alternatives.
type CriterionDef struct {
	Name      string        `yaml:"name"`
	Judgments []JudgmentDef `yaml:"judgments"`
}

// LoadProblem reads and validates a problem definition file.
func LoadProblem(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading problem file: %w", err)
	}
	var p Problem
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &p, nil
}

func (p *Problem) validate() error {
	if len(p.Alternatives) < 2 {
		return fmt.Errorf("need at least 2 alternatives, got %d", len(p.Alternatives))
	}
	if p.Scale != "" {
		if _, err := scale.Parse(p.Scale); err != nil {
			return err
		}
	}
	if len(p.Judgments) == 0 && len(p.Criteria) == 0 {
		return fmt.Errorf("no judgments and no criteria")
	}
	for _, c := range p.Criteria {
		if c.Name == "" {
			return fmt.Errorf("criterion without a name")
		}
	}
	return nil
}

// namedMatrix pairs a criterion name with its judgment definitions.
type namedMatrix struct {
	name      string
	judgments []JudgmentDef
}

// matrices returns the matrices to analyze, main matrix first.
func (p *Problem) matrices() []namedMatrix {
	var out []namedMatrix
	if len(p.Judgments) > 0 {
		out = append(out, namedMatrix{name: "overall", judgments: p.Judgments})
	}
	for _, c := range p.Criteria {
		out = append(out, namedMatrix{name: c.Name, judgments: c.Judgments})
	}
	return out
}

// build turns judgment definitions into a reciprocal matrix. defaultScale
// applies to grade-based judgments without their own scale name.
func build(alternatives []string, defs []JudgmentDef, defaultScale scale.Type) (*ahp.Matrix, error) {
	m, err := ahp.NewMatrix(len(alternatives))
	if err != nil {
		return nil, err
	}
	for i, d := range defs {
		ratio, err := d.ratio(defaultScale)
		if err != nil {
			return nil, fmt.Errorf("judgment %d: %w", i+1, err)
		}
		if err := m.Set(d.Row, d.Col, ratio); err != nil {
			return nil, fmt.Errorf("judgment %d: %w", i+1, err)
		}
	}
	return m, nil
}

func (d JudgmentDef) ratio(defaultScale scale.Type) (float64, error) {
	if d.Ratio != 0 {
		return d.Ratio, nil
	}
	if d.Grade == 0 {
		return 0, fmt.Errorf("needs a ratio or a grade")
	}
	t := defaultScale
	if d.Scale != "" {
		parsed, err := scale.Parse(d.Scale)
		if err != nil {
			return 0, err
		}
		t = parsed
	}
	return scale.Transform(d.Grade, t)
}
