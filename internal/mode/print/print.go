// ABOUTME: Headless batch mode: analyze a problem file and print the results
// ABOUTME: Matrices are analyzed concurrently; text, json, and markdown formatters

package print

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/prefscale-go/internal/ahp"
	"github.com/mauromedda/prefscale-go/internal/log"
	"github.com/mauromedda/prefscale-go/internal/scale"
)

// Config configures batch analysis.
type Config struct {
	Format    string // "text" (default), "json", "markdown"
	Method    ahp.Method
	Threshold float64
	Scale     scale.Type // default scale for grade-based judgments
}

// MatrixResult is the analysis of one named matrix.
type MatrixResult struct {
	Name             string          `json:"name"`
	Alternatives     []string        `json:"alternatives"`
	Weights          []float64       `json:"weights"`
	EigenWeights     []float64       `json:"eigen_weights"`
	GeometricWeights []float64       `json:"geometric_mean_weights"`
	Ranks            []int           `json:"ranks"`
	Consistency      ahp.Consistency `json:"consistency"`
}

// Run loads the problem file, analyzes every matrix, and writes the
// formatted results to out.
func Run(ctx context.Context, cfg Config, path string, out io.Writer) error {
	p, err := LoadProblem(path)
	if err != nil {
		return err
	}

	f, err := newFormatter(cfg.Format)
	if err != nil {
		return err
	}

	defaultScale := cfg.Scale
	if p.Scale != "" {
		defaultScale, err = scale.Parse(p.Scale)
		if err != nil {
			return err
		}
	}
	if !defaultScale.Valid() {
		defaultScale = scale.Integer
	}

	results, err := analyze(ctx, cfg, p, defaultScale)
	if err != nil {
		return err
	}
	return f.format(out, results)
}

// analyze builds and evaluates all matrices concurrently. Results keep the
// problem file's order regardless of completion order.
func analyze(ctx context.Context, cfg Config, p *Problem, defaultScale scale.Type) ([]MatrixResult, error) {
	named := p.matrices()
	results := make([]MatrixResult, len(named))

	g, ctx := errgroup.WithContext(ctx)
	for i, nm := range named {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := analyzeOne(cfg, p.Alternatives, nm, defaultScale)
			if err != nil {
				return fmt.Errorf("matrix %q: %w", nm.name, err)
			}
			results[i] = r
			log.Debug("analyzed matrix %q: CR %.4f", nm.name, r.Consistency.CR)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func analyzeOne(cfg Config, alternatives []string, nm namedMatrix, defaultScale scale.Type) (MatrixResult, error) {
	m, err := build(alternatives, nm.judgments, defaultScale)
	if err != nil {
		return MatrixResult{}, err
	}

	eigen := m.Weights(ahp.Eigenvector)
	geometric := m.Weights(ahp.GeometricMean)
	weights := eigen
	if cfg.Method == ahp.GeometricMean {
		weights = geometric
	}

	return MatrixResult{
		Name:             nm.name,
		Alternatives:     alternatives,
		Weights:          weights,
		EigenWeights:     eigen,
		GeometricWeights: geometric,
		Ranks:            ahp.Ranks(weights),
		Consistency:      ahp.Check(m, weights, cfg.Threshold),
	}, nil
}
