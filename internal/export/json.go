// ABOUTME: JSON exporter for session reports using hand-written easyjson writers
// ABOUTME: Streams the document through a jwriter, no reflection on the hot path

package export

import (
	"io"

	"github.com/mailru/easyjson/jwriter"

	"github.com/mauromedda/prefscale-go/internal/session"
)

// JSON writes the report as a single JSON document to out.
func JSON(r *session.Report, out io.Writer) error {
	w := &jwriter.Writer{}
	writeReport(w, r)
	if w.Error != nil {
		return w.Error
	}
	_, err := w.DumpTo(out)
	return err
}

func writeReport(w *jwriter.Writer, r *session.Report) {
	w.RawByte('{')

	w.RawString(`"method":`)
	w.String(r.Method.String())

	w.RawString(`,"confidence":`)
	w.String(r.Confidence.String())
	w.RawString(`,"avg_reliability":`)
	w.Float64(r.AvgReliability)

	w.RawString(`,"alternatives":[`)
	for i, a := range r.Alternatives {
		if i > 0 {
			w.RawByte(',')
		}
		writeAlternative(w, a)
	}
	w.RawByte(']')

	w.RawString(`,"matrix":`)
	writeMatrix(w, r)

	w.RawString(`,"reliability":`)
	writeFloatRows(w, r.Reliability)

	w.RawString(`,"weights":{"eigenvector":`)
	writeFloats(w, r.EigenWeights)
	w.RawString(`,"geometric_mean":`)
	writeFloats(w, r.GeometricWeights)
	w.RawByte('}')

	w.RawString(`,"consistency":`)
	writeConsistency(w, r)

	w.RawByte('}')
}

func writeAlternative(w *jwriter.Writer, a session.AlternativeResult) {
	w.RawString(`{"name":`)
	w.String(a.Name)
	w.RawString(`,"weight":`)
	w.Float64(a.Weight)
	w.RawString(`,"rank":`)
	w.Int(a.Rank)
	w.RawString(`,"avg_reliability":`)
	w.Float64(a.AvgReliability)
	w.RawString(`,"confidence":`)
	w.String(a.Confidence.String())
	w.RawByte('}')
}

func writeMatrix(w *jwriter.Writer, r *session.Report) {
	n := r.Matrix.Size()
	w.RawByte('[')
	for i := range n {
		if i > 0 {
			w.RawByte(',')
		}
		w.RawByte('[')
		for j := range n {
			if j > 0 {
				w.RawByte(',')
			}
			w.Float64(r.Matrix.At(i, j))
		}
		w.RawByte(']')
	}
	w.RawByte(']')
}

func writeConsistency(w *jwriter.Writer, r *session.Report) {
	c := r.Consistency
	w.RawString(`{"lambda_max":`)
	w.Float64(c.LambdaMax)
	w.RawString(`,"ci":`)
	w.Float64(c.CI)
	w.RawString(`,"cr":`)
	w.Float64(c.CR)
	w.RawString(`,"threshold":`)
	w.Float64(c.Threshold)
	w.RawString(`,"consistent":`)
	w.Bool(c.Consistent)
	w.RawString(`,"recommendations":[`)
	for i, rec := range c.Recommendations {
		if i > 0 {
			w.RawByte(',')
		}
		w.String(rec)
	}
	w.RawString(`]}`)
}

func writeFloats(w *jwriter.Writer, vals []float64) {
	w.RawByte('[')
	for i, v := range vals {
		if i > 0 {
			w.RawByte(',')
		}
		w.Float64(v)
	}
	w.RawByte(']')
}

func writeFloatRows(w *jwriter.Writer, rows [][]float64) {
	w.RawByte('[')
	for i, row := range rows {
		if i > 0 {
			w.RawByte(',')
		}
		writeFloats(w, row)
	}
	w.RawByte(']')
}
