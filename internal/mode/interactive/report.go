// ABOUTME: Report view: renders the markdown report through glamour
// ABOUTME: Caches rendered output keyed by content hash and width

package interactive

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/mauromedda/prefscale-go/internal/export"
	"github.com/mauromedda/prefscale-go/internal/session"
)

// ReportModel renders the final report for the terminal.
type ReportModel struct {
	cache map[string]string // "hash:width" -> rendered
}

// NewReportModel creates a ReportModel with an empty cache.
func NewReportModel() ReportModel {
	return ReportModel{cache: make(map[string]string)}
}

// View renders the report as styled markdown fitted to the given size.
func (m ReportModel) View(r *session.Report, width, height int) string {
	md := export.Markdown(r)
	rendered := m.render(md, width)

	lines := strings.Split(rendered, "\n")
	if height > 2 && len(lines) > height-1 {
		lines = lines[:height-1]
	}
	return strings.Join(lines, "\n") + "\n"
}

func (m ReportModel) render(md string, width int) string {
	if width < 20 {
		width = 20
	}
	key := cacheKey(md, width)
	if cached, ok := m.cache[key]; ok {
		return cached
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}
	rendered = strings.TrimRight(rendered, "\n ")

	m.cache[key] = rendered
	return rendered
}

// cacheKey produces a string key from content hash and width.
func cacheKey(content string, width int) string {
	h := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x:%d", h[:8], width)
}
