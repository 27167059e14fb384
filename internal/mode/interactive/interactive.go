// ABOUTME: Interactive Bubble Tea mode: runs the comparison TUI to completion
// ABOUTME: Owns the program lifecycle; the app model does the actual work

package interactive

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/prefscale-go/internal/config"
	"github.com/mauromedda/prefscale-go/internal/keybindings"
	"github.com/mauromedda/prefscale-go/internal/session"
)

// Deps provides the wired collaborators for the interactive mode.
type Deps struct {
	Session  *session.Session
	Keys     *keybindings.Manager
	Settings *config.Settings
}

// Run drives the comparison TUI until the user quits or every pair is
// judged. It returns the final report if the session completed.
func Run(deps Deps) (*session.Report, error) {
	if deps.Session == nil {
		return nil, fmt.Errorf("interactive mode needs a session")
	}
	if deps.Keys == nil {
		deps.Keys = keybindings.NewFromBindings(config.NewKeybindings())
	}
	if deps.Settings == nil {
		deps.Settings = config.Default()
	}

	model := NewAppModel(deps)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running TUI: %w", err)
	}

	app, ok := final.(AppModel)
	if !ok || !app.session.Finished() {
		return nil, nil
	}
	return app.session.Report()
}
