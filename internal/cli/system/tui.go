package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/rihla/internal/cli"
	"github.com/julianstephens/rihla/internal/notifier"
	"github.com/julianstephens/rihla/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Ledger()
	if err != nil {
		return err
	}
	st, err := ctx.Settings()
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	var n tui.Previewer = ctx.Notifier
	if ctx.Notifier == nil {
		n = notifier.New()
	}

	p := tea.NewProgram(tui.NewModel(tui.Options{
		Ledger:   svc,
		Settings: st,
		Provider: ctx.Provider,
		Notifier: n,
	}), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}
