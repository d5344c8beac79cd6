package system

import (
	"fmt"

	"github.com/julianstephens/rihla/internal/cli"
	"github.com/julianstephens/rihla/internal/constants"
	"github.com/julianstephens/rihla/internal/validation"
)

type ValidateCmd struct {
	Fix bool `help:"Repair the conflicts that have a single correct answer."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	l, st, err := rawSnapshots(ctx)
	if err != nil {
		return err
	}

	result := validation.New().Validate(l, st)
	fmt.Print(result.FormatReport())
	if !result.HasConflicts() {
		fmt.Println()
		return nil
	}
	if !c.Fix {
		return fmt.Errorf("%d conflict(s) found; run 'rihla validate --fix' to repair", len(result.Conflicts))
	}

	fixed, actions := validation.Fix(l, result.Conflicts)
	if len(actions) > 0 {
		if err := ctx.Store.SaveLedger(fixed); err != nil {
			return fmt.Errorf("failed to save repaired ledger: %w", err)
		}
	}

	settingsFixed := false
	for _, conflict := range result.Conflicts {
		if conflict.Snapshot == constants.SettingsSnapshot {
			settingsFixed = true
			break
		}
	}
	if settingsFixed {
		// loading normalizes the order, selection, reminders and sound
		store, err := ctx.Settings()
		if err != nil {
			return err
		}
		if err := store.Save(); err != nil {
			return err
		}
		actions = append(actions, validation.FixAction{Action: "Normalized settings"})
	}

	fmt.Println("\nRepairs:")
	for _, a := range actions {
		fmt.Printf("- %s\n", a.Action)
	}
	return nil
}
