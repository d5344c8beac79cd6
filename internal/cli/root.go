package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/rihla/internal/backup"
	"github.com/julianstephens/rihla/internal/challenge"
	"github.com/julianstephens/rihla/internal/config"
	"github.com/julianstephens/rihla/internal/ledger"
	"github.com/julianstephens/rihla/internal/logger"
	"github.com/julianstephens/rihla/internal/models"
	"github.com/julianstephens/rihla/internal/settings"
	"github.com/julianstephens/rihla/internal/storage"
)

// Previewer sends a single reminder preview to the desktop.
type Previewer interface {
	Preview(ctx context.Context, r models.Reminder, sound string) error
}

// Context is handed to every command's Run method. The ledger and settings
// services are built on first use so that init can run against a store that
// has not been created yet.
type Context struct {
	Store    storage.Provider
	Config   config.Config
	Provider challenge.Provider
	Notifier Previewer
	Now      func() time.Time

	ledger   *ledger.Service
	settings *settings.Store
	session  *challenge.Session
}

func (c *Context) clock() func() time.Time {
	if c.Now != nil {
		return c.Now
	}
	return time.Now
}

// Ledger returns the command's ledger service.
func (c *Context) Ledger() (*ledger.Service, error) {
	if c.ledger == nil {
		svc, err := ledger.New(c.Store, ledger.WithClock(c.clock()))
		if err != nil {
			return nil, err
		}
		c.ledger = svc
	}
	return c.ledger, nil
}

// Settings returns the command's settings store.
func (c *Context) Settings() (*settings.Store, error) {
	if c.settings == nil {
		st, err := settings.New(c.Store)
		if err != nil {
			return nil, err
		}
		c.settings = st
	}
	return c.settings, nil
}

// Session returns the challenge session, fetching inspiration and the daily
// challenge the first time it is used and installing the challenge on the
// ledger.
func (c *Context) Session(ctx context.Context) (string, models.DailyChallenge, error) {
	svc, err := c.Ledger()
	if err != nil {
		return "", models.DailyChallenge{}, err
	}
	if c.session == nil {
		c.session = challenge.NewSession(c.Provider)
	}
	text, ch := c.session.Start(ctx, svc.Ledger().Points)
	installed, ok := svc.Challenge()
	if !ok {
		svc.SetChallenge(ch)
		installed, _ = svc.Challenge()
	}
	return text, installed, nil
}

// Seed writes the default ledger and settings snapshots when they are
// missing, so a fresh store starts out complete.
func (c *Context) Seed() error {
	svc, err := c.Ledger()
	if err != nil {
		return err
	}
	st, err := c.Settings()
	if err != nil {
		return err
	}
	if err := svc.Save(); err != nil {
		return err
	}
	if err := st.Save(); err != nil {
		return err
	}
	logger.Debug("Seeded store", "path", c.Store.GetConfigPath())
	return nil
}

// PerformAutomaticBackup backs up file-backed stores when enabled. Failures
// are logged and never interrupt the command.
func (c *Context) PerformAutomaticBackup() {
	if !c.Config.AutoBackup {
		return
	}
	mgr, err := backup.NewManager(c.Store.GetConfigPath())
	if err != nil {
		logger.Debug("Skipping automatic backup", "reason", err)
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Check renders a done/not-done marker.
func Check(done bool) string {
	if done {
		return "✓"
	}
	return "·"
}

// Bar renders a fixed-width progress bar for a percentage.
func Bar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// Signed formats a point change with an explicit sign.
func Signed(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}
