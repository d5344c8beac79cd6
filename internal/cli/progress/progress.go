// Package progress holds the commands that record the day's devotional
// activity on the ledger.
package progress

import (
	"fmt"
	"strings"

	"github.com/julianstephens/rihla/internal/catalog"
	"github.com/julianstephens/rihla/internal/cli"
	"github.com/julianstephens/rihla/internal/ledger"
	"github.com/julianstephens/rihla/internal/models"
)

// apply runs one ledger operation and prints the resulting point change.
func apply(ctx *cli.Context, label string, op func(svc *ledger.Service) error) error {
	svc, err := ctx.Ledger()
	if err != nil {
		return err
	}
	before := svc.Ledger().Points
	if err := op(svc); err != nil {
		return err
	}
	l := svc.Ledger()
	fmt.Printf("%s (%s, total %d, %s)\n", label, cli.Signed(l.Points-before), l.Points, l.Level)
	return nil
}

func parsePrayer(id string) (models.PrayerKey, error) {
	key := models.PrayerKey(strings.ToLower(id))
	if catalog.IsPrayer(key) {
		return key, nil
	}
	var keys []string
	for _, p := range catalog.Prayers {
		keys = append(keys, string(p.Key))
	}
	return "", fmt.Errorf("unknown prayer %q (one of: %s)", id, strings.Join(keys, ", "))
}

func prayerLabel(key models.PrayerKey) string {
	for _, p := range catalog.Prayers {
		if p.Key == key {
			return p.Label
		}
	}
	return string(key)
}

type PrayerCmd struct {
	ID           string `arg:"" help:"Prayer: fajr, dhuhr, asr, maghrib or isha."`
	Congregation bool   `short:"c" help:"Prayed in congregation."`
	Undo         bool   `help:"Clear the prayer."`
}

func (c *PrayerCmd) Run(ctx *cli.Context) error {
	key, err := parsePrayer(c.ID)
	if err != nil {
		return err
	}
	label := prayerLabel(key)
	switch {
	case c.Undo:
		return apply(ctx, label+" cleared", func(svc *ledger.Service) error {
			return svc.SetPrayer(key, false, false)
		})
	case c.Congregation:
		return apply(ctx, label+" prayed in congregation", func(svc *ledger.Service) error {
			return svc.SetPrayer(key, true, true)
		})
	default:
		return apply(ctx, label+" prayed", func(svc *ledger.Service) error {
			return svc.SetPrayer(key, true, false)
		})
	}
}

// RemembranceCmd toggles the remembrance after a prayer.
type RemembranceCmd struct {
	Prayer string `arg:"" help:"Prayer the remembrance follows."`
}

func (c *RemembranceCmd) Run(ctx *cli.Context) error {
	key, err := parsePrayer(c.Prayer)
	if err != nil {
		return err
	}
	return apply(ctx, "Remembrance after "+prayerLabel(key)+" toggled", func(svc *ledger.Service) error {
		return svc.SetPostPrayerRemembrance(key)
	})
}

type NightCmd struct {
	Units int  `short:"u" required:"" help:"Units of night prayer (rounded down to an even number)."`
	Witr  bool `short:"w" help:"Closed with witr."`
}

func (c *NightCmd) Run(ctx *cli.Context) error {
	return apply(ctx, "Night prayer updated", func(svc *ledger.Service) error {
		return svc.SetNightPrayer(c.Units, c.Witr)
	})
}

type VoluntaryCmd struct {
	Units int `short:"u" required:"" help:"Units of voluntary prayer (rounded down to an even number)."`
}

func (c *VoluntaryCmd) Run(ctx *cli.Context) error {
	return apply(ctx, "Voluntary prayer updated", func(svc *ledger.Service) error {
		return svc.SetVoluntaryPrayer(c.Units)
	})
}

type DeedCmd struct {
	Key string `arg:"" help:"Good deed: iftar, sadaqah or general."`
}

func (c *DeedCmd) Run(ctx *cli.Context) error {
	key := models.GoodDeed(strings.ToLower(c.Key))
	if !catalog.IsGoodDeed(key) {
		var keys []string
		for _, d := range catalog.GoodDeeds {
			keys = append(keys, string(d.Key))
		}
		return fmt.Errorf("unknown good deed %q (one of: %s)", c.Key, strings.Join(keys, ", "))
	}
	return apply(ctx, "Good deed toggled", func(svc *ledger.Service) error {
		return svc.SetGoodDeed(key)
	})
}

type QuranCmd struct {
	Pages QuranPagesCmd `cmd:"" help:"Set pages read today."`
	Parts QuranPartsCmd `cmd:"" help:"Set parts (juz) read today."`
}

type QuranPagesCmd struct {
	N int `arg:"" help:"Pages read today."`
}

func (c *QuranPagesCmd) Run(ctx *cli.Context) error {
	return apply(ctx, "Pages updated", func(svc *ledger.Service) error {
		return svc.SetScripturePages(c.N)
	})
}

type QuranPartsCmd struct {
	N int `arg:"" help:"Parts read today."`
}

func (c *QuranPartsCmd) Run(ctx *cli.Context) error {
	return apply(ctx, "Parts updated", func(svc *ledger.Service) error {
		return svc.SetScriptureParts(c.N)
	})
}
