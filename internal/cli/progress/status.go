package progress

import (
	"context"
	"fmt"

	"github.com/julianstephens/rihla/internal/catalog"
	"github.com/julianstephens/rihla/internal/challenge"
	"github.com/julianstephens/rihla/internal/cli"
	"github.com/julianstephens/rihla/internal/ledger"
	"github.com/julianstephens/rihla/internal/rules"
)

// StatusCmd prints the dashboard.
type StatusCmd struct {
	Offline bool `help:"Skip the inspiration request and show the built-in text."`
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Ledger()
	if err != nil {
		return err
	}

	inspiration := challenge.FallbackInspiration
	if !c.Offline {
		if inspiration, _, err = ctx.Session(context.Background()); err != nil {
			return err
		}
	}

	l := svc.Ledger()
	next := rules.NextLevel(l.Points)

	fmt.Printf("%s\n\n", inspiration)
	fmt.Printf("Points:      %d\n", l.Points)
	fmt.Printf("Level:       %s\n", l.Level)
	if next.Next != "" {
		fmt.Printf("Next level:  %s %s %d to go\n", next.Next, cli.Bar(next.Percent, 20), next.Remaining)
	}
	fmt.Printf("Streak:      %d day(s)\n", l.StreakDays)
	fmt.Printf("Today:       %d points\n", svc.DailyDeedPoints())
	fmt.Printf("Prayers:     %s %.0f%%\n\n", cli.Bar(rules.PrayerProgress(l), 20), rules.PrayerProgress(l))

	for _, p := range catalog.Prayers {
		rec := l.Prayers[p.Key]
		how := ""
		if rec.Completed && rec.Congregational {
			how = " (congregation)"
		}
		fmt.Printf("  %s %-8s %s%s  remembrance %s\n", cli.Check(rec.Completed), p.Label, p.Time, how, cli.Check(l.PostPrayer[p.Key]))
	}
	fmt.Println()
	fmt.Printf("  Night prayer: %d units, witr %s\n", l.Night.Units, cli.Check(l.Night.Witr))
	fmt.Printf("  Voluntary:    %d units\n", l.Voluntary.Units)
	fmt.Printf("  Quran:        %d pages, %d parts\n", l.Scripture.Pages, l.Scripture.Parts)
	for _, d := range catalog.GoodDeeds {
		fmt.Printf("  %s %s\n", cli.Check(l.GoodDeeds[d.Key]), d.Label)
	}
	return nil
}

// ChallengeCmd shows the session's daily challenge and optionally completes it.
type ChallengeCmd struct {
	Done bool `help:"Mark the challenge as completed."`
}

func (c *ChallengeCmd) Run(ctx *cli.Context) error {
	_, ch, err := ctx.Session(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("%s (+%d)\n%s\n", ch.Title, rules.ChallengePoints(ch), ch.Description)
	if ch.Completed {
		fmt.Println("Already completed today.")
		return nil
	}
	if !c.Done {
		return nil
	}
	return apply(ctx, "Challenge completed", func(svc *ledger.Service) error {
		return svc.CompleteChallenge()
	})
}

// JourneyCmd shows levels, badges and the companion leaderboard.
type JourneyCmd struct{}

func (c *JourneyCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Ledger()
	if err != nil {
		return err
	}
	l := svc.Ledger()

	fmt.Println("Levels")
	for _, tier := range catalog.Levels {
		marker := " "
		if tier.Name == l.Level {
			marker = "▸"
		}
		fmt.Printf("  %s %-11s %7d\n", marker, tier.Name, tier.MinPoints)
	}
	next := rules.NextLevel(l.Points)
	if next.Next != "" {
		fmt.Printf("  %s %.0f%% towards %s\n", cli.Bar(next.Percent, 20), next.Percent, next.Next)
	}

	fmt.Println("\nBadges")
	for _, b := range rules.Badges(l) {
		fmt.Printf("  %s %-24s %s\n", cli.Check(b.IsUnlocked), b.Title, b.Description)
	}

	fmt.Println("\nCompanions")
	for _, row := range rules.Leaderboard(l.Points) {
		name := row.Name
		if row.IsMe {
			name += " ◂"
		}
		fmt.Printf("  %d. %-16s %d\n", row.Rank, name, row.Points)
	}
	return nil
}
