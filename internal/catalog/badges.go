package catalog

import "github.com/julianstephens/rihla/internal/models"

// Badge is unlocked while its predicate holds for the current ledger.
type Badge struct {
	ID          string
	Title       string
	Description string
	Unlocked    func(models.Ledger) bool
}

var Badges = []Badge{
	{ID: "b1", Title: "First steps", Description: "Reach your first 500 points",
		Unlocked: func(l models.Ledger) bool { return l.Points >= 500 }},
	{ID: "b2", Title: "Steadfast", Description: "Keep a 7 day streak",
		Unlocked: func(l models.Ledger) bool { return l.StreakDays >= 7 }},
	{ID: "b3", Title: "Knight of the night", Description: "Pray 8 units of qiyam",
		Unlocked: func(l models.Ledger) bool { return l.Night.Units >= 8 }},
	{ID: "b4", Title: "Companion of the Quran", Description: "Read a full juz",
		Unlocked: func(l models.Ledger) bool { return l.Scripture.Parts >= 1 }},
	{ID: "b5", Title: "Generous giver", Description: "Give sadaqah",
		Unlocked: func(l models.Ledger) bool { return l.GoodDeeds[models.DeedSadaqah] }},
	{ID: "b6", Title: "Role model", Description: "Reach the Role Model level",
		Unlocked: func(l models.Ledger) bool { return l.Points >= 100000 }},
}

// Companion is a member of the static companion group shown on the leaderboard.
type Companion struct {
	ID     string
	Name   string
	Points int
}

// Companions is fixed sample data; there is no group sync.
var Companions = []Companion{
	{ID: "1", Name: "Ahmad Mahmoud", Points: 4520},
	{ID: "2", Name: "Omar Khaled", Points: 4100},
	{ID: "3", Name: "Yassin Ali", Points: 3850},
}
