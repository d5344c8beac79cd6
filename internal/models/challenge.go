package models

// DailyChallenge is the session-scoped bonus task. It is never persisted;
// only the points it awarded are kept on the ledger for the day.
type DailyChallenge struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PointsValue int    `json:"points"`
	Completed   bool   `json:"-"`
}
