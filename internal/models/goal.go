package models

// WeeklyGoal is a countable target for one week, keyed by the week's Monday.
type WeeklyGoal struct {
	ID       string `json:"id"`
	WeekKey  string `json:"week_key"` // YYYY-MM-DD of the week's Monday
	Text     string `json:"text"`
	Target   int    `json:"target"`
	Current  int    `json:"current"`
	Category string `json:"category"`
}

// Done reports whether the goal has reached its target.
func (g WeeklyGoal) Done() bool {
	return g.Current >= g.Target
}

// Percent returns progress toward the target, capped at 100.
func (g WeeklyGoal) Percent() int {
	if g.Target <= 0 {
		return 0
	}
	p := g.Current * 100 / g.Target
	if p > 100 {
		return 100
	}
	return p
}
