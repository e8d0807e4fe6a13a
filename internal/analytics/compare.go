package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/daycompass/internal/constants"
	"github.com/julianstephens/daycompass/internal/utils"
)

// Trend is the direction of a week-over-week change.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// ClassifyTrend compares two values. Differences smaller than 0.5 in
// magnitude are flat. With invert set, a decrease counts as up, for metrics
// where lower is better.
func ClassifyTrend(curr, prev float64, invert bool) Trend {
	diff := curr - prev
	if math.Abs(diff) < constants.TrendFlatThreshold {
		return TrendFlat
	}
	if (diff > 0) != invert {
		return TrendUp
	}
	return TrendDown
}

// Delta is the week-over-week change of one metric.
type Delta struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Diff     float64 `json:"diff"`
	Trend    Trend   `json:"trend"`
}

func newDelta(curr, prev float64, invert bool) Delta {
	return Delta{
		Current:  curr,
		Previous: prev,
		Diff:     curr - prev,
		Trend:    ClassifyTrend(curr, prev, invert),
	}
}

// Label renders the change as "12% up", "0.5 down" or "Flat".
// Whole differences print without decimals.
func (d Delta) Label(suffix string) string {
	if d.Trend == TrendFlat {
		return "Flat"
	}
	abs := math.Abs(d.Diff)
	var num string
	if math.Mod(d.Diff, 1) == 0 {
		num = fmt.Sprintf("%.0f", abs)
	} else {
		num = fmt.Sprintf("%.1f", abs)
	}
	return fmt.Sprintf("%s%s %s", num, suffix, d.Trend)
}

// Comparison holds the week-over-week deltas shown next to the current week.
type Comparison struct {
	CompletionRate Delta `json:"completion_rate"`
	AverageEnergy  Delta `json:"average_energy"`
	TotalTime      Delta `json:"total_time"`
}

// Compare returns nil when there is no previous week to compare against.
func Compare(current WeeklyStats, previous *WeeklyStats) *Comparison {
	if previous == nil {
		return nil
	}
	return &Comparison{
		CompletionRate: newDelta(float64(current.CompletionRate), float64(previous.CompletionRate), false),
		AverageEnergy:  newDelta(current.AverageEnergy, previous.AverageEnergy, false),
		TotalTime:      newDelta(float64(current.TotalTimeSpent), float64(previous.TotalTimeSpent), false),
	}
}

// LoadPreviousWeekStats computes the stats of the week before anchor's week.
// It returns nil when that week has no tasks and no energy check-ins at all,
// so an empty week is never compared as "0% vs 0%".
func LoadPreviousWeekStats(store DayReader, anchor time.Time, opts ...StatsOption) *WeeklyStats {
	prevAnchor := utils.AddDays(anchor, -constants.DaysPerWeek)
	days := LoadWeekDays(store, prevAnchor)

	empty := true
	for _, d := range days {
		if !d.IsBlank() {
			empty = false
			break
		}
	}
	if empty {
		return nil
	}

	stats := ComputeWeeklyStats(days, prevAnchor, opts...)
	return &stats
}

// Report bundles a week's stats with its comparison to the week before.
type Report struct {
	Stats      WeeklyStats  `json:"stats"`
	Previous   *WeeklyStats `json:"previous,omitempty"`
	Comparison *Comparison  `json:"comparison,omitempty"`
}

// BuildReport loads and computes the week of anchor and the week before it.
func BuildReport(store DayReader, anchor time.Time, opts ...StatsOption) Report {
	stats := ComputeWeeklyStats(LoadWeekDays(store, anchor), anchor, opts...)
	prev := LoadPreviousWeekStats(store, anchor, opts...)
	return Report{
		Stats:      stats,
		Previous:   prev,
		Comparison: Compare(stats, prev),
	}
}
