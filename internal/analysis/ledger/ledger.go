// Package ledger builds the chronologically ordered, running-balance
// annotated projection of a trade set against a plan. The ledger is a
// transient per-invocation projection: it is never persisted and has no
// identity of its own.
package ledger

import (
	"fmt"
	"sort"
	"time"

	"tradementor/internal/models"
)

// Entry is one ledger row: the originating trade plus its chronological
// sequence number, running totals and derived events.
type Entry struct {
	models.Trade

	Seq            int                  `json:"seq"`
	RunningResult  float64              `json:"runningResult"`
	RunningBalance float64              `json:"runningBalance"`
	Events         []models.LedgerEvent `json:"events,omitempty"`
}

// HasEvent reports whether the entry carries the given event.
func (e Entry) HasEvent(ev models.LedgerEvent) bool {
	for _, got := range e.Events {
		if got == ev {
			return true
		}
	}
	return false
}

// Options controls ledger construction.
type Options struct {
	// From/To bound the trade dates included in the ledger (inclusive).
	// A zero value leaves that side unbounded.
	From time.Time
	To   time.Time
}

// Build filters, orders and annotates trades into a ledger. An empty or nil
// trade list yields an empty ledger. Trades without a date are dropped here
// (the ledger is order-sensitive); legacy emotion aliases are resolved here
// and nowhere else, so everything downstream sees the canonical field.
func Build(trades []models.Trade, plan models.Plan, opts Options) []Entry {
	sorted := prepare(trades, opts)
	if len(sorted) == 0 {
		return []Entry{}
	}

	base := plan.BasePL()
	var goalAmount, stopAmount float64
	if base > 0 {
		if pct := plan.GoalPct(); pct > 0 {
			goalAmount = base * pct / 100
		}
		if pct := plan.StopPct(); pct > 0 {
			stopAmount = base * pct / 100
		}
	}

	entries := make([]Entry, 0, len(sorted))
	var running float64
	var goalHit, stopHit bool
	for i, t := range sorted {
		running += t.Result
		e := Entry{
			Trade:          t,
			Seq:            i + 1,
			RunningResult:  running,
			RunningBalance: base + running,
		}

		switch {
		case goalHit:
			e.Events = append(e.Events, models.EventPostGoal)
		case stopHit:
			e.Events = append(e.Events, models.EventPostStop)
		case goalAmount > 0 && running >= goalAmount:
			goalHit = true
			e.Events = append(e.Events, models.EventGoalHit)
		case stopAmount > 0 && running <= -stopAmount:
			stopHit = true
			e.Events = append(e.Events, models.EventStopHit)
		}

		if roBreached(t, plan, base) {
			e.Events = append(e.Events, models.EventROFora)
		}
		if t.Compliance != nil && t.Compliance.RRStatus == models.ComplianceNaoConforme {
			e.Events = append(e.Events, models.EventRRFora)
		}

		entries = append(entries, e)
	}
	return entries
}

// Normalize returns a filtered, chronologically sorted copy of the trades
// with the legacy emotion alias resolved. Detectors and scoring operate on
// this canonical view.
func Normalize(trades []models.Trade, opts Options) []models.Trade {
	return prepare(trades, opts)
}

// Trades extracts the normalized trades from a ledger.
func Trades(entries []Entry) []models.Trade {
	out := make([]models.Trade, len(entries))
	for i, e := range entries {
		out[i] = e.Trade
	}
	return out
}

// Violations counts the compliance violation events across the ledger.
func Violations(entries []Entry) int {
	var n int
	for _, e := range entries {
		for _, ev := range e.Events {
			if ev.IsViolation() {
				n++
			}
		}
	}
	return n
}

// Summary renders a one-line description of the ledger extent, used in
// logs and reports.
func Summary(entries []Entry) string {
	if len(entries) == 0 {
		return "empty ledger"
	}
	last := entries[len(entries)-1]
	return fmt.Sprintf("%d trades, net %.2f", len(entries), last.RunningResult)
}

// prepare filters out undated trades, applies the date range, resolves the
// legacy emotion alias and stable-sorts by (date, entry time). The stable
// sort keeps input order as the deterministic tie-break of last resort.
func prepare(trades []models.Trade, opts Options) []models.Trade {
	out := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if t.Date.IsZero() {
			continue
		}
		if !opts.From.IsZero() && t.Date.Before(opts.From) {
			continue
		}
		if !opts.To.IsZero() && t.Date.After(opts.To) {
			continue
		}
		if t.EmotionEntry == "" && t.Emotion != "" {
			t.EmotionEntry = t.Emotion
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].EntryTime.Before(out[j].EntryTime)
	})
	return out
}

// roBreached applies the risk-per-operation check. Pre-computed compliance
// always wins; the local percentage fallback runs only when the trade has
// no compliance data and the plan sets a threshold.
func roBreached(t models.Trade, plan models.Plan, base float64) bool {
	if t.Compliance != nil {
		return t.Compliance.ROStatus == models.ComplianceForaDoPlano
	}
	if plan.RiskPerOperation <= 0 || base <= 0 || t.Result >= 0 {
		return false
	}
	return -t.Result/base*100 > plan.RiskPerOperation
}
