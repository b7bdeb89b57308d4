// Package scoring aggregates per-trade emotional scores into a period
// score, a daily time series, a trend and a qualitative health status.
package scoring

import (
	"sort"

	"tradementor/internal/emotion"
	"tradementor/internal/models"
)

const (
	// Raw emotion scores live in [-4, +3]; the period score rescales their
	// mean linearly so -4 maps to 0 and +3 maps to 100.
	rawMin = -4.0
	rawMax = 3.0

	dayLayout = "2006-01-02"
)

// PeriodScore is the aggregate emotional score for a trade set.
type PeriodScore struct {
	Score        float64                        `json:"score"`
	Distribution map[models.EmotionCategory]int `json:"distribution"`
	Trend        models.Trend                   `json:"trend"`
}

// DailyScore is one point of the daily score time series.
type DailyScore struct {
	Date   string  `json:"date"`
	Score  float64 `json:"score"`
	Trades int     `json:"trades"`
}

// StatusThresholds is the configurable surface for status derivation.
type StatusThresholds struct {
	Healthy   float64 `mapstructure:"healthy"`
	Attention float64 `mapstructure:"attention"`
	Warning   float64 `mapstructure:"warning"`
	// ViolationPenalty is subtracted from the score once per compliance
	// violation before the tier lookup, floored at 0.
	ViolationPenalty float64 `mapstructure:"violation_penalty"`
}

// DefaultThresholds returns the documented default cutoffs.
func DefaultThresholds() StatusThresholds {
	return StatusThresholds{Healthy: 80, Attention: 60, Warning: 40, ViolationPenalty: 5}
}

// Clamped pulls out-of-range threshold values to valid bounds and keeps
// the cutoffs ordered so the tier mapping stays monotonic.
func (t StatusThresholds) Clamped() StatusThresholds {
	def := DefaultThresholds()
	if t.Healthy <= 0 || t.Healthy > 100 {
		t.Healthy = def.Healthy
	}
	if t.Attention <= 0 || t.Attention > 100 {
		t.Attention = def.Attention
	}
	if t.Warning <= 0 || t.Warning > 100 {
		t.Warning = def.Warning
	}
	if t.Attention > t.Healthy {
		t.Attention = t.Healthy
	}
	if t.Warning > t.Attention {
		t.Warning = t.Attention
	}
	if t.ViolationPenalty < 0 {
		t.ViolationPenalty = 0
	} else if t.ViolationPenalty == 0 {
		t.ViolationPenalty = def.ViolationPenalty
	}
	return t
}

// Scorer computes emotional scores against a registry snapshot.
type Scorer struct {
	reg          *emotion.Registry
	trendWindow  int
	trendEpsilon float64
}

// NewScorer creates a scorer with the default trend window.
func NewScorer(reg *emotion.Registry) *Scorer {
	return &Scorer{reg: reg, trendWindow: 3, trendEpsilon: 0.25}
}

// NewScorerWithTrend creates a scorer with a custom trend window and
// epsilon. Out-of-range values are clamped.
func NewScorerWithTrend(reg *emotion.Registry, window int, epsilon float64) *Scorer {
	if window < 2 {
		window = 2
	}
	if epsilon <= 0 {
		epsilon = 0.25
	}
	return &Scorer{reg: reg, trendWindow: window, trendEpsilon: epsilon}
}

// ScorePeriod computes the period score, category distribution and trend
// for the given trades. An empty trade set is a normal steady state for a
// new student and scores 100 with a STABLE trend.
func (s *Scorer) ScorePeriod(trades []models.Trade) PeriodScore {
	dist := make(map[models.EmotionCategory]int)
	if len(trades) == 0 {
		return PeriodScore{Score: 100, Distribution: dist, Trend: models.TrendStable}
	}

	var sum float64
	for _, t := range trades {
		def := s.reg.Lookup(t.EmotionEntry)
		dist[def.Category]++
		sum += float64(def.Score)
	}

	mean := sum / float64(len(trades))
	return PeriodScore{
		Score:        Rescale(mean),
		Distribution: dist,
		Trend:        s.trend(trades),
	}
}

// DailyScores groups trades by calendar date and averages each day's
// rescaled score, in chronological order.
func (s *Scorer) DailyScores(trades []models.Trade) []DailyScore {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, t := range trades {
		day := t.Date.Format(dayLayout)
		sums[day] += float64(s.reg.Score(t.EmotionEntry))
		counts[day]++
	}

	days := make([]string, 0, len(sums))
	for day := range sums {
		days = append(days, day)
	}
	sort.Strings(days)

	out := make([]DailyScore, 0, len(days))
	for _, day := range days {
		out = append(out, DailyScore{
			Date:   day,
			Score:  Rescale(sums[day] / float64(counts[day])),
			Trades: counts[day],
		})
	}
	return out
}

// trend compares the mean raw score of the most recent window against the
// preceding window. With fewer than two full windows the trend is STABLE
// by definition.
func (s *Scorer) trend(trades []models.Trade) models.Trend {
	n := s.trendWindow
	if len(trades) < 2*n {
		return models.TrendStable
	}

	recent := meanRaw(s.reg, trades[len(trades)-n:])
	previous := meanRaw(s.reg, trades[len(trades)-2*n:len(trades)-n])

	delta := recent - previous
	switch {
	case delta > s.trendEpsilon:
		return models.TrendImproving
	case delta < -s.trendEpsilon:
		return models.TrendWorsening
	default:
		return models.TrendStable
	}
}

func meanRaw(reg *emotion.Registry, trades []models.Trade) float64 {
	var sum float64
	for _, t := range trades {
		sum += float64(reg.Score(t.EmotionEntry))
	}
	return sum / float64(len(trades))
}

// StudentStatus maps the period score, penalized per compliance violation,
// onto a health tier. The mapping is monotonic: a lower adjusted score
// never yields a healthier tier.
func StudentStatus(score float64, violations int, th StatusThresholds) models.HealthStatus {
	th = th.Clamped()

	adjusted := score - float64(violations)*th.ViolationPenalty
	if adjusted < 0 {
		adjusted = 0
	}

	switch {
	case adjusted >= th.Healthy:
		return models.StatusHealthy
	case adjusted >= th.Attention:
		return models.StatusAttention
	case adjusted >= th.Warning:
		return models.StatusWarning
	default:
		return models.StatusCritical
	}
}

// Rescale maps a raw mean in [-4, +3] onto the 0-100 scale, clamped.
func Rescale(raw float64) float64 {
	score := (raw - rawMin) / (rawMax - rawMin) * 100
	return clamp(score, 0, 100)
}

// clamp restricts a value to the given range.
func clamp(value, minVal, maxVal float64) float64 {
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}
