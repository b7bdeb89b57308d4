package detect

import (
	"reflect"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"tradementor/internal/emotion"
	"tradementor/internal/models"
)

// emotionIDGen picks from the stock registry plus an unknown ID.
func emotionIDGen() gopter.Gen {
	return gen.OneConstOf(
		"confiante", "calmo", "neutro", "cansado", "ansioso",
		"frustrado", "raiva", "fomo", "ganancia", "vinganca", "desconhecido",
	)
}

// detectorTradesGen generates a chronological trade list with mixed emotions
// and results.
func detectorTradesGen(maxLen int) gopter.Gen {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return gen.SliceOfN(maxLen, gen.Struct(reflect.TypeOf(models.Trade{}), map[string]gopter.Gen{
		"ID":           gen.Identifier(),
		"EmotionEntry": emotionIDGen(),
		"Result":       gen.Float64Range(-300.0, 300.0),
		"Qty":          gen.Float64Range(1, 20),
	})).Map(func(trades []models.Trade) []models.Trade {
		for i := range trades {
			entry := start.Add(time.Duration(i*20) * time.Minute)
			trades[i].Date = time.Date(entry.Year(), entry.Month(), entry.Day(), 0, 0, 0, 0, time.UTC)
			trades[i].EntryTime = entry
			trades[i].ExitTime = entry.Add(10 * time.Minute)
		}
		return trades
	})
}

// TestProperty_TiltRunsMeetThreshold tests that every tilt finding reports a
// run at least as long as the configured threshold, with one trade ID per
// trade in the run.
func TestProperty_TiltRunsMeetThreshold(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)
	reg := emotion.DefaultRegistry()

	properties.Property("Tilt findings span at least the threshold", prop.ForAll(
		func(trades []models.Trade, threshold int) bool {
			cfg := Default().Tilt
			cfg.ConsecutiveTrades = threshold
			if cfg.CriticalRunLength < threshold {
				cfg.CriticalRunLength = threshold + 2
			}

			for _, f := range Tilt(trades, reg, cfg) {
				if f.Count < threshold {
					return false
				}
				if len(f.TradeIDs) != f.Count {
					return false
				}
			}
			return true
		},
		detectorTradesGen(40),
		gen.IntRange(2, 6),
	))

	properties.TestingRun(t)
}

// TestProperty_DetectorsAreDeterministic tests that the full detector pass
// yields identical findings for identical input.
func TestProperty_DetectorsAreDeterministic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)
	reg := emotion.DefaultRegistry()

	properties.Property("Identical input produces identical findings", prop.ForAll(
		func(trades []models.Trade) bool {
			cfg := Default()
			first := All(trades, reg, cfg)
			second := All(trades, reg, cfg)
			return reflect.DeepEqual(first, second)
		},
		detectorTradesGen(40),
	))

	properties.TestingRun(t)
}

// TestProperty_DetectorsNeverMutateInput tests that running the detector
// pass leaves the trade slice untouched.
func TestProperty_DetectorsNeverMutateInput(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)
	reg := emotion.DefaultRegistry()

	properties.Property("Input trades are never mutated", prop.ForAll(
		func(trades []models.Trade) bool {
			before := make([]models.Trade, len(trades))
			copy(before, trades)
			All(trades, reg, Default())
			return reflect.DeepEqual(before, trades)
		},
		detectorTradesGen(40),
	))

	properties.TestingRun(t)
}
