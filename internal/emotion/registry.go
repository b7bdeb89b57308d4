// Package emotion provides the emotion registry: the static mapping from
// emotion identifier to category, score and behavioral pattern that every
// core function consumes as an explicit snapshot.
package emotion

import (
	"strings"

	"tradementor/internal/models"
)

// Behavioral pattern tags used for qualitative grouping by the detectors.
const (
	PatternDisciplined = "disciplined"
	PatternCalm        = "calm"
	PatternImpulsive   = "impulsive"
	PatternAnxious     = "anxious"
	PatternFearful     = "fearful"
	PatternRevenge     = "revenge"
	PatternFOMO        = "fomo"
	PatternGreed       = "greed"
	PatternEuphoric    = "euphoric"
	PatternFatigued    = "fatigued"
	PatternNeutral     = "neutral"
)

// Definition is one registry entry. Score is the emotion's contribution
// weight in [-4, +3]; Label and Emoji are presentation only.
type Definition struct {
	ID                string                 `json:"id"`
	Label             string                 `json:"label"`
	Emoji             string                 `json:"emoji,omitempty"`
	Category          models.EmotionCategory `json:"category"`
	Score             int                    `json:"score"`
	BehavioralPattern string                 `json:"behavioralPattern,omitempty"`
}

// Registry is an immutable snapshot of emotion definitions keyed by
// lowercase ID. The engine never subscribes to live registry updates; a
// snapshot is passed into every invocation.
type Registry struct {
	defs map[string]Definition
}

// NewRegistry builds a registry snapshot from definitions. Later entries
// with a duplicate ID overwrite earlier ones.
func NewRegistry(defs []Definition) *Registry {
	m := make(map[string]Definition, len(defs))
	for _, d := range defs {
		m[normalize(d.ID)] = d
	}
	return &Registry{defs: m}
}

// Lookup resolves an emotion ID. Unknown or empty IDs resolve to a neutral
// definition with score 0 so missing data never breaks the analysis.
func (r *Registry) Lookup(id string) Definition {
	if r != nil {
		if d, ok := r.defs[normalize(id)]; ok {
			return d
		}
	}
	return Definition{
		ID:                id,
		Category:          models.CategoryNeutral,
		BehavioralPattern: PatternNeutral,
	}
}

// Score returns the contribution weight of an emotion ID, 0 when unmapped.
func (r *Registry) Score(id string) int {
	return r.Lookup(id).Score
}

// Category returns the category of an emotion ID, NEUTRAL when unmapped.
func (r *Registry) Category(id string) models.EmotionCategory {
	return r.Lookup(id).Category
}

// Pattern returns the behavioral pattern tag of an emotion ID.
func (r *Registry) Pattern(id string) string {
	return r.Lookup(id).BehavioralPattern
}

// Len returns the number of definitions in the snapshot.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.defs)
}

// Definitions returns a copy of the snapshot's definitions.
func (r *Registry) Definitions() []Definition {
	if r == nil {
		return nil
	}
	out := make([]Definition, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	return out
}

func normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// DefaultRegistry returns the stock emotion set used until an administrator
// customizes it. Category/score sign conventions follow the registry
// invariant: POSITIVE/NEUTRAL >= 0, NEGATIVE/CRITICAL <= 0, with euphoria
// as the encoded exception (positive-feeling, risk-negative weight).
func DefaultRegistry() *Registry {
	return NewRegistry([]Definition{
		{ID: "confiante", Label: "Confiante", Emoji: "😎", Category: models.CategoryPositive, Score: 3, BehavioralPattern: PatternDisciplined},
		{ID: "disciplinado", Label: "Disciplinado", Emoji: "🎯", Category: models.CategoryPositive, Score: 3, BehavioralPattern: PatternDisciplined},
		{ID: "calmo", Label: "Calmo", Emoji: "😌", Category: models.CategoryPositive, Score: 2, BehavioralPattern: PatternCalm},
		{ID: "focado", Label: "Focado", Emoji: "🧘", Category: models.CategoryPositive, Score: 2, BehavioralPattern: PatternDisciplined},
		{ID: "euforico", Label: "Eufórico", Emoji: "🤩", Category: models.CategoryPositive, Score: -1, BehavioralPattern: PatternEuphoric},
		{ID: "neutro", Label: "Neutro", Emoji: "😐", Category: models.CategoryNeutral, Score: 0, BehavioralPattern: PatternNeutral},
		{ID: "cansado", Label: "Cansado", Emoji: "🥱", Category: models.CategoryNegative, Score: -1, BehavioralPattern: PatternFatigued},
		{ID: "ansioso", Label: "Ansioso", Emoji: "😰", Category: models.CategoryNegative, Score: -2, BehavioralPattern: PatternAnxious},
		{ID: "medo", Label: "Medo", Emoji: "😨", Category: models.CategoryNegative, Score: -2, BehavioralPattern: PatternFearful},
		{ID: "frustrado", Label: "Frustrado", Emoji: "😤", Category: models.CategoryNegative, Score: -2, BehavioralPattern: PatternImpulsive},
		{ID: "raiva", Label: "Raiva", Emoji: "😡", Category: models.CategoryNegative, Score: -2, BehavioralPattern: PatternImpulsive},
		{ID: "fomo", Label: "FOMO", Emoji: "🏃", Category: models.CategoryNegative, Score: -3, BehavioralPattern: PatternFOMO},
		{ID: "ganancia", Label: "Ganância", Emoji: "🤑", Category: models.CategoryNegative, Score: -3, BehavioralPattern: PatternGreed},
		{ID: "vinganca", Label: "Vingança", Emoji: "⚔️", Category: models.CategoryCritical, Score: -4, BehavioralPattern: PatternRevenge},
		{ID: "panico", Label: "Pânico", Emoji: "😱", Category: models.CategoryCritical, Score: -4, BehavioralPattern: PatternFearful},
	})
}
