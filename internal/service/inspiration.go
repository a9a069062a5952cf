package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/schedule"
)

// QuoteGenerator produces one encouragement message on demand
type QuoteGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// Quote is the daily encouragement shown on the dashboard
type Quote struct {
	Text   string `json:"text"`
	Date   string `json:"date"`
	Source string `json:"source"` // "generated" or "builtin"
}

// builtinQuotes is the deterministic fallback rotation used when no
// generator is configured or generation fails.
var builtinQuotes = []string{
	"Caring for someone is one of the hardest jobs there is. You showed up again today, and that matters.",
	"You cannot pour from an empty cup. Take five minutes for yourself today.",
	"Small acts of care add up to something enormous. Yours already have.",
	"It is okay to not have all the answers. Being present counts for more than being perfect.",
	"Rest is not a luxury. It is part of the work.",
	"The patience you give every day is a quiet kind of strength.",
	"Asking for help is a skill, not a failure.",
	"You noticed what they needed before they asked. That attention is a gift.",
	"Hard days do not erase the good you do. Tomorrow is another chance.",
	"Somebody's world is steadier because you are in it.",
}

// InspirationService serves one quote per calendar day. The current day
// is recomputed from the injected clock on every call rather than
// tracked by a timer, so the quote rolls over correctly across midnight,
// process restarts and clock adjustments.
type InspirationService struct {
	generator QuoteGenerator
	logger    *zap.Logger
	now       func() time.Time

	mu         sync.Mutex
	currentDay string
	quote      Quote
}

// NewInspirationService creates a new InspirationService. generator may
// be nil, in which case the built-in rotation is used. now may be nil,
// in which case the wall clock is used.
func NewInspirationService(generator QuoteGenerator, logger *zap.Logger, now func() time.Time) *InspirationService {
	if now == nil {
		now = time.Now
	}
	return &InspirationService{
		generator: generator,
		logger:    logger,
		now:       now,
	}
}

// QuoteOfTheDay returns the quote for the current calendar day,
// generating or rotating to a fresh one when the day has changed since
// the last call.
func (s *InspirationService) QuoteOfTheDay(ctx context.Context) Quote {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now()
	day := today.Format(schedule.DateKey)
	if day == s.currentDay {
		return s.quote
	}

	s.quote = s.freshQuote(ctx, today, day)
	s.currentDay = day

	s.logger.Info("daily quote rotated",
		zap.String("date", day),
		zap.String("source", s.quote.Source),
	)

	return s.quote
}

func (s *InspirationService) freshQuote(ctx context.Context, today time.Time, day string) Quote {
	if s.generator != nil {
		text, err := s.generator.Generate(ctx)
		if err == nil {
			return Quote{Text: text, Date: day, Source: "generated"}
		}
		s.logger.Warn("quote generation failed, falling back to builtin rotation", zap.Error(err))
	}

	// Deterministic pick: the same calendar day always yields the same
	// builtin quote.
	epochDays := today.Unix() / 86400
	index := int(epochDays % int64(len(builtinQuotes)))
	if index < 0 {
		index += len(builtinQuotes)
	}

	return Quote{Text: builtinQuotes[index], Date: day, Source: "builtin"}
}
