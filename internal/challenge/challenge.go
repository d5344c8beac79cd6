// Package challenge supplies the session's inspiration text and daily
// challenge. Providers never fail: any problem yields the static fallback.
package challenge

import (
	"context"
	"sync"

	"github.com/julianstephens/rihla/internal/constants"
	"github.com/julianstephens/rihla/internal/logger"
	"github.com/julianstephens/rihla/internal/models"
)

const (
	FallbackInspiration = "Seek help from Allah and do not give up. Allah will bring about ease after hardship."

	fallbackTitle       = "Spread the greeting of peace"
	fallbackDescription = "Greet ten people today, people you know or strangers, with the intention of following the Sunnah."
)

// Provider generates the inspiration text and the daily challenge.
type Provider interface {
	FetchInspiration(ctx context.Context) string
	FetchChallenge(ctx context.Context, points int) models.DailyChallenge
}

// FallbackChallenge is served whenever a provider cannot produce one.
func FallbackChallenge() models.DailyChallenge {
	return models.DailyChallenge{
		Title:       fallbackTitle,
		Description: fallbackDescription,
		PointsValue: constants.PointsChallengeDefault,
	}
}

// Static always returns the fallbacks. It is used when no API key is
// configured or the challenge provider is disabled.
type Static struct{}

func (Static) FetchInspiration(context.Context) string { return FallbackInspiration }

func (Static) FetchChallenge(context.Context, int) models.DailyChallenge {
	return FallbackChallenge()
}

// Options configures New.
type Options struct {
	APIKey   string
	Model    string
	Disabled bool
}

// New returns the Gemini provider when an API key is available and the
// static provider otherwise.
func New(ctx context.Context, opts Options) Provider {
	if opts.Disabled || opts.APIKey == "" {
		logger.Debug("Using static challenge provider", "disabled", opts.Disabled)
		return Static{}
	}
	g, err := NewGemini(ctx, opts.APIKey, opts.Model)
	if err != nil {
		logger.Warn("Failed to create Gemini client, using static provider", "error", err)
		return Static{}
	}
	return g
}

// Session performs the single fetch made at session start and keeps the
// result for the rest of the session.
type Session struct {
	provider Provider

	once        sync.Once
	inspiration string
	challenge   models.DailyChallenge
}

func NewSession(p Provider) *Session {
	if p == nil {
		p = Static{}
	}
	return &Session{provider: p}
}

// Start fetches the inspiration and the challenge concurrently. Later calls
// return the first result without contacting the provider again.
func (s *Session) Start(ctx context.Context, points int) (string, models.DailyChallenge) {
	s.once.Do(func() {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.inspiration = s.provider.FetchInspiration(ctx)
		}()
		go func() {
			defer wg.Done()
			s.challenge = s.provider.FetchChallenge(ctx, points)
		}()
		wg.Wait()
		logger.Info("Session challenge ready", "title", s.challenge.Title, "points", s.challenge.PointsValue)
	})
	return s.inspiration, s.challenge
}
