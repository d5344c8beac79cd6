package challenge

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/julianstephens/rihla/internal/constants"
	"github.com/julianstephens/rihla/internal/logger"
	"github.com/julianstephens/rihla/internal/models"
)

const (
	requestTimeout = 20 * time.Second

	inspirationSystem = "You are a companion inside a devotional habit tracker. Spread optimism and calm using simple words that are close to the heart and never complicated."
	inspirationPrompt = "Give me a very short and simple motivating message of faith for today, in a direct and calm tone, without ornamentation or emojis."
	challengePrompt   = "Suggest a simple daily worship challenge (such as a neglected Sunnah, a good deed or a specific remembrance) for a user with %d points. The challenge must be specific and achievable today."
)

// generator is the part of the genai client the provider uses.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini asks the Gemini API for the inspiration text and a structured
// challenge, falling back to the static texts on any failure.
type Gemini struct {
	gen   generator
	model string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return newGemini(client.Models, model), nil
}

func newGemini(gen generator, model string) *Gemini {
	if model == "" {
		model = constants.DefaultGeminiModel
	}
	return &Gemini{gen: gen, model: model}
}

func (g *Gemini) FetchInspiration(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := g.gen.GenerateContent(ctx, g.model, genai.Text(inspirationPrompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(inspirationSystem, genai.RoleUser),
		Temperature:       genai.Ptr[float32](constants.InspirationTemp),
	})
	if err != nil {
		logger.Warn("Inspiration request failed, using fallback", "model", g.model, "error", err)
		return FallbackInspiration
	}
	text := strings.TrimSpace(responseText(resp))
	if text == "" {
		logger.Warn("Inspiration response was empty, using fallback", "model", g.model)
		return FallbackInspiration
	}
	return text
}

// challengeSchema mirrors the JSON the model is asked to return.
var challengeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":       {Type: genai.TypeString, Description: "The title of the challenge"},
		"description": {Type: genai.TypeString, Description: "The description of the challenge"},
		"points":      {Type: genai.TypeNumber, Description: "The points rewarded for completing the challenge"},
	},
	Required: []string{"title", "description", "points"},
}

type challengePayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Points      *float64 `json:"points"`
}

func (g *Gemini) FetchChallenge(ctx context.Context, points int) models.DailyChallenge {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := g.gen.GenerateContent(ctx, g.model, genai.Text(fmt.Sprintf(challengePrompt, points)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   challengeSchema,
	})
	if err != nil {
		logger.Warn("Challenge request failed, using fallback", "model", g.model, "error", err)
		return FallbackChallenge()
	}
	c, err := parseChallenge(responseText(resp))
	if err != nil {
		logger.Warn("Challenge response unusable, using fallback", "model", g.model, "error", err)
		return FallbackChallenge()
	}
	return c
}

func parseChallenge(text string) (models.DailyChallenge, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.DailyChallenge{}, fmt.Errorf("empty response")
	}
	var p challengePayload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return models.DailyChallenge{}, fmt.Errorf("invalid challenge json: %w", err)
	}
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	if p.Title == "" || p.Description == "" {
		return models.DailyChallenge{}, fmt.Errorf("challenge is missing title or description")
	}

	value := constants.PointsChallengeDefault
	if p.Points != nil && *p.Points >= 1 && *p.Points <= constants.PointsChallengeMax {
		value = int(math.Round(*p.Points))
	}
	return models.DailyChallenge{Title: p.Title, Description: p.Description, PointsValue: value}, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && !part.Thought {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
