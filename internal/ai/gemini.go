package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"caravan/internal/modules/carpool"
	"caravan/internal/modules/trips"
)

// GeminiProvider generates dispatcher-facing recommendation summaries using
// Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Gemini 2.0 Flash for low latency and cost efficiency.
	model := client.GenerativeModel("gemini-2.0-flash")
	model.SetTemperature(0.4)

	return &GeminiProvider{client: client, model: model}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// Summarize turns a ranked candidate list into one short paragraph a
// dispatcher can read out. The candidate scores and reasoning are passed
// through verbatim; the model only phrases them.
func (p *GeminiProvider) Summarize(ctx context.Context, driver trips.Trip, candidates []carpool.Candidate) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "You are assisting a community transport dispatcher. ")
	fmt.Fprintf(&b, "A driver is going from %q to %q around %s.\n",
		driver.Pickup.AddressText, driver.Dropoff.AddressText, driver.DesiredTime.Format("15:04"))
	fmt.Fprintf(&b, "Ranked carpool candidates:\n")
	for i, c := range candidates {
		fmt.Fprintf(&b, "%d. trip %s, score %d/100: %s\n",
			i+1, c.Trip.ID, c.Score, strings.Join(c.Reasoning, "; "))
	}
	fmt.Fprintf(&b, "Write one short plain-text paragraph recommending which passengers to add and why. Do not invent details.")

	resp, err := p.model.GenerateContent(ctx, genai.Text(b.String()))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates from Gemini")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			out.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(out.String()), nil
}
