package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdugdh24/roommate-backend/internal/domain"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.3)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// GenerateMatchDescription asks the model for a short summary of a match
// result. Callers are expected to fall back to a fixed text on error.
func (c *GeminiClient) GenerateMatchDescription(ctx context.Context, prefs *domain.Preferences, matchNames []string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(buildDescriptionPrompt(prefs, matchNames)))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	return strings.TrimSpace(sb.String()), nil
}

func buildDescriptionPrompt(prefs *domain.Preferences, matchNames []string) string {
	return fmt.Sprintf(`This is a roommate-matching system. The user is looking for matches with these preferences:
- Location: %s
- Budget: %d to %d
- Occupation: %s
- Smoking: %s
- Drinking: %s
- Cooking: %s
- Communication Style: %s
- Social Energy Level: %s

Based on the data, the following users are good matches: %s. Reply with a professional and simple message like:
"Here are the possible matches for you."`,
		prefs.PreferredLocation,
		prefs.MinBudget, prefs.MaxBudget,
		prefs.Occupation,
		yesNo(prefs.Smoking),
		yesNo(prefs.Drinking),
		prefs.Cooking,
		prefs.CommunicationStyle,
		prefs.SocialEnergyLevel,
		strings.Join(matchNames, ", "),
	)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
