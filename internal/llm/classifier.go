package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/baselomar044-dev/qs-empire/internal/models"
)

// classifierSystemPrompt constrains the model to a single JSON object
// matching the Classification shape. The persona mirrors the business
// owner's credentials so proposals come out ready to send.
const classifierSystemPrompt = `أنت محلل فرص عمل لـ Quantity Surveyor خبير (+10 سنوات، 300+ مشروع، معتمد بلدية دبي G+4).
رد بـ JSON فقط:
{
  "isRelevant": true/false,
  "title": "عنوان مختصر بالعربي",
  "platform": "Upwork/Freelancer/Mostaql/Fiverr/LinkedIn/Other",
  "budget": "الميزانية",
  "successRate": 0-100,
  "warning": "تحذير أو null",
  "proposal": "proposal احترافي 4-5 جمل بالإنجليزية يبرز الخبرة"
}`

const (
	classifierMaxTokens   = 600
	classifierTemperature = 0.3 // low temperature, favoring determinism
)

// Classifier asks the completion provider to judge one hit's relevance
// and extract structured fields from its description.
type Classifier struct {
	client           *Client
	snippetCharLimit int
}

// Ensure Classifier implements ClassifierInterface
var _ ClassifierInterface = (*Classifier)(nil)

// NewClassifier creates a new relevance classifier
func NewClassifier(client *Client, snippetCharLimit int) *Classifier {
	return &Classifier{
		client:           client,
		snippetCharLimit: snippetCharLimit,
	}
}

// Classify sends one hit to the completion provider and parses the reply.
// The raw reply is not trusted to be pure JSON: the first balanced object
// is extracted and parsed. Any HTTP, extraction, or parse failure is
// returned as an error; callers are expected to skip the hit and continue.
func (c *Classifier) Classify(ctx context.Context, hit models.SearchHit) (*models.Classification, error) {
	snippet := hit.Content
	if len(snippet) > c.snippetCharLimit {
		snippet = snippet[:c.snippetCharLimit]
	}

	userPrompt := fmt.Sprintf("العنوان: %s\nالرابط: %s\nالوصف: %s", hit.Title, hit.URL, snippet)

	reply, err := c.client.Complete(ctx, []Message{
		{Role: "system", Content: classifierSystemPrompt},
		{Role: "user", Content: userPrompt},
	}, classifierMaxTokens, classifierTemperature)

	if err != nil {
		return nil, err
	}

	raw, ok := ExtractJSONObject(reply)
	if !ok {
		return nil, fmt.Errorf("no JSON object in classifier reply")
	}

	var classification models.Classification
	if err := json.Unmarshal([]byte(raw), &classification); err != nil {
		return nil, fmt.Errorf("failed to parse classifier reply: %w", err)
	}

	return &classification, nil
}
