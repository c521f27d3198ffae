// Package tips serves short daily health tips for caregivers, sourced
// from an LLM provider with a curated static fallback.
package tips

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"strings"
	"time"
)

// Tip is a single health tip.
type Tip struct {
	Topic string `json:"topic"`
	Text  string `json:"text"`
}

// Source produces a tip for the given topic. An empty topic means any.
type Source interface {
	Tip(ctx context.Context, topic string) (Tip, error)
}

// LLMSource fetches tips from an OpenAI-compatible chat completions API.
type LLMSource struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewLLMSource creates an LLM-backed tip source.
func NewLLMSource(baseURL, apiKey, model string) *LLMSource {
	return &LLMSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

const tipSystemPrompt = "You are a maternal and child health assistant for caregivers in Kenya. " +
	"Reply with one short, practical health tip (at most 3 sentences) in plain language. " +
	"Never give a diagnosis; advise visiting a clinic for anything serious."

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (s *LLMSource) Tip(ctx context.Context, topic string) (Tip, error) {
	prompt := "Give a health tip for a caregiver."
	if topic != "" {
		prompt = fmt.Sprintf("Give a health tip about %s for a caregiver.", topic)
	}

	body, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: tipSystemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return Tip{}, fmt.Errorf("encoding tip request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Tip{}, fmt.Errorf("building tip request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return Tip{}, fmt.Errorf("calling tip provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Tip{}, fmt.Errorf("tip provider returned status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Tip{}, fmt.Errorf("decoding tip response: %w", err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return Tip{}, fmt.Errorf("tip provider returned no content")
	}

	return Tip{Topic: topic, Text: strings.TrimSpace(out.Choices[0].Message.Content)}, nil
}

// StaticSource serves tips from a built-in table. It never fails.
type StaticSource struct {
	tips []Tip
}

// NewStaticSource creates a source backed by the built-in tip table.
func NewStaticSource() *StaticSource {
	return &StaticSource{tips: builtinTips}
}

func (s *StaticSource) Tip(_ context.Context, topic string) (Tip, error) {
	if topic != "" {
		for _, t := range s.tips {
			if strings.EqualFold(t.Topic, topic) {
				return t, nil
			}
		}
	}
	// Rotate by day so repeated calls on the same day agree.
	h := fnv.New32a()
	h.Write([]byte(time.Now().UTC().Format("2006-01-02") + topic))
	return s.tips[int(h.Sum32())%len(s.tips)], nil
}

// Fallback wraps a primary source and falls back to a secondary when the
// primary fails.
type Fallback struct {
	Primary   Source
	Secondary Source
}

func (f *Fallback) Tip(ctx context.Context, topic string) (Tip, error) {
	tip, err := f.Primary.Tip(ctx, topic)
	if err == nil {
		return tip, nil
	}
	return f.Secondary.Tip(ctx, topic)
}

var builtinTips = []Tip{
	{Topic: "breastfeeding", Text: "Exclusive breastfeeding for the first 6 months gives your baby the best start. Feed on demand, day and night."},
	{Topic: "nutrition", Text: "From 6 months, add mashed foods like sweet potato, beans and greens alongside breastfeeding."},
	{Topic: "hydration", Text: "During pregnancy, drink at least 8 glasses of clean water a day, more in hot weather."},
	{Topic: "malaria", Text: "Sleep under an insecticide-treated net every night, especially when pregnant or with a young child."},
	{Topic: "ifas", Text: "Take your iron and folic acid supplement daily with food to prevent anaemia during pregnancy."},
	{Topic: "hygiene", Text: "Wash hands with soap before preparing food, before feeding your baby, and after changing nappies."},
	{Topic: "danger-signs", Text: "Go to the clinic right away if your baby has fever, refuses to feed, or breathes fast."},
	{Topic: "anc", Text: "Attend every antenatal clinic visit, even when you feel well. Small problems are easiest to fix early."},
	{Topic: "immunization", Text: "Keep your child's clinic card safe and bring it to every visit so no vaccine dose is missed."},
	{Topic: "rest", Text: "Rest when your baby rests. Asking family for help with chores is good for you and your baby."},
}
