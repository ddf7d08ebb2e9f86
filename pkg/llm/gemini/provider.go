package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"llm-chat-be/pkg/llm"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	roleUser  = "user"
	roleModel = "model"
)

type GeminiProvider struct {
	spec    llm.Spec
	apiKey  string
	baseURL string
	client  *http.Client
}

// Ensure GeminiProvider implements LLMProvider
var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(spec llm.Spec, apiKey, baseURL string) *GeminiProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &GeminiProvider{
		spec:    spec,
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

// --- Request/Response structs (Internal to this package) ---

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	UsageMetadata *struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata,omitempty"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// --- Interface Implementation ---

func (g *GeminiProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (*llm.Reply, error) {
	opts := llm.ApplyOptions(llm.Options{Model: g.spec.DefaultModel}, options...)

	payload := generateRequest{Contents: toContents(history)}
	if opts.Temperature > 0 || opts.MaxTokens > 0 {
		payload.GenerationConfig = &generationConfig{
			Temperature:     opts.Temperature,
			MaxOutputTokens: opts.MaxTokens,
		}
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, g.fail(fmt.Errorf("marshal request: %w", err))
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, url.PathEscape(opts.Model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, g.fail(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, g.fail(fmt.Errorf("gemini request failed: %w", err))
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, g.fail(fmt.Errorf("read response: %w", err))
	}

	var res generateResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil && resp.StatusCode == http.StatusOK {
		return nil, g.fail(fmt.Errorf("unmarshal response: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		if res.Error != nil && res.Error.Message != "" {
			return nil, g.fail(fmt.Errorf("gemini api error (status %d): %s", resp.StatusCode, res.Error.Message))
		}
		return nil, g.fail(fmt.Errorf("gemini api error (status %d): %s", resp.StatusCode, string(bodyBytes)))
	}
	if len(res.Candidates) == 0 {
		return nil, g.fail(fmt.Errorf("empty candidates from gemini api"))
	}

	var sb strings.Builder
	for _, p := range res.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}

	reply := &llm.Reply{
		Content:  sb.String(),
		Model:    opts.Model,
		Provider: g.spec.Provider,
	}
	if u := res.UsageMetadata; u != nil {
		reply.Usage = &llm.Usage{
			PromptTokens:     u.PromptTokenCount,
			CompletionTokens: u.CandidatesTokenCount,
			TotalTokens:      u.TotalTokenCount,
		}
	}
	return reply, nil
}

func (g *GeminiProvider) fail(err error) error {
	return llm.NewSendError(g.spec.Provider, err)
}

// toContents maps the generic history to Gemini contents. Gemini names the
// assistant role "model".
func toContents(history []llm.Message) []content {
	out := make([]content, 0, len(history))
	for _, msg := range history {
		role := roleUser
		if msg.Role == llm.RoleAssistant {
			role = roleModel
		}

		parts := make([]part, 0, len(msg.Images)+1)
		if msg.Content != "" {
			parts = append(parts, part{Text: msg.Content})
		}
		for _, img := range msg.Images {
			parts = append(parts, part{InlineData: &inlineData{MimeType: img.MediaType, Data: img.Data}})
		}
		if len(parts) == 0 {
			parts = append(parts, part{Text: ""})
		}
		out = append(out, content{Role: role, Parts: parts})
	}
	return out
}
