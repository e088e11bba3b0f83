// Package ai wraps the Gemini generateContent REST endpoint for the
// style-consultant feature. Callers treat it as opaque and fall back
// to a canned message on any failure.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"

const styleSystemInstruction = "Eres un barbero y estilista profesional de clase mundial. " +
	"Proporciona consejos de estilo específicos, modernos y basados en la personalidad. " +
	"Responde siempre en español."

const faceShapePrompt = "Analiza la forma del rostro de esta persona y recomienda 3 peinados " +
	"adecuados de la siguiente lista: Fade, Undercut, Buzz Cut, Pompadour, Long Flow, Side Part. " +
	"También sugiere estilos de barba si aplica. Responde en español."

type Client struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

func NewClient(apiKey, model string) *Client {
	if strings.TrimSpace(apiKey) == "" {
		return nil
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		endpoint:   defaultGeminiEndpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// StyleRecommendation asks for a haircut suggestion matching a client's
// free-text self description.
func (c *Client) StyleRecommendation(ctx context.Context, description string) (string, error) {
	prompt := fmt.Sprintf("Sugiere un estilo de corte de pelo y arreglo personal para un cliente que dice: %q. "+
		"Sé conciso y profesional en español.", description)

	req := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: styleSystemInstruction}}},
		Contents:          []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig:  &generationConfig{Temperature: 0.7},
	}
	return c.generate(ctx, req)
}

// AnalyzeFaceShape sends a base64-encoded JPEG and asks for hairstyle
// recommendations matched to the face shape.
func (c *Client) AnalyzeFaceShape(ctx context.Context, imageBase64 string) (string, error) {
	req := generateRequest{
		Contents: []content{{
			Parts: []part{
				{InlineData: &inlineData{MimeType: "image/jpeg", Data: imageBase64}},
				{Text: faceShapePrompt},
			},
		}},
	}
	return c.generate(ctx, req)
}

func (c *Client) generate(ctx context.Context, payload generateRequest) (string, error) {
	if c == nil {
		return "", errors.New("gemini client is nil")
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("gemini marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("gemini create request: %w", err)
	}
	req.Header.Set("content-type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("gemini call failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("gemini decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini response has no candidates")
	}

	var b strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", errors.New("gemini response is empty")
	}
	return text, nil
}

type generateRequest struct {
	SystemInstruction *content          `json:"system_instruction,omitempty"`
	Contents          []content         `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}
