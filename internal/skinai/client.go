// Package skinai is the client of the external vision analyzer, an
// OpenAI-compatible chat-completions endpoint. It sends a base64 image
// with a fixed prompt and parses the numbered sections of the reply
// into a structured report; unparsed replies degrade to raw text.
package skinai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/beluxlabs/belux-backend/internal/config"
)

type Client struct {
	apiKey     string
	apiURL     string
	model      string
	httpClient *http.Client
}

// NewClient creates a new analyzer client with a bounded request timeout.
func NewClient(cfg config.SkinAI) *Client {
	timeout := cfg.TimeoutAI
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:     cfg.APIKey,
		apiURL:     cfg.BaseURL,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) newRequest(ctx context.Context, body any) (*http.Request, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL+"/chat/completions", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// complete sends one vision message and returns the reply text.
func (c *Client) complete(ctx context.Context, systemMessage, prompt, imageBase64 string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: []contentPart{{Type: "text", Text: systemMessage}},
			},
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: prompt},
					{Type: "image_url", ImageURL: &imageURL{URL: "data:image/jpeg;base64," + imageBase64}},
				},
			},
		},
	}

	req, err := c.newRequest(ctx, reqBody)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.New("unexpected status: " + resp.Status)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", err
	}
	if len(chatResp.Choices) == 0 {
		return "", errors.New("empty completion response")
	}
	return chatResp.Choices[0].Message.Content, nil
}

// AnalyzeFace runs the full dermatological analysis and returns the
// structured report.
func (c *Client) AnalyzeFace(ctx context.Context, imageBase64 string) (*FaceReport, error) {
	text, err := c.complete(ctx, facialSystemMessage, facialPrompt, imageBase64)
	if err != nil {
		return nil, fmt.Errorf("facial analysis: %w", err)
	}
	return ParseFaceReport(text), nil
}

// AnalyzeDailyFace returns the short daily check-in feedback.
func (c *Client) AnalyzeDailyFace(ctx context.Context, imageBase64 string) (string, error) {
	text, err := c.complete(ctx, dailySystemMessage, dailyPrompt, imageBase64)
	if err != nil {
		return "", fmt.Errorf("daily facial analysis: %w", err)
	}
	return text, nil
}

// AnalyzeProduct identifies a skincare product from a photo.
func (c *Client) AnalyzeProduct(ctx context.Context, imageBase64 string) (string, error) {
	text, err := c.complete(ctx, productSystemMessage, productPrompt, imageBase64)
	if err != nil {
		return "", fmt.Errorf("product analysis: %w", err)
	}
	return text, nil
}
