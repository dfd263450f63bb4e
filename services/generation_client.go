// lingo-quest-service/services/generation_client.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// GenerationClient wraps the hosted generative-AI service. Lesson text and
// audio synthesis are black boxes behind it: prompt in, bytes out.
type GenerationClient struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewGenerationClient(baseURL, token string) *GenerationClient {
	return &GenerationClient{
		BaseURL: baseURL,
		Token:   token,
		Client: &http.Client{
			Timeout: 60 * time.Second, // text generation can be slow
		},
	}
}

// GenerateText asks the generation service for lesson body text.
func (c *GenerationClient) GenerateText(prompt string) (string, error) {
	url := fmt.Sprintf("%s/v1/generate/text", c.BaseURL)

	reqBody := map[string]interface{}{
		"prompt": prompt,
	}
	jsonData, _ := json.Marshal(reqBody)

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		log.Printf("GenerationService /generate/text returned %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("text generation failed: %d", resp.StatusCode)
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if out.Text == "" {
		return "", fmt.Errorf("text generation returned empty body")
	}

	return out.Text, nil
}

// SynthesizeAudio requests narration audio for a lesson body. Returns the raw
// clip and its content type (e.g. audio/mpeg).
func (c *GenerationClient) SynthesizeAudio(ctx context.Context, text, lang string) ([]byte, string, error) {
	url := fmt.Sprintf("%s/v1/generate/audio", c.BaseURL)

	reqBody := map[string]interface{}{
		"text":     text,
		"language": lang,
	}
	jsonData, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, "", fmt.Errorf("audio synthesis failed: %d: %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	return data, contentType, nil
}
