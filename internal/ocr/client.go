// Package ocr calls the external text-recognition service for receipt
// images. The service is treated as a black box: it gets an image and a
// language code and returns either recognized text or an error flag.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

const defaultBaseURL = "https://api.ocr.space/parse/image"

// MinUsableTextLength is the minimum number of non-whitespace characters a
// recognition result must have before it is worth handing to the extractor.
// Anything shorter means the image was unreadable and the user should enter
// amounts manually.
const MinUsableTextLength = 10

// Client talks to an OCR.space-compatible endpoint.
type Client struct {
	APIKey   string
	BaseURL  string
	Language string
	client   *http.Client
}

// NewClient builds a client with the given API key and a sane timeout.
// Language defaults to English.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:   apiKey,
		BaseURL:  defaultBaseURL,
		Language: "eng",
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type parseResult struct {
	ParsedText string `json:"ParsedText"`
}

type parseResponse struct {
	ParsedResults          []parseResult   `json:"ParsedResults"`
	IsErroredOnProcessing  bool            `json:"IsErroredOnProcessing"`
	ErrorMessage           json.RawMessage `json:"ErrorMessage"`
	OCRExitCode            int             `json:"OCRExitCode"`
}

// ParseImage uploads the image at path and returns the recognized text.
// A processing error flag or an empty result set is returned as an error;
// the caller decides whether to fall back to manual entry.
func (c *Client) ParseImage(ctx context.Context, path string) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("apikey", c.APIKey); err != nil {
		return "", fmt.Errorf("failed to write form field: %w", err)
	}
	if err := mw.WriteField("language", c.Language); err != nil {
		return "", fmt.Errorf("failed to write form field: %w", err)
	}
	if err := mw.WriteField("isOverlayRequired", "false"); err != nil {
		return "", fmt.Errorf("failed to write form field: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("failed to copy image data: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("OCR request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read OCR response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OCR service returned status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed parseResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode OCR response: %w", err)
	}
	if parsed.IsErroredOnProcessing {
		return "", fmt.Errorf("OCR processing failed: %s", strings.TrimSpace(string(parsed.ErrorMessage)))
	}
	if len(parsed.ParsedResults) == 0 {
		return "", fmt.Errorf("OCR returned no results")
	}

	return parsed.ParsedResults[0].ParsedText, nil
}

// HasUsableText reports whether the recognized text carries enough
// non-whitespace content to be worth extracting from.
func HasUsableText(text string) bool {
	count := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			count++
			if count >= MinUsableTextLength {
				return true
			}
		}
	}
	return false
}
