// Package ocrclient wraps the Veryfi document-processing API behind a narrow
// interface so the batch loop never talks to the network directly.
package ocrclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"invoicebatch/models"
)

// DocumentProcessor submits one local document to an OCR service and returns
// the extraction response. Tests substitute a fake implementation.
type DocumentProcessor interface {
	Process(ctx context.Context, filePath string) (models.ExtractionDocument, error)
}

const documentsPath = "/api/v8/partner/documents"

// maxErrorBody caps how much of an error response body ends up in logs.
const maxErrorBody = 512

// Client is the real Veryfi implementation of DocumentProcessor.
type Client struct {
	baseURL string
	creds   models.Credentials
	client  *http.Client
}

// New validates the credentials and builds a client. A single failed call
// fails only that item; the client itself holds no per-item state.
func New(baseURL string, creds models.Credentials, timeout time.Duration) (*Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	if baseURL == "" {
		baseURL = models.DefaultAPIBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

type processRequest struct {
	FileName string `json:"file_name"`
	FileData string `json:"file_data"`
}

// Process uploads the file and decodes the response. The document is sent
// base64-encoded in a JSON body, per the Veryfi v8 partner API.
func (c *Client) Process(ctx context.Context, filePath string) (models.ExtractionDocument, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.ExtractionDocument{}, &NotFoundError{Path: filePath}
		}
		return models.ExtractionDocument{}, fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	body, err := json.Marshal(processRequest{
		FileName: filepath.Base(filePath),
		FileData: base64.StdEncoding.EncodeToString(data),
	})
	if err != nil {
		return models.ExtractionDocument{}, fmt.Errorf("failed to encode request for %s: %w", filePath, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+documentsPath, bytes.NewReader(body))
	if err != nil {
		return models.ExtractionDocument{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Client-Id", c.creds.ClientID)
	req.Header.Set("Authorization", fmt.Sprintf("apikey %s:%s", c.creds.Username, c.creds.APIKey))

	resp, err := c.client.Do(req)
	if err != nil {
		return models.ExtractionDocument{}, &TransportError{Op: "submit", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.ExtractionDocument{}, &TransportError{Op: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		snippet := string(respBody)
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return models.ExtractionDocument{}, &TransportError{
			Op:  "submit",
			Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, snippet),
		}
	}

	var raw map[string]any
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return models.ExtractionDocument{}, &TransportError{Op: "decode response", Err: err}
	}

	ocrText, _ := raw["ocr_text"].(string)
	if ocrText == "" {
		// A 200 with no text is useless downstream; treat it like a bad response.
		return models.ExtractionDocument{}, &TransportError{
			Op:  "decode response",
			Err: fmt.Errorf("no ocr_text returned for %s", filePath),
		}
	}

	return models.ExtractionDocument{OCRText: ocrText, Raw: raw}, nil
}
