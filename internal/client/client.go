// Package client implements the user-facing side of the directory: an API
// client plus the submission form and listing view state they drive. The
// form runs the same schema validation as the server before sending
// anything over the wire.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/ekinura/schoolboard/internal/app/models"
	"github.com/ekinura/schoolboard/internal/pkg/schema"
)

// ImageBlob is an image captured at selection time. The form owns this
// value outright: submission reads from it and never re-queries whatever
// widget produced it.
type ImageBlob struct {
	Data      []byte
	Filename  string
	MediaType string
}

// SubmissionError carries the server's rejection of a submission.
type SubmissionError struct {
	Message     string
	FieldErrors []schema.FieldError
}

func (e *SubmissionError) Error() string {
	if len(e.FieldErrors) > 0 {
		return fmt.Sprintf("%s: %d field error(s)", e.Message, len(e.FieldErrors))
	}
	return e.Message
}

// Client talks to the school directory API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWithHTTPClient creates a Client using the provided http.Client.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type submitResult struct {
	Success bool                `json:"success"`
	ID      int64               `json:"id"`
	Message string              `json:"message"`
	Errors  []schema.FieldError `json:"errors"`
}

type listResult struct {
	Success bool             `json:"success"`
	Schools []*models.School `json:"schools"`
	Message string           `json:"message"`
}

// SubmitSchool posts a record as multipart form data, attaching the image
// blob when one is provided, and returns the assigned id.
func (c *Client) SubmitSchool(ctx context.Context, input schema.SchoolInput, image *ImageBlob) (int64, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fields := map[string]string{
		"name":     input.Name,
		"address":  input.Address,
		"city":     input.City,
		"state":    input.State,
		"contact":  input.Contact,
		"email_id": input.EmailID,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return 0, fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	if image != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="image"; filename=%q`, image.Filename))
		header.Set("Content-Type", image.MediaType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return 0, fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := part.Write(image.Data); err != nil {
			return 0, fmt.Errorf("failed to write image part: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/schools", &body)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("submission request failed: %w", err)
	}
	defer resp.Body.Close()

	var result submitResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode submission response: %w", err)
	}

	if !result.Success {
		message := result.Message
		if message == "" {
			message = "submission failed"
		}
		return 0, &SubmissionError{Message: message, FieldErrors: result.Errors}
	}

	return result.ID, nil
}

// FetchSchools retrieves the full record set.
func (c *Client) FetchSchools(ctx context.Context) ([]*models.School, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/schools", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing request failed: %w", err)
	}
	defer resp.Body.Close()

	var result listResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode listing response: %w", err)
	}

	if !result.Success {
		message := result.Message
		if message == "" {
			message = "listing failed"
		}
		return nil, fmt.Errorf("listing failed: %s", message)
	}

	return result.Schools, nil
}
