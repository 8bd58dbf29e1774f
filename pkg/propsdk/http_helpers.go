package propsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// url builds a complete URL by appending the path to the base URL.
func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// roundTrip performs one request and returns the raw response body.
// Network-level failures come back as transport *APIError.
func (c *Client) roundTrip(
	ctx context.Context,
	method, path, contentType string,
	body io.Reader,
	bearer string,
) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}
	return data, nil
}

// postJSON sends a JSON body and decodes the enveloped response. A
// success:false verdict becomes a rejection *APIError carrying the
// backend message; on success the body is additionally decoded into out
// when out is non-nil.
func (c *Client) postJSON(ctx context.Context, path string, payload, out any, bearer string) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	data, err := c.roundTrip(ctx, http.MethodPost, path, "application/json", body, bearer)
	if err != nil {
		return err
	}
	return decodeEnvelope(data, out)
}

// getJSON fetches and decodes a response that follows the envelope
// convention.
func (c *Client) getJSON(ctx context.Context, path string, out any, bearer string) error {
	data, err := c.roundTrip(ctx, http.MethodGet, path, "", nil, bearer)
	if err != nil {
		return err
	}
	return decodeEnvelope(data, out)
}

// getRaw fetches and decodes a response with no envelope (the bare-list
// lookup endpoints).
func (c *Client) getRaw(ctx context.Context, path string, out any) error {
	data, err := c.roundTrip(ctx, http.MethodGet, path, "", nil, "")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// postMultipart sends fields and files as multipart/form-data and decodes
// the enveloped response.
func (c *Client) postMultipart(
	ctx context.Context,
	path string,
	fields map[string]string,
	files []FilePart,
	out any,
	bearer string,
) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return fmt.Errorf("failed to encode field %q: %w", key, err)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Name)
		if err != nil {
			return fmt.Errorf("failed to attach file %q: %w", f.Name, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return fmt.Errorf("failed to write file %q: %w", f.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish multipart body: %w", err)
	}

	data, err := c.roundTrip(ctx, http.MethodPost, path, w.FormDataContentType(), &buf, bearer)
	if err != nil {
		return err
	}
	return decodeEnvelope(data, out)
}

// decodeEnvelope checks the success field and, when out is non-nil,
// decodes the rest of the body into it.
func decodeEnvelope(data []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !env.Success {
		return rejection(env.Message)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
