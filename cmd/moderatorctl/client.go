package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type moderatorClient struct {
	baseURL   string
	principal string
	http      *http.Client
}

func newClient() *moderatorClient {
	return &moderatorClient{
		baseURL:   serverURL,
		principal: actor,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// apiError is an error body returned by the server. Plain errors carry
// Error; rejected status changes carry Code.
type apiError struct {
	Status  int    `json:"-"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var ae apiError
	if err := json.Unmarshal(body, &ae); err != nil || ae.Message == "" {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}
	kind := ae.Code
	if kind == "" {
		kind = ae.Error
	}
	return fmt.Errorf("server returned %d (%s): %s", resp.StatusCode, kind, ae.Message)
}

// getJSON performs a GET request and decodes the response.
func (c *moderatorClient) getJSON(path string, v any) error {
	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

// postJSON performs a POST request with a JSON body and decodes the response.
func (c *moderatorClient) postJSON(path string, body any, v any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.principal != "" {
		req.Header.Set("X-User-Principal", c.principal)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	if v != nil {
		return json.NewDecoder(resp.Body).Decode(v)
	}
	return nil
}
