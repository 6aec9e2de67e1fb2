package whatsapp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://graph.facebook.com"
	APIVersion     = "v19.0"

	defaultErrorMessage = "Invalid credentials or permissions."
)

type Client struct {
	BaseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// PhoneNumber is the subset of the Graph API phone number node the console reads
type PhoneNumber struct {
	ID                 string `json:"id"`
	DisplayPhoneNumber string `json:"display_phone_number"`
	VerifiedName       string `json:"verified_name,omitempty"`
}

// APIError is a non-2xx answer from the Graph API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("graph api error (status %d): %s", e.StatusCode, e.Message)
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// --- Helper Functions ---

func (c *Client) sendRequest(ctx context.Context, method, url, token string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: defaultErrorMessage}
		var body errorBody
		if json.Unmarshal(respBody, &body) == nil && body.Error.Message != "" {
			apiErr.Message = body.Error.Message
		}
		return nil, apiErr
	}

	return respBody, nil
}

// GetPhoneNumber fetches the phone number node, which doubles as a credentials check.
func (c *Client) GetPhoneNumber(ctx context.Context, phoneNumberID, token string) (*PhoneNumber, error) {
	url := fmt.Sprintf("%s/%s/%s", c.BaseURL, APIVersion, phoneNumberID)
	resp, err := c.sendRequest(ctx, http.MethodGet, url, token)
	if err != nil {
		return nil, err
	}

	var pn PhoneNumber
	if err := json.Unmarshal(resp, &pn); err != nil {
		return nil, fmt.Errorf("decode phone number: %w", err)
	}
	return &pn, nil
}
