package host

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// InvokePath is the HTTP path prefix commands are served under.
const InvokePath = "/api/v1/invoke/"

// RemoteError is a failure reported by the host.
type RemoteError struct {
	Status  int
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("host: %s (%d): %s", e.Code, e.Status, e.Message)
}

// Client invokes host commands over HTTP. It does not retry and sets no
// timeout of its own; use ctx to bound a call.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: http.DefaultClient}
}

// Invoke calls the named command with args and decodes its result into result.
func (c *Client) Invoke(ctx context.Context, name string, args any, result any) error {
	body, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode %s args: %w", name, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+InvokePath+name, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("invoke %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &RemoteError{Status: resp.StatusCode, Code: apiErr.Error, Message: apiErr.Message}
	}

	var out struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode %s response: %w", name, err)
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(out.Result, result); err != nil {
		return fmt.Errorf("decode %s result: %w", name, err)
	}
	return nil
}

// Greet invokes the greet command.
func (c *Client) Greet(ctx context.Context, name string) (string, error) {
	var greeting string
	err := c.Invoke(ctx, GreetCommand, GreetArgs{Name: name}, &greeting)
	return greeting, err
}
