// Package client drives a gallery server from Go programs. It carries the
// pieces a frontend needs: a session gate, the remote procedure gateway, an
// upload step, HTML renderers, and the flow controllers that sequence them.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Photo mirrors the wire shape of a gallery record.
type Photo struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"ownerId"`
	Name         string    `json:"name"`
	Date         string    `json:"date"`
	People       string    `json:"people"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"imageUrl"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// User is the signed-in account handle.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Label is the name shown for a signed-in user, falling back to the email
// when no display name was set.
func (u *User) Label() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}

// Caller invokes a named remote procedure. Payload is marshalled to JSON,
// the response data envelope is decoded into out when out is non-nil.
type Caller interface {
	Call(ctx context.Context, name string, payload, out interface{}) error
}

// CallError is a failure reported by the server. Message is safe to show.
type CallError struct {
	Status  int
	Code    string
	Message string
}

func (e *CallError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("call failed with status %d", e.Status)
}

// Gateway is the HTTP Caller. Procedures are single-attempt POSTs to
// /rpc/<name>; there is no retry and no timeout beyond the caller's context.
type Gateway struct {
	BaseURL    string
	HTTPClient *http.Client

	token string
}

// NewGateway builds a Gateway for the given server base URL.
func NewGateway(baseURL string) *Gateway {
	return &Gateway{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
	}
}

// SetToken installs the bearer token attached to subsequent requests.
// An empty token clears it.
func (g *Gateway) SetToken(token string) {
	g.token = token
}

// Token returns the currently installed bearer token, if any.
func (g *Gateway) Token() string {
	return g.token
}

type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Call posts payload to /rpc/<name> and decodes the data envelope into out.
func (g *Gateway) Call(ctx context.Context, name string, payload, out interface{}) error {
	return g.post(ctx, g.BaseURL+"/rpc/"+name, payload, out)
}

func (g *Gateway) post(ctx context.Context, url string, payload, out interface{}) error {
	if payload == nil {
		payload = struct{}{}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var errRes errorResponse
		if decErr := json.NewDecoder(resp.Body).Decode(&errRes); decErr != nil {
			return &CallError{Status: resp.StatusCode}
		}
		return &CallError{
			Status:  resp.StatusCode,
			Code:    errRes.Error.Code,
			Message: errRes.Error.Message,
		}
	}

	if out == nil {
		return nil
	}
	var envelope dataEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}
