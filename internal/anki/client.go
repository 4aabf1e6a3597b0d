// Package anki submits flashcards to a local AnkiConnect endpoint.
package anki

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

// protocolVersion is the AnkiConnect API version this client speaks.
const protocolVersion = 6

const defaultTimeout = 5 * time.Second

// Note is one flashcard: the encoded position prefix and the recommended
// move, filed under a fixed deck/model pair.
type Note struct {
	Deck     string
	Model    string
	Sequence string
	Solution string
}

type Client struct {
	baseURL string
	http    *fasthttp.Client

	defaultTimeout time.Duration
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.defaultTimeout = d }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		http:           &fasthttp.Client{ReadTimeout: defaultTimeout, WriteTimeout: defaultTimeout},
		defaultTimeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

type noteParams struct {
	Note noteSpec `json:"note"`
}

type noteSpec struct {
	DeckName  string     `json:"deckName"`
	ModelName string     `json:"modelName"`
	Fields    noteFields `json:"fields"`
}

type noteFields struct {
	Sequence string `json:"Sequence"`
	Solution string `json:"Solution"`
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// Ping verifies that AnkiConnect is reachable and answering the version
// action. Run it once before a batch; a dead note service makes the whole
// run pointless.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.do(ctx, request{Action: "version", Version: protocolVersion}); err != nil {
		return fmt.Errorf("anki connect not responding: %w", err)
	}
	return nil
}

// AddNote submits one flashcard. Failures are returned to the caller to
// log; they are never retried.
func (c *Client) AddNote(ctx context.Context, note Note) error {
	req := request{
		Action:  "addNote",
		Version: protocolVersion,
		Params: noteParams{Note: noteSpec{
			DeckName:  note.Deck,
			ModelName: note.Model,
			Fields:    noteFields{Sequence: note.Sequence, Solution: note.Solution},
		}},
	}
	if err := c.do(ctx, req); err != nil {
		return fmt.Errorf("add note: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, in request) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(fasthttp.MethodPost)
	req.SetRequestURI(c.baseURL)
	req.Header.SetContentType("application/json")

	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req.SetBody(payload)

	if err := c.http.DoDeadline(req, resp, c.computeDeadline(ctx)); err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		return fmt.Errorf("anki api error: status=%d body=%s", status, truncate(string(resp.Body()), 512))
	}

	var out response
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if out.Error != nil && *out.Error != "" {
		return fmt.Errorf("anki rejected request: %s", *out.Error)
	}
	return nil
}

func (c *Client) computeDeadline(ctx context.Context) time.Time {
	clientDL := time.Now().Add(c.defaultTimeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(clientDL) {
		return dl
	}
	return clientDL
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
