package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// GeminiAPIEndpoint is the Gemini API model base endpoint.
	GeminiAPIEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"
	// GeminiModel is the model to use.
	GeminiModel = "gemini-2.5-flash"
	// ssePrefix marks a payload line in a text/event-stream response.
	ssePrefix = "data: "
	// maxSSELineBytes bounds a single streamed payload line.
	maxSSELineBytes = 4 * 1024 * 1024
)

// Generator is the generation surface the orchestration layer consumes.
// *Client implements it; tests substitute fakes.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (result Result, err error)
	GenerateStream(ctx context.Context, prompt string, opts GenerateOptions, onChunk func(text string) error) (err error)
}

// Client represents a Gemini API client.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
	endpoint   string
}

// NewClient creates a new Gemini API client.
func NewClient(apiKey, model string) (client *Client) {
	if model == "" {
		model = GeminiModel // Default to Flash
	}
	client = &Client{
		apiKey:   apiKey,
		model:    model,
		endpoint: GeminiAPIEndpoint,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
	return client
}

// Generate performs a single non-streaming generation call.
func (c *Client) Generate(ctx context.Context, prompt string, opts GenerateOptions) (result Result, err error) {
	var resp *http.Response
	resp, err = c.sendRequest(ctx, prompt, opts, false)
	if err != nil {
		return result, err
	}
	defer resp.Body.Close()

	var respBody []byte
	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return result, err
	}

	var genResp generateResponse
	err = json.Unmarshal(respBody, &genResp)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse Gemini response: %s", string(respBody))
		return result, err
	}

	if len(genResp.Candidates) == 0 {
		err = errors.New("no candidates in Gemini response")
		return result, err
	}

	result.Candidates = genResp.Candidates
	result.Text = candidateText(genResp.Candidates[0])

	return result, err
}

// GenerateStream performs a streaming generation call, delivering raw text
// increments to onChunk in arrival order. A non-nil error from onChunk
// aborts the stream and is returned unchanged.
func (c *Client) GenerateStream(ctx context.Context, prompt string, opts GenerateOptions, onChunk func(text string) error) (err error) {
	var resp *http.Response
	resp, err = c.sendRequest(ctx, prompt, opts, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), maxSSELineBytes)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, ssePrefix) {
			continue // event names, comments, blank separators
		}
		payload := strings.TrimPrefix(line, ssePrefix)

		var genResp generateResponse
		err = json.Unmarshal([]byte(payload), &genResp)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse stream payload: %s", payload)
			return err
		}

		if len(genResp.Candidates) == 0 {
			continue
		}

		text := candidateText(genResp.Candidates[0])
		if text == "" {
			continue
		}

		err = onChunk(text)
		if err != nil {
			return err
		}
	}

	err = scanner.Err()
	if err != nil {
		err = errors.Wrap(err, "stream read failed")
		return err
	}

	return err
}

// sendRequest sends a generation request to the Gemini API and returns the
// response with a 2xx status. The caller owns the body.
func (c *Client) sendRequest(ctx context.Context, prompt string, opts GenerateOptions, streaming bool) (resp *http.Response, err error) {
	if c.apiKey == "" {
		err = errors.New("Gemini API key is not configured")
		return resp, err
	}

	genReq := generateRequest{
		Contents: []Content{
			{
				Role:  "user",
				Parts: []Part{{Text: prompt}},
			},
		},
	}
	if opts.Temperature != nil {
		genReq.GenerationConfig = &GenerationConfig{Temperature: opts.Temperature}
	}
	if opts.GroundingSearch {
		genReq.Tools = []Tool{{GoogleSearch: &GoogleSearch{}}}
	}

	var reqBody []byte
	reqBody, err = json.Marshal(genReq)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal request")
		return resp, err
	}

	url := c.endpoint + "/" + c.model + ":generateContent"
	if streaming {
		url = c.endpoint + "/" + c.model + ":streamGenerateContent?alt=sse"
	}

	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return resp, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Goog-Api-Key", c.apiKey)

	resp, err = c.httpClient.Do(httpReq)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return resp, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The status code must appear in the message so the retry
		// executor can classify the failure.
		var respBody []byte
		respBody, _ = io.ReadAll(resp.Body)
		resp.Body.Close()
		err = errors.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
		return nil, err
	}

	return resp, err
}

// candidateText concatenates the text parts of a candidate.
func candidateText(cand Candidate) (text string) {
	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		sb.WriteString(part.Text)
	}
	text = sb.String()
	return text
}
