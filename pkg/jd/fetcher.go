// Package jd loads a job description from a local file or an HTTP URL.
// URL content gets basic HTML stripping; JavaScript-rendered pages may
// still need manual copy-paste.
package jd

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
)

//nolint:gochecknoglobals // Compiled once
var (
	scriptPattern    = regexp.MustCompile(`(?is)<script.*?</script>`)
	stylePattern     = regexp.MustCompile(`(?is)<style.*?</style>`)
	tagPattern       = regexp.MustCompile(`<[^>]*>`)
	blankRunsPattern = regexp.MustCompile(`\n{3,}`)
	spaceRunsPattern = regexp.MustCompile(`[ \t]{2,}`)
)

// Fetch retrieves a job description from a file path or URL.
func Fetch(ctx context.Context, input string) (content string, err error) {
	parsedURL, urlErr := url.Parse(input)
	if urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") {
		content, err = fetchFromURL(ctx, input)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch job description from URL: %s", input)
			return content, err
		}
		return content, err
	}

	content, err = fetchFromFile(input)
	if err != nil {
		err = errors.Wrapf(err, "failed to read job description from file: %s", input)
		return content, err
	}

	return content, err
}

// fetchFromFile reads a job description from a file.
func fetchFromFile(path string) (content string, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read file: %s", path)
		return content, err
	}

	content = strings.TrimSpace(string(data))
	if content == "" {
		err = errors.New("file is empty")
		return content, err
	}

	return content, err
}

// fetchFromURL retrieves a job description from a URL.
func fetchFromURL(ctx context.Context, urlStr string) (content string, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return content, err
	}

	req.Header.Set("User-Agent", "resume-tailor-tool/1.0")

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return content, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return content, err
	}

	var bodyBytes []byte
	bodyBytes, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return content, err
	}

	content = stripHTML(string(bodyBytes))
	if content == "" {
		err = errors.New("fetched page is empty after HTML stripping")
		return content, err
	}

	return content, err
}

// stripHTML removes markup and collapses the leftover whitespace.
func stripHTML(html string) (text string) {
	text = scriptPattern.ReplaceAllString(html, "")
	text = stylePattern.ReplaceAllString(text, "")
	text = tagPattern.ReplaceAllString(text, "\n")
	text = spaceRunsPattern.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = blankRunsPattern.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)

	return text
}
