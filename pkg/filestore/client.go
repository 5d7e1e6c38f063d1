package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/stashbox-hq/stashbox-transfer/pkg/httpclient"
)

const (
	defaultEndpointPath = "file"
	defaultTimeout      = 15 * time.Second

	contentTypeHeader = "Content-Type"
	jsonContentType   = "application/json"
)

// Config holds the endpoint settings for a Client.
type Config struct {
	// BaseURL is the service root, e.g. https://files.stashbox.example.
	BaseURL string
	// EndpointPath is the path segment of the file endpoint under BaseURL.
	// Defaults to "file".
	EndpointPath string
	// Headers are merged into every request (static profile headers).
	Headers map[string]string
	// DebugResponses pretty-prints successful response bodies to the log
	// sink at debug level.
	DebugResponses bool
}

// Client wraps the remote file-storage HTTP API: fetch a file's URL by key,
// upload a file under a key, delete a file by key. Operations share no
// mutable state and are safe for concurrent use.
type Client struct {
	endpoint  string
	transport httpclient.Client
	mimes     MIMEResolver
	log       Logger
	headers   map[string]string
	debug     bool
}

// New builds a Client for the configured endpoint. A nil transport falls
// back to a resty client with the default timeout, nil mimes to the
// platform extension tables, nil log to a no-op sink.
func New(cfg Config, transport httpclient.Client, mimes MIMEResolver, log Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("filestore base url is empty")
	}
	path := strings.Trim(strings.TrimSpace(cfg.EndpointPath), "/")
	if path == "" {
		path = defaultEndpointPath
	}
	if transport == nil {
		transport = httpclient.NewRestyClient(defaultTimeout)
	}
	if mimes == nil {
		mimes = ExtensionResolver{}
	}

	return &Client{
		endpoint:  base + "/" + path,
		transport: transport,
		mimes:     mimes,
		log:       ensureLogger(log),
		headers:   cfg.Headers,
		debug:     cfg.DebugResponses,
	}, nil
}

// Endpoint returns the resolved file endpoint the client targets.
func (c *Client) Endpoint() string { return c.endpoint }

// GetFile returns the download URL recorded for key.
func (c *Client) GetFile(ctx context.Context, key string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	target := c.endpoint + "/" + key
	if err := validateURL(target); err != nil {
		return "", fmt.Errorf("get file %q: %w", key, err)
	}

	resp, err := c.transport.Get(ctx, target, c.requestHeaders(nil))
	if err != nil {
		return "", fmt.Errorf("get file %q: %w", key, errors.Join(ErrBadServerResponse, err))
	}
	if err := classifyStatus(resp.StatusCode()); err != nil {
		return "", fmt.Errorf("get file %q: %w", key, err)
	}
	c.debugBody("file fetched", resp.Body())

	fileURL, err := extractField(resp.Body(), "url")
	if err != nil {
		return "", fmt.Errorf("get file %q: %w", key, err)
	}
	return fileURL, nil
}

// PutFile uploads the local file at path under key and returns the key the
// server stored it as. The file is read fully before any request is issued;
// read failures never reach the network.
func (c *Client) PutFile(ctx context.Context, key, path string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	content, err := readLocalFile(path)
	if err != nil {
		return "", fmt.Errorf("put file %q: %w", key, errors.Join(ErrFileRead, err))
	}

	contentType := c.mimes.TypeByExtension(filepath.Ext(path))
	body, bodyType, err := uploadBody(newBoundary(), key, contentType, content)
	if err != nil {
		return "", fmt.Errorf("put file %q: %w", key, err)
	}

	headers := c.requestHeaders(map[string]string{contentTypeHeader: bodyType})
	resp, err := c.transport.Post(ctx, c.endpoint, headers, body)
	if err != nil {
		return "", fmt.Errorf("put file %q: %w", key, errors.Join(ErrBadServerResponse, err))
	}
	if err := classifyStatus(resp.StatusCode()); err != nil {
		return "", fmt.Errorf("put file %q: %w", key, err)
	}
	c.debugBody("file uploaded", resp.Body())

	stored, err := extractField(resp.Body(), "key")
	if err != nil {
		return "", fmt.Errorf("put file %q: %w", key, err)
	}
	return stored, nil
}

// DeleteFile removes the stored file for key and returns the deleted key.
func (c *Client) DeleteFile(ctx context.Context, key string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(deleteRequest{Key: key})
	if err != nil {
		return "", fmt.Errorf("delete file %q: marshal body: %w", key, err)
	}

	headers := c.requestHeaders(map[string]string{contentTypeHeader: jsonContentType})
	resp, err := c.transport.Delete(ctx, c.endpoint, headers, payload)
	if err != nil {
		return "", fmt.Errorf("delete file %q: %w", key, errors.Join(ErrBadServerResponse, err))
	}
	if err := classifyStatus(resp.StatusCode()); err != nil {
		return "", fmt.Errorf("delete file %q: %w", key, err)
	}
	c.debugBody("file deleted", resp.Body())

	deleted, err := extractField(resp.Body(), "key")
	if err != nil {
		return "", fmt.Errorf("delete file %q: %w", key, err)
	}
	return deleted, nil
}

// deleteRequest is the JSON body sent for delete operations.
type deleteRequest struct {
	Key string `json:"key"`
}

// fileEnvelope mirrors the JSON object the service returns. Pointer fields
// distinguish absent from empty.
type fileEnvelope struct {
	Key *string `json:"key"`
	URL *string `json:"url"`
}

// extractField decodes body as a JSON object and returns the named string
// field, failing with ErrParse when the body is not JSON or the field is
// absent.
func extractField(body []byte, field string) (string, error) {
	var env fileEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrParse, err)
	}

	var val *string
	switch field {
	case "key":
		val = env.Key
	case "url":
		val = env.URL
	}
	if val == nil {
		return "", fmt.Errorf("%w: response missing field %q", ErrParse, field)
	}
	return *val, nil
}

// cleanKey trims the key and rejects blank input.
func cleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("%w: file key is empty", ErrInvalidRequest)
	}
	return key, nil
}

// validateURL rejects composed targets that do not parse as absolute URLs.
func validateURL(target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q is not an absolute url", ErrInvalidRequest, target)
	}
	return nil
}

// readLocalFile opens and fully reads path, releasing the handle on all
// exit paths.
func readLocalFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// requestHeaders merges the client's static headers with per-request ones.
func (c *Client) requestHeaders(extra map[string]string) map[string]string {
	if len(c.headers) == 0 {
		return extra
	}
	merged := make(map[string]string, len(c.headers)+len(extra))
	for k, v := range c.headers {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

// debugBody pretty-prints a response body to the log sink when enabled.
func (c *Client) debugBody(msg string, body []byte) {
	if !c.debug {
		return
	}
	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err == nil {
		c.log.DebugObj(msg, "response_body", out.String())
		return
	}
	c.log.DebugObj(msg, "response_body", string(body))
}
