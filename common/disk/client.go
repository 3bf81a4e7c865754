package disk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/dnk-music/intake/common/cache"
	"github.com/dnk-music/intake/common/config"
)

// Logger interface for disk client logging
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
}

// Client talks to the Yandex Disk REST API: folder creation, uploads and
// publishing. Mkdir is idempotent and Publish returns an empty link for
// missing paths (logged, not raised), matching how the pipeline consumes it.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	linkCache  cache.Cache
	logger     Logger
}

// NewClient creates a new disk client
func NewClient(cfg config.DiskConfig, linkCache cache.Cache, logger Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		linkCache:  linkCache,
		logger:     logger,
	}
}

type apiError struct {
	ErrorName   string `json:"error"`
	Description string `json:"description"`
}

type hrefResponse struct {
	Href string `json:"href"`
}

type resourceResponse struct {
	PublicURL string `json:"public_url"`
}

// Mkdir creates a folder on the disk. A pre-existing folder is not an error.
func (c *Client) Mkdir(ctx context.Context, path string) error {
	resp, err := c.do(ctx, http.MethodPut, "/resources", url.Values{"path": {path}}, nil)
	if err != nil {
		return fmt.Errorf("mkdir %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		c.logger.Debug("disk folder created", "path", path)
		return nil
	case http.StatusConflict:
		// DirAlreadyExistsError: mkdir is idempotent
		c.logger.Debug("disk folder already exists", "path", path)
		return nil
	default:
		return fmt.Errorf("mkdir %s: %s", path, readAPIError(resp))
	}
}

// Upload copies a local file to the given remote path
func (c *Client) Upload(ctx context.Context, localPath, remotePath string) error {
	resp, err := c.do(ctx, http.MethodGet, "/resources/upload",
		url.Values{"path": {remotePath}, "overwrite": {"true"}}, nil)
	if err != nil {
		return fmt.Errorf("request upload link for %s: %w", remotePath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request upload link for %s: %s", remotePath, readAPIError(resp))
	}

	var link hrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&link); err != nil {
		return fmt.Errorf("decode upload link for %s: %w", remotePath, err)
	}

	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", localPath, err)
	}
	defer file.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, link.Href, file)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}

	uploadResp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload %s: %w", remotePath, err)
	}
	defer uploadResp.Body.Close()

	if uploadResp.StatusCode != http.StatusCreated && uploadResp.StatusCode != http.StatusOK {
		return fmt.Errorf("upload %s: unexpected status %d", remotePath, uploadResp.StatusCode)
	}

	c.logger.Debug("disk upload complete", "remote_path", remotePath)
	return nil
}

// Publish makes a remote path public and returns its public link.
// A missing path yields an empty link, not an error.
func (c *Client) Publish(ctx context.Context, remotePath string) (string, error) {
	if c.linkCache != nil {
		if cached, ok, _ := c.linkCache.Get(ctx, "publish:"+remotePath); ok {
			return string(cached), nil
		}
	}

	resp, err := c.do(ctx, http.MethodPut, "/resources/publish", url.Values{"path": {remotePath}}, nil)
	if err != nil {
		return "", fmt.Errorf("publish %s: %w", remotePath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.logger.Warn("path to publish not found on disk", "path", remotePath)
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("publish %s: %s", remotePath, readAPIError(resp))
	}

	publicURL, err := c.publicURL(ctx, remotePath)
	if err != nil {
		return "", err
	}

	if c.linkCache != nil && publicURL != "" {
		_ = c.linkCache.Set(ctx, "publish:"+remotePath, []byte(publicURL), time.Hour)
	}

	return publicURL, nil
}

// publicURL fetches resource metadata to resolve the public link
func (c *Client) publicURL(ctx context.Context, remotePath string) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/resources",
		url.Values{"path": {remotePath}, "fields": {"public_url"}}, nil)
	if err != nil {
		return "", fmt.Errorf("resolve public link for %s: %w", remotePath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.logger.Warn("published path disappeared", "path", remotePath)
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("resolve public link for %s: %s", remotePath, readAPIError(resp))
	}

	var resource resourceResponse
	if err := json.NewDecoder(resp.Body).Decode(&resource); err != nil {
		return "", fmt.Errorf("decode resource metadata for %s: %w", remotePath, err)
	}

	return resource.PublicURL, nil
}

// do executes an authorized API request
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint+"?"+query.Encode(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	return c.httpClient.Do(req)
}

func readAPIError(resp *http.Response) string {
	var apiErr apiError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.ErrorName == "" {
		return fmt.Sprintf("unexpected status %d", resp.StatusCode)
	}
	return fmt.Sprintf("%s: %s (status %d)", apiErr.ErrorName, apiErr.Description, resp.StatusCode)
}
