package github

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// FileContent is the GitHub Contents API response for a file.
type FileContent struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Size     int    `json:"size"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
	HTMLURL  string `json:"html_url"`
}

type putContentRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
}

type putContentResponse struct {
	Content FileContent `json:"content"`
}

// GetFileContent fetches a file's content via the Contents API.
// Returns (content, blobSHA, error). blobSHA is needed for PUT updates.
// Files over 1 MB come back without content and are read as raw blobs.
func (c *Client) GetFileContent(owner, repo, path, ref string) ([]byte, string, error) {
	url := c.url("repos", owner, repo, "contents", path)
	if ref != "" {
		url += "?ref=" + ref
	}

	var fc FileContent
	if err := c.doJSON(http.MethodGet, url, nil, &fc); err != nil {
		return nil, "", err
	}
	if fc.Encoding == "none" && fc.Size > 1*1024*1024 {
		data, err := c.getRawBlob(owner, repo, fc.SHA)
		return data, fc.SHA, err
	}

	// GitHub wraps base64 lines at 60 chars.
	data, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(fc.Content, "\n", ""))
	if err != nil {
		return nil, "", fmt.Errorf("decoding %s: %w", path, err)
	}
	return data, fc.SHA, nil
}

// PutFileContent creates or updates a file with a single commit.
// sha must be the current blob SHA when updating, or empty when creating.
// Returns the new blob SHA.
func (c *Client) PutFileContent(owner, repo, path string, content []byte, sha, message string) (string, error) {
	url := c.url("repos", owner, repo, "contents", path)
	body := putContentRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		SHA:     sha,
	}
	var out putContentResponse
	if err := c.doJSON(http.MethodPut, url, body, &out); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return out.Content.SHA, nil
}

// getRawBlob downloads a blob by its SHA using the raw accept header.
func (c *Client) getRawBlob(owner, repo, sha string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, c.url("repos", owner, repo, "git", "blobs", sha), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.raw")
	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	return io.ReadAll(resp.Body)
}
