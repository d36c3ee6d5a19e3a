package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"

	"github.com/disklink/disklink/internal/models"
)

// Metadata retrieves the metadata for the object at a remote path.
// Directories come back with their listing embedded. A 404 is reported
// as ErrNotFound so callers can use this as an existence check.
func (c *Client) Metadata(ctx context.Context, path string) (*models.Resource, error) {
	params := url.Values{"path": {path}}

	resp, err := c.doRequest(ctx, "GET", "/resources", params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == nethttp.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	case resp.StatusCode != nethttp.StatusOK:
		return nil, statusError(resp)
	}

	var res models.Resource
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("failed to decode resource metadata: %w", err)
	}

	return &res, nil
}

// Exists reports whether an object is present at the remote path.
func (c *Client) Exists(ctx context.Context, path string) (bool, error) {
	_, err := c.Metadata(ctx, path)
	if IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateFolder creates a directory at the remote path. The service
// answers 201 on success and 409 when the path is already a directory;
// the conflict is reported as ErrAlreadyExists so callers racing a
// concurrent create can treat it as benign. Anything else is surfaced
// verbatim.
func (c *Client) CreateFolder(ctx context.Context, path string) error {
	params := url.Values{"path": {path}}

	resp, err := c.doRequest(ctx, "PUT", "/resources", params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == nethttp.StatusConflict {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s", ErrAlreadyExists, path)
	}
	if resp.StatusCode != nethttp.StatusCreated {
		return statusError(resp)
	}

	io.Copy(io.Discard, resp.Body)
	return nil
}

// Delete removes the object at the remote path, to trash by default or
// permanently when requested. Acceptance is asynchronous: the service may
// answer 202 and finish the removal later, so callers poll Exists.
func (c *Client) Delete(ctx context.Context, path string, permanent bool) error {
	params := url.Values{"path": {path}}
	if permanent {
		params.Set("permanently", "true")
	}

	resp, err := c.doRequest(ctx, "DELETE", "/resources", params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return statusError(resp)
	}

	io.Copy(io.Discard, resp.Body)
	return nil
}

// UploadURL requests a short-lived transfer URL authorizing one upload to
// the remote path. A response that lacks the href field means the path
// already has content and is reported as ErrUploadCollision.
func (c *Client) UploadURL(ctx context.Context, path string) (string, error) {
	params := url.Values{"path": {path}}

	resp, err := c.doRequest(ctx, "GET", "/resources/upload", params)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		// A conflict answer carries no href either; both shapes mean the
		// content is already there.
		if resp.StatusCode == nethttp.StatusConflict {
			io.Copy(io.Discard, resp.Body)
			return "", fmt.Errorf("%w: %s", ErrUploadCollision, path)
		}
		return "", statusError(resp)
	}

	var link models.Link
	if err := json.NewDecoder(resp.Body).Decode(&link); err != nil {
		return "", fmt.Errorf("failed to decode upload link: %w", err)
	}
	if link.Href == "" {
		return "", fmt.Errorf("%w: %s", ErrUploadCollision, path)
	}

	return link.Href, nil
}

// Upload streams the request body to a transfer URL obtained from
// UploadURL, committing the content. size may be -1 when unknown.
func (c *Client) Upload(ctx context.Context, href string, body io.Reader, size int64) error {
	req, err := nethttp.NewRequestWithContext(ctx, "PUT", href, body)
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	if size >= 0 {
		req.ContentLength = size
	}

	resp, err := c.transferClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return statusError(resp)
	}

	io.Copy(io.Discard, resp.Body)
	return nil
}

// FetchURL asks the service to fetch an external URL server-side into the
// remote path. The transfer happens inside the service; the call returns
// once the request is accepted.
func (c *Client) FetchURL(ctx context.Context, path, srcURL string) error {
	params := url.Values{
		"path": {path},
		"url":  {srcURL},
	}

	resp, err := c.doRequest(ctx, "POST", "/resources/upload", params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return statusError(resp)
	}

	io.Copy(io.Discard, resp.Body)
	return nil
}

// Download opens a stream for a file's time-limited download link.
// Returns the body and the content length (-1 when unknown).
// The caller owns the returned ReadCloser.
func (c *Client) Download(ctx context.Context, link string) (io.ReadCloser, int64, error) {
	req, err := nethttp.NewRequestWithContext(ctx, "GET", link, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := c.transferClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("download failed: %w", err)
	}

	if resp.StatusCode != nethttp.StatusOK {
		defer resp.Body.Close()
		return nil, 0, statusError(resp)
	}

	return resp.Body, resp.ContentLength, nil
}
