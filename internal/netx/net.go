// Package netx holds small HTTP helpers shared by the command-line tools.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

const DefaultContentType = "application/octet-stream"

// PutPresigned uploads body to a presigned S3 PUT URL. Any non-2xx reply is
// an error carrying the status and the start of the response body.
func PutPresigned(ctx context.Context, client *http.Client, url string, body io.Reader, size int64, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = DefaultContentType
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = size

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}
