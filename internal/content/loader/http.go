package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

func loadHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration, maxBody int64) ([]byte, error) {
	if client == nil {
		return nil, errors.New("content loader: http client is not configured")
	}
	if url == "" {
		return nil, errors.New("content loader: url is required")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("content loader: unexpected status " + resp.Status)
	}

	if resp.ContentLength > maxBody {
		return nil, fmt.Errorf("content loader: body of %d bytes exceeds limit of %d", resp.ContentLength, maxBody)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBody {
		return nil, fmt.Errorf("content loader: body exceeds limit of %d bytes", maxBody)
	}
	return data, nil
}
