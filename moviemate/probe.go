package moviemate

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// ProbeResult reports the reachability of the movie API and the poster host
type ProbeResult struct {
	APIURL       string
	APIErr       error
	APILatency   time.Duration
	PopularCount int

	ImageURL     string
	ImageErr     error
	ImageLatency time.Duration
}

// Healthy reports whether both checks passed
func (r ProbeResult) Healthy() bool {
	return r.APIErr == nil && r.ImageErr == nil
}

// Probe checks the popular endpoint and the image host concurrently. Check
// failures are recorded on the result; the returned error is reserved for a
// cancelled context.
func (c *Client) Probe(ctx context.Context, language, imageBaseURL string) (ProbeResult, error) {
	result := ProbeResult{
		APIURL:   c.baseURL,
		ImageURL: imageBaseURL,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		start := time.Now()
		movies, err := c.PopularMovies(gctx, language)
		result.APILatency = time.Since(start)
		result.APIErr = err
		result.PopularCount = len(movies)
		return nil
	})

	if imageBaseURL != "" {
		g.Go(func() error {
			start := time.Now()
			result.ImageErr = c.headImageHost(gctx, imageBaseURL)
			result.ImageLatency = time.Since(start)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	c.logger.Debug().
		AnErr("api_error", result.APIErr).
		AnErr("image_error", result.ImageErr).
		Dur("api_latency", result.APILatency).
		Msg("Probe finished")

	return result, nil
}

func (c *Client) headImageHost(ctx context.Context, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoConnection, err)
	}
	resp.Body.Close()

	// the bare image prefix usually answers 4xx; anything below 500 means the host is up
	if resp.StatusCode >= http.StatusInternalServerError {
		return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return nil
}
