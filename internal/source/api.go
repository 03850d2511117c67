package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/nextcareer/nextcareer/internal/models"
	"github.com/nextcareer/nextcareer/internal/network"
	"github.com/rs/zerolog"
)

const DefaultEndpoint = "https://final-project-api-alpha.vercel.app/api/jobs"

const maxBodyBytes = 16 << 20

var _ Doer = (*network.Client)(nil)

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d from %s", e.StatusCode, e.URL)
}

// API reads the vacancy listing endpoint.
type API struct {
	client   Doer
	endpoint string
	maxBody  int64
	logger   zerolog.Logger
}

func NewAPI(client Doer, endpoint string, logger zerolog.Logger) *API {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &API{client: client, endpoint: endpoint, maxBody: maxBodyBytes, logger: logger}
}

func (a *API) Endpoint() string {
	return a.endpoint
}

// Fetch issues one GET that bypasses caches. When ctx is cancelled the
// returned error is ctx.Err().
func (a *API) Fetch(ctx context.Context) ([]models.RawJobRecord, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, a.endpoint, nil)
	if err != nil {
		return nil, err
	}
	applyHeaders(req, nil)

	start := time.Now()
	a.logger.Debug().Str("url", a.endpoint).Msg("fetching listings")

	resp, err := a.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", network.ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: a.endpoint}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, a.maxBody+1))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: read body: %v", network.ErrRequestFailed, err)
	}
	if int64(len(body)) > a.maxBody {
		return nil, fmt.Errorf("%w: response body exceeds %d bytes", network.ErrRequestFailed, a.maxBody)
	}

	records := DecodePayload(body, a.logger)
	a.logger.Debug().
		Int("status", resp.StatusCode).
		Int("records", len(records)).
		Dur("elapsed", time.Since(start)).
		Msg("fetched listings")
	return records, nil
}

// IsCanceled reports whether err stems from a cancelled fetch.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

func applyHeaders(req *fhttp.Request, headers map[string]string) {
	if headers == nil {
		headers = map[string]string{}
	}
	if _, ok := headers["accept"]; !ok {
		headers["accept"] = "application/json, text/plain, */*"
	}
	if _, ok := headers["cache-control"]; !ok {
		headers["cache-control"] = "no-store"
	}
	if _, ok := headers["pragma"]; !ok {
		headers["pragma"] = "no-cache"
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
}
