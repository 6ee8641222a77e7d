package mvg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

// ErrInvalidStationID is returned when a caller supplies a station id that
// does not match the VDV-432 global id format. It is raised before any
// request goes out.
var ErrInvalidStationID = errors.New("invalid global station id format")

// APIError covers every failure talking to the MVG API: transport errors,
// unexpected status codes, wrong content types and malformed payloads.
type APIError struct {
	URL string
	Msg string
}

func (e *APIError) Error() string {
	if e.URL == "" {
		return "bad API call: " + e.Msg
	}
	return fmt.Sprintf("bad API call: %s from %s", e.Msg, e.URL)
}

func apiErrorf(url, format string, args ...any) *APIError {
	return &APIError{URL: url, Msg: fmt.Sprintf(format, args...)}
}

func invalidStationID(id string) error {
	return fmt.Errorf("%w: %q", ErrInvalidStationID, id)
}

// call issues one GET against base+path and decodes the JSON body into out.
// Query parameters with empty values are dropped rather than sent empty.
// There are no retries; a failed call surfaces immediately as *APIError.
func (c *Client) call(ctx context.Context, base, path string, query url.Values, out any) error {
	u, err := url.Parse(base)
	if err != nil {
		return apiErrorf(base, "invalid base URL: %v", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	if len(query) > 0 {
		params := url.Values{}
		for key, values := range query {
			for _, v := range values {
				if v != "" {
					params.Add(key, v)
				}
			}
		}
		u.RawQuery = params.Encode()
	}
	target := u.String()
	c.logger.Debug("calling MVG API", "url", target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return apiErrorf(target, "building request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return apiErrorf(target, "got %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiErrorf(target, "got response (%d)", resp.StatusCode)
	}
	contentType := resp.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "application/json" {
		return apiErrorf(target, "got content type %q", contentType)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apiErrorf(target, "could not decode response: %v", err)
	}
	return nil
}
