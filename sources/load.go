package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/reusee/bftape/logs"
	"github.com/reusee/bftape/nets"
)

const MaxSourceSize = 16 << 20

// LoadSource reads program text from a file path or an http(s) URL.
type LoadSource func(ctx context.Context, location string) (string, error)

func (Module) LoadSource(
	client nets.HTTPClient,
	logger logs.Logger,
) LoadSource {
	return func(ctx context.Context, location string) (string, error) {
		if !isURL(location) {
			content, err := os.ReadFile(location)
			if err != nil {
				return "", err
			}
			return string(content), nil
		}

		logger.DebugContext(ctx, "fetch source", "url", location)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return "", err
		}
		resp, err := client.Do(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("fetch %s: %s", location, resp.Status)
		}

		content, err := io.ReadAll(io.LimitReader(resp.Body, MaxSourceSize+1))
		if err != nil {
			return "", fmt.Errorf("fetch %s: %w", location, err)
		}
		if len(content) > MaxSourceSize {
			return "", fmt.Errorf("fetch %s: source larger than %d bytes", location, MaxSourceSize)
		}
		return string(content), nil
	}
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") ||
		strings.HasPrefix(location, "https://")
}
