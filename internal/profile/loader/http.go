package loader

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
)

// maxDocumentSize bounds every payload, local or remote.
const maxDocumentSize = 16 << 20

const acceptHeader = "application/json, application/yaml;q=0.9, text/yaml;q=0.8, */*;q=0.5"

func (l *Loader) fetchURL(ctx context.Context, url string) ([]byte, error) {
	if l.http == nil {
		return nil, errors.New("http loading is disabled")
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, errors.Newf("GET %s: %s", url, resp.Status)
	}
	return readLimited(resp.Body)
}
