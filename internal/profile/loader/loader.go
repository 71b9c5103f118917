package loader

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-comlinkgen/pkg/profile"
)

type fetchFunc func(l *Loader, ctx context.Context, location string) ([]byte, error)

// fetchers maps each source kind to the strategy that reads it.
var fetchers = map[profile.SourceKind]fetchFunc{
	profile.SourceKindFile:  (*Loader).fetchFile,
	profile.SourceKindFS:    (*Loader).fetchFS,
	profile.SourceKindURL:   (*Loader).fetchURL,
	profile.SourceKindStdin: (*Loader).fetchStdin,
}

// Loader implements profile.Loader. URL sources are only served when an
// HTTP client was supplied or the HTTP fallback is enabled.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	stdin   io.Reader
	timeout time.Duration
}

var _ profile.Loader = (*Loader)(nil)

// New builds a Loader from resolved options.
func New(options profile.LoaderOptions) *Loader {
	l := &Loader{
		fs:      options.FileSystem,
		stdin:   options.Stdin,
		timeout: options.RequestTimeout,
	}
	switch {
	case options.HTTPClient != nil:
		l.http = options.HTTPClient
	case options.AllowHTTPFallback:
		l.http = &http.Client{}
	}
	return l
}

// Load reads src and wraps the payload in a Document.
func (l *Loader) Load(ctx context.Context, src profile.Source) (profile.Document, error) {
	if src == nil {
		return profile.Document{}, errors.New("profile loader: source is nil")
	}
	fetch, ok := fetchers[src.Kind()]
	if !ok {
		return profile.Document{}, errors.Newf("profile loader: unsupported source kind %q", src.Kind())
	}
	data, err := fetch(l, ctx, src.Location())
	if err != nil {
		return profile.Document{}, errors.Wrapf(err, "profile loader: load %s", src.Location())
	}
	return profile.NewDocument(src, data)
}
