package loader

import (
	"context"
	"io"
	"io/fs"
	"os"

	"github.com/cockroachdb/errors"
)

// readLimited reads at most maxDocumentSize bytes and fails on anything
// larger instead of silently truncating.
func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxDocumentSize {
		return nil, errors.Newf("document exceeds %d bytes", maxDocumentSize)
	}
	return data, nil
}

func (l *Loader) fetchFile(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := os.Stat(location)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, errors.Newf("%s is a directory", location)
	}
	f, err := os.Open(location)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLimited(f)
}

func (l *Loader) fetchFS(ctx context.Context, name string) ([]byte, error) {
	if l.fs == nil {
		return nil, errors.New("no fs.FS configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !fs.ValidPath(name) {
		return nil, errors.Newf("invalid fs path %q", name)
	}
	return fs.ReadFile(l.fs, name)
}

func (l *Loader) fetchStdin(ctx context.Context, _ string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	in := l.stdin
	if in == nil {
		in = os.Stdin
	}
	return readLimited(in)
}
