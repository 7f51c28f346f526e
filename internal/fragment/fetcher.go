package fragment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	ErrNotFound    = errors.New("fragment not found")
	ErrInvalidPath = errors.New("invalid fragment path")
)

const DefaultTimeout = 10 * time.Second

type Fetcher interface {
	Fetch(ctx context.Context, path string) (string, error)
}

type FetcherFunc func(ctx context.Context, path string) (string, error)

func (f FetcherFunc) Fetch(ctx context.Context, path string) (string, error) {
	return f(ctx, path)
}

// HTTPFetcher resolves fragment paths against a base URL.
type HTTPFetcher struct {
	base   *url.URL
	client *http.Client
}

func NewHTTPFetcher(baseURL string, timeout time.Duration) (*HTTPFetcher, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid fragment base URL %q: %w", baseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid fragment base URL %q: scheme must be http or https", baseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{base: base, client: &http.Client{Timeout: timeout}}, nil
}

func (f *HTTPFetcher) Fetch(ctx context.Context, p string) (string, error) {
	target, err := f.resolve(p)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return "", err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", p, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("failed to load %s: %w", p, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("failed to load %s: status %d", p, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", p, err)
	}
	return string(body), nil
}

// resolve joins p onto the base URL. Paths that name another host or
// climb out of the base path are rejected.
func (f *HTTPFetcher) resolve(p string) (*url.URL, error) {
	ref, err := url.Parse(strings.TrimLeft(p, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPath, p, err)
	}
	if ref.IsAbs() || ref.Host != "" || ref.Opaque != "" || ref.Path == "" ||
		strings.Contains("/"+ref.Path+"/", "/../") {
		return nil, fmt.Errorf("%w %q", ErrInvalidPath, p)
	}
	target := f.base.ResolveReference(ref)
	if target.Scheme != f.base.Scheme || target.Host != f.base.Host || !strings.HasPrefix(target.Path, f.base.Path) {
		return nil, fmt.Errorf("%w %q", ErrInvalidPath, p)
	}
	return target, nil
}

// DirFetcher reads fragments from a file system. Markdown fragments are
// rendered to HTML.
type DirFetcher struct {
	fsys fs.FS
	md   goldmark.Markdown
}

func NewDirFetcher(fsys fs.FS) *DirFetcher {
	return &DirFetcher{
		fsys: fsys,
		md:   goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (f *DirFetcher) Fetch(ctx context.Context, p string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := path.Clean(strings.TrimPrefix(p, "/"))
	if !fs.ValidPath(name) {
		return "", fmt.Errorf("%w %q", ErrInvalidPath, p)
	}

	data, err := fs.ReadFile(f.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to load %s: %w", p, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", p, err)
	}

	if path.Ext(name) != ".md" {
		return string(data), nil
	}

	var buf bytes.Buffer
	if err := f.md.Convert(data, &buf); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", p, err)
	}
	return buf.String(), nil
}
