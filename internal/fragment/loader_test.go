package fragment_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"chall/internal/fragment"
	"chall/internal/surface"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingFetcher struct {
	mu     sync.Mutex
	calls  map[string]int
	pages  map[string]string
	failed map[string]bool
}

func newCountingFetcher(pages map[string]string) *countingFetcher {
	return &countingFetcher{calls: make(map[string]int), pages: pages, failed: make(map[string]bool)}
}

func (f *countingFetcher) Fetch(_ context.Context, path string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[path]++
	if f.failed[path] {
		return "", errors.New("connection refused")
	}
	content, ok := f.pages[path]
	if !ok {
		return "", fragment.ErrNotFound
	}
	return content, nil
}

func (f *countingFetcher) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func TestLoader_Load(t *testing.T) {
	t.Run("caches after the first fetch", func(t *testing.T) {
		fetcher := newCountingFetcher(map[string]string{"content/about.html": "<p>About</p>"})
		surf := surface.NewMemory()
		l := fragment.NewLoader(fetcher, surf)

		for range 2 {
			content, err := l.Load(context.Background(), fragment.RegionAbout, "content/about.html")
			require.NoError(t, err)
			assert.Equal(t, "<p>About</p>", content)
		}

		assert.Equal(t, 1, fetcher.count("content/about.html"))
		assert.Equal(t, "<p>About</p>", surf.Content(fragment.RegionAbout))
		assert.True(t, l.IsLoaded(fragment.RegionAbout))
	})

	t.Run("failure writes fallback notice", func(t *testing.T) {
		fetcher := newCountingFetcher(nil)
		surf := surface.NewMemory()
		l := fragment.NewLoader(fetcher, surf)

		_, err := l.Load(context.Background(), fragment.RegionSkills, "content/skills.html")

		require.ErrorIs(t, err, fragment.ErrNotFound)
		assert.Contains(t, surf.Content(fragment.RegionSkills), fragment.FallbackNotice)
		assert.False(t, l.IsLoaded(fragment.RegionSkills))
		assert.Zero(t, l.Cache().Len())
	})

	t.Run("failed fetch is retried on the next load", func(t *testing.T) {
		fetcher := newCountingFetcher(map[string]string{"a.html": "<p>a</p>"})
		fetcher.failed["a.html"] = true
		l := fragment.NewLoader(fetcher, surface.NewMemory())

		_, err := l.Load(context.Background(), "a", "a.html")
		require.Error(t, err)

		fetcher.mu.Lock()
		fetcher.failed["a.html"] = false
		fetcher.mu.Unlock()

		_, err = l.Load(context.Background(), "a", "a.html")
		require.NoError(t, err)
		assert.Equal(t, 2, fetcher.count("a.html"))
	})

	t.Run("sanitizes fetched markup", func(t *testing.T) {
		fetcher := newCountingFetcher(map[string]string{
			"x.html": `<p class="lead">Hi</p><script>alert(1)</script><a href="https://example.com" onclick="x()">link</a>`,
		})
		surf := surface.NewMemory()
		l := fragment.NewLoader(fetcher, surf)

		content, err := l.Load(context.Background(), "x", "x.html")

		require.NoError(t, err)
		assert.Contains(t, content, `<p class="lead">Hi</p>`)
		assert.NotContains(t, content, "<script>")
		assert.NotContains(t, content, "onclick")
		assert.Contains(t, content, `rel="nofollow"`)
	})
}

func TestLoader_SharedCache(t *testing.T) {
	fetcher := newCountingFetcher(map[string]string{"content/about.html": "<p>About</p>"})
	cache := fragment.NewCache()
	first := fragment.NewLoader(fetcher, surface.NewMemory(), fragment.WithCache(cache))
	second := fragment.NewLoader(fetcher, surface.NewMemory(), fragment.WithCache(cache))

	_, err := first.Load(context.Background(), fragment.RegionAbout, "content/about.html")
	require.NoError(t, err)
	_, err = second.Load(context.Background(), fragment.RegionAbout, "content/about.html")
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.count("content/about.html"))
}

func TestLoader_ConcurrentLoadsCollapse(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	fetcher := fragment.FetcherFunc(func(ctx context.Context, path string) (string, error) {
		calls.Add(1)
		<-release
		return "<p>slow</p>", nil
	})
	l := fragment.NewLoader(fetcher, surface.NewMemory())

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = l.Load(context.Background(), surface.Region(string(rune('a'+i))), "slow.html")
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, l.Cache().Len())
}

func TestLoader_CancelledCallerDoesNotFailWaiters(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	var calls atomic.Int32
	fetcher := fragment.FetcherFunc(func(ctx context.Context, path string) (string, error) {
		calls.Add(1)
		once.Do(func() { close(started) })
		select {
		case <-release:
			return "<p>About</p>", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	})

	cache := fragment.NewCache()
	first := fragment.NewLoader(fetcher, surface.NewMemory(), fragment.WithCache(cache))
	secondSurface := surface.NewMemory()
	second := fragment.NewLoader(fetcher, secondSurface, fragment.WithCache(cache))

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := first.Load(ctx, fragment.RegionAbout, "about.html")
		firstErr <- err
	}()
	<-started

	secondErr := make(chan error, 1)
	go func() {
		_, err := second.Load(context.Background(), fragment.RegionAbout, "about.html")
		secondErr <- err
	}()

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	require.NoError(t, <-secondErr)
	assert.Equal(t, "<p>About</p>", secondSurface.Content(fragment.RegionAbout))
	assert.Equal(t, int32(1), calls.Load())

	content, ok := cache.Get("about.html")
	assert.True(t, ok)
	assert.Equal(t, "<p>About</p>", content)
}

func TestLoader_LoadBatch(t *testing.T) {
	fetcher := newCountingFetcher(map[string]string{
		"content/about.html":      "<p>About</p>",
		"content/experience.html": "<p>Experience</p>",
	})
	fetcher.failed["content/skills.html"] = true
	surf := surface.NewMemory()
	l := fragment.NewLoader(fetcher, surf, fragment.WithLogger(zap.NewNop()))

	res := l.LoadBatch(context.Background(), fragment.DefaultSections())

	assert.Equal(t, []surface.Region{fragment.RegionAbout, fragment.RegionExperience}, res.Loaded)
	require.Len(t, res.Failed, 1)
	require.Error(t, res.Err())
	assert.Contains(t, res.Err().Error(), "skills-content")

	assert.Equal(t, "<p>About</p>", surf.Content(fragment.RegionAbout))
	assert.Equal(t, "<p>Experience</p>", surf.Content(fragment.RegionExperience))
	assert.Contains(t, surf.Content(fragment.RegionSkills), fragment.FallbackNotice)
}

func TestLoader_LoadBatchAllSucceed(t *testing.T) {
	fetcher := newCountingFetcher(map[string]string{"a.html": "a", "b.html": "b"})
	l := fragment.NewLoader(fetcher, surface.NewMemory())

	res := l.LoadBatch(context.Background(), map[surface.Region]string{"a": "a.html", "b": "b.html"})

	assert.NoError(t, res.Err())
	assert.Len(t, res.Loaded, 2)
}

func TestLoader_Preload(t *testing.T) {
	fetcher := newCountingFetcher(map[string]string{"content/about.html": "<p>About</p>"})
	l := fragment.NewLoader(fetcher, surface.NewMemory())

	select {
	case <-l.Preload(context.Background(), []string{"content/about.html", "content/missing.html"}):
	case <-time.After(time.Second):
		t.Fatal("preload did not finish")
	}

	assert.Equal(t, 1, l.Cache().Len())
	assert.False(t, l.IsLoaded(fragment.RegionAbout))

	_, err := l.Load(context.Background(), fragment.RegionAbout, "content/about.html")
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.count("content/about.html"))
}

func TestLoader_LoadOnDemand(t *testing.T) {
	fetcher := newCountingFetcher(map[string]string{"content/about.html": "<p>About</p>"})
	l := fragment.NewLoader(fetcher, surface.NewMemory())

	loaded, err := l.LoadOnDemand(context.Background(), fragment.RegionAbout, "content/about.html")
	require.NoError(t, err)
	assert.True(t, loaded)

	loaded, err = l.LoadOnDemand(context.Background(), fragment.RegionAbout, "content/about.html")
	require.NoError(t, err)
	assert.False(t, loaded)
}

func TestLoader_ClearCache(t *testing.T) {
	fetcher := newCountingFetcher(map[string]string{"content/about.html": "<p>About</p>"})
	l := fragment.NewLoader(fetcher, surface.NewMemory())
	_, err := l.Load(context.Background(), fragment.RegionAbout, "content/about.html")
	require.NoError(t, err)

	l.ClearCache()

	assert.Zero(t, l.Cache().Len())
	assert.False(t, l.IsLoaded(fragment.RegionAbout))
	_, err = l.Load(context.Background(), fragment.RegionAbout, "content/about.html")
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.count("content/about.html"))
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/site/content/about.html":
			_, _ = w.Write([]byte("<p>About</p>"))
		case "/site/content/broken.html":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f, err := fragment.NewHTTPFetcher(srv.URL+"/site", time.Second)
	require.NoError(t, err)

	content, err := f.Fetch(context.Background(), "content/about.html")
	require.NoError(t, err)
	assert.Equal(t, "<p>About</p>", content)

	_, err = f.Fetch(context.Background(), "/content/missing.html")
	assert.ErrorIs(t, err, fragment.ErrNotFound)

	_, err = f.Fetch(context.Background(), "content/broken.html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestHTTPFetcher_StaysOnBase(t *testing.T) {
	var otherHits atomic.Int32
	other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		otherHits.Add(1)
		_, _ = w.Write([]byte("<p>other host</p>"))
	}))
	defer other.Close()

	var paths []string
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		_, _ = w.Write([]byte("<p>secret</p>"))
	}))
	defer srv.Close()

	f, err := fragment.NewHTTPFetcher(srv.URL+"/site", time.Second)
	require.NoError(t, err)

	otherHost := strings.TrimPrefix(other.URL, "http://")
	for _, p := range []string{
		other.URL + "/internal",
		"/" + other.URL + "/internal",
		"//" + otherHost + "/internal",
		"content/../../secret",
		"../secret",
		"%2e%2e/secret",
		"mailto:someone@example.com",
		"",
	} {
		t.Run(p, func(t *testing.T) {
			_, err := f.Fetch(context.Background(), p)
			assert.ErrorIs(t, err, fragment.ErrInvalidPath)
		})
	}

	assert.Zero(t, otherHits.Load())
	mu.Lock()
	defer mu.Unlock()
	assert.Empty(t, paths)
}

func TestNewHTTPFetcher_RejectsBadURL(t *testing.T) {
	_, err := fragment.NewHTTPFetcher("ftp://example.com", 0)
	assert.Error(t, err)
}

func TestDirFetcher(t *testing.T) {
	fsys := fstest.MapFS{
		"content/about.html": {Data: []byte("<p>About</p>")},
		"content/skills.md":  {Data: []byte("# Skills\n\n- Go\n")},
	}
	f := fragment.NewDirFetcher(fsys)

	content, err := f.Fetch(context.Background(), "/content/about.html")
	require.NoError(t, err)
	assert.Equal(t, "<p>About</p>", content)

	content, err = f.Fetch(context.Background(), "content/skills.md")
	require.NoError(t, err)
	assert.Contains(t, content, "<h1>Skills</h1>")
	assert.Contains(t, content, "<li>Go</li>")

	_, err = f.Fetch(context.Background(), "content/nope.html")
	assert.ErrorIs(t, err, fragment.ErrNotFound)

	_, err = f.Fetch(context.Background(), "../etc/passwd")
	assert.ErrorIs(t, err, fragment.ErrInvalidPath)
}

// startWatch runs Watch on dir until the test ends and returns its cache.
func startWatch(t *testing.T, dir string) *fragment.Cache {
	t.Helper()
	cache := fragment.NewCache()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- fragment.Watch(ctx, dir, cache, nil) }()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})
	return cache
}

func requireClearedBy(t *testing.T, cache *fragment.Cache, file string) {
	t.Helper()
	cache.Put("content/about.html", "<p>v1</p>")
	require.Eventually(t, func() bool {
		_ = os.WriteFile(file, []byte("<p>v2</p>"), 0o644)
		return cache.Len() == 0
	}, 2*time.Second, 20*time.Millisecond)
}

func TestWatch_ClearsCacheOnChange(t *testing.T) {
	t.Run("top level file", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "about.html")
		require.NoError(t, os.WriteFile(file, []byte("<p>v1</p>"), 0o644))

		requireClearedBy(t, startWatch(t, dir), file)
	})

	t.Run("nested file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "content"), 0o755))
		file := filepath.Join(dir, "content", "about.html")
		require.NoError(t, os.WriteFile(file, []byte("<p>v1</p>"), 0o644))

		requireClearedBy(t, startWatch(t, dir), file)
	})

	t.Run("file in a directory created while watching", func(t *testing.T) {
		dir := t.TempDir()
		cache := startWatch(t, dir)

		cache.Put("content/about.html", "<p>v1</p>")
		later := filepath.Join(dir, "content")
		require.Eventually(t, func() bool {
			_ = os.RemoveAll(later)
			_ = os.MkdirAll(later, 0o755)
			return cache.Len() == 0
		}, 2*time.Second, 20*time.Millisecond)

		requireClearedBy(t, cache, filepath.Join(later, "about.html"))
	})
}

func TestWatch_MissingDir(t *testing.T) {
	err := fragment.Watch(context.Background(), filepath.Join(t.TempDir(), "nope"), fragment.NewCache(), nil)
	assert.Error(t, err)
}
