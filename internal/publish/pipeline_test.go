package publish

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdpublish/internal/article"
	"git.home.luguber.info/inful/mdpublish/internal/devto"
	"git.home.luguber.info/inful/mdpublish/internal/foundation/errors"
	"git.home.luguber.info/inful/mdpublish/internal/observability"
)

type fakeLister struct {
	articles   []devto.Article
	err        error
	calls      int
	requestIDs []string
}

func (f *fakeLister) ListMyArticles(ctx context.Context) ([]devto.Article, error) {
	f.calls++
	f.requestIDs = append(f.requestIDs, observability.RequestID(ctx))
	return f.articles, f.err
}

func writeMarkdown(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "post.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const helloDoc = "---\ntitle: \"Hello\"\ntags: [\"a\",\"b\"]\n---\nBody text."

func TestPrepareCreate(t *testing.T) {
	lister := &fakeLister{}
	p := New(lister, nil)

	env, err := p.Prepare(context.Background(), writeMarkdown(t, helloDoc)).ToTuple()
	require.NoError(t, err)

	assert.Equal(t, article.ActionCreate, env.Action)
	assert.Equal(t, "Hello", env.Article.Title)
	assert.Equal(t, "Body text.", env.Article.BodyMarkdown)
	assert.Nil(t, env.Article.ID)
	assert.Equal(t, 1, lister.calls)
	require.Len(t, lister.requestIDs, 1)
	assert.NotEmpty(t, lister.requestIDs[0])
}

func TestPrepareUpdate(t *testing.T) {
	lister := &fakeLister{articles: []devto.Article{{ID: 42, Title: "Hello"}}}

	env, err := New(lister, nil).Prepare(context.Background(), writeMarkdown(t, helloDoc)).ToTuple()
	require.NoError(t, err)
	assert.Equal(t, article.ActionUpdate, env.Action)
	require.NotNil(t, env.Article.ID)
	assert.Equal(t, int64(42), *env.Article.ID)
}

func TestPrepareMissingKeysSkipsLookup(t *testing.T) {
	lister := &fakeLister{articles: []devto.Article{{ID: 42, Title: "Hello"}}}

	_, err := New(lister, nil).Prepare(context.Background(), writeMarkdown(t, "---\ntitle: Hello\n---\nbody")).ToTuple()
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	assert.Contains(t, err.Error(), "tags")
	assert.Zero(t, lister.calls)
}

func TestPrepareTypeErrorSkipsLookup(t *testing.T) {
	lister := &fakeLister{}

	_, err := New(lister, nil).Prepare(context.Background(), writeMarkdown(t, "---\ntitle: T\ntags: {a: 1}\n---\n")).ToTuple()
	require.Error(t, err)
	assert.Zero(t, lister.calls)
}

func TestPrepareMissingFile(t *testing.T) {
	lister := &fakeLister{}

	_, err := New(lister, nil).Prepare(context.Background(), filepath.Join(t.TempDir(), "nope.md")).ToTuple()
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
	assert.Zero(t, lister.calls)
}

func TestPrepareMalformedFrontMatter(t *testing.T) {
	lister := &fakeLister{}

	_, err := New(lister, nil).Prepare(context.Background(), writeMarkdown(t, "---\ntitle: [unclosed\n---\n")).ToTuple()
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryParse))
	assert.Zero(t, lister.calls)
}

func TestPrepareLookupErrorPropagates(t *testing.T) {
	lookupErr := errors.AuthError("dev.to rejected the API key").
		WithCause(&devto.HTTPError{StatusCode: 401, Status: "401 Unauthorized", URL: "https://dev.to/api/articles/me"}).
		Build()
	lister := &fakeLister{err: lookupErr}

	_, err := New(lister, nil).Prepare(context.Background(), writeMarkdown(t, helloDoc)).ToTuple()
	require.Error(t, err)
	assert.ErrorIs(t, err, lookupErr)
	assert.Equal(t, 1, lister.calls)
}

func TestPrepareDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	lister := &fakeLister{articles: []devto.Article{{ID: 42, Title: "Hello"}}}

	res := New(lister, logger).Prepare(context.Background(), writeMarkdown(t, helloDoc))
	require.True(t, res.IsOk())

	out := buf.String()
	assert.Contains(t, out, "stage=lookup")
	assert.Contains(t, out, "request_id="+lister.requestIDs[0])
	assert.Contains(t, out, "action=update")
	assert.Contains(t, out, "article_id=42")
	assert.Contains(t, out, "fingerprint=")
}
