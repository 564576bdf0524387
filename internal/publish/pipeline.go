// Package publish runs the read, validate, lookup and build stages for one
// markdown file.
package publish

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/mdpublish/internal/article"
	"git.home.luguber.info/inful/mdpublish/internal/devto"
	"git.home.luguber.info/inful/mdpublish/internal/foundation"
	"git.home.luguber.info/inful/mdpublish/internal/frontmatter"
	"git.home.luguber.info/inful/mdpublish/internal/logfields"
	"git.home.luguber.info/inful/mdpublish/internal/observability"
)

// ArticleLister returns the articles owned by the authenticated user.
type ArticleLister interface {
	ListMyArticles(ctx context.Context) ([]devto.Article, error)
}

// Pipeline prepares a dev.to payload from a markdown file.
type Pipeline struct {
	Lister ArticleLister
	Logger *slog.Logger
}

// New returns a Pipeline that looks up existing articles through lister.
func New(lister ArticleLister, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{Lister: lister, Logger: logger}
}

// Prepare reads path and produces the envelope to print. A document missing
// required keys fails before the lister is called. The lister is called at
// most once.
func (p *Pipeline) Prepare(ctx context.Context, path string) foundation.Result[article.Envelope, error] {
	ctx = observability.WithPath(ctx, path)

	doc, err := frontmatter.ReadFile(path)
	if err != nil {
		return foundation.Err[article.Envelope, error](err)
	}
	p.debug(observability.WithStage(ctx, "parse"), "parsed markdown file",
		slog.Bool("front_matter", doc.HadFrontMatter),
		slog.Int("body_bytes", len(doc.Body)))
	if fp, fpErr := doc.Fingerprint(); fpErr == nil {
		p.debug(ctx, "document fingerprint", logfields.Fingerprint(fp))
	}

	meta, err := article.Validate(doc)
	if err != nil {
		return foundation.Err[article.Envelope, error](err)
	}

	ctx = observability.WithRequestID(ctx, uuid.NewString())
	lookupCtx := observability.WithStage(ctx, "lookup")
	p.debug(lookupCtx, "fetching existing articles", logfields.Title(meta.Title))

	existing, err := p.Lister.ListMyArticles(lookupCtx)
	if err != nil {
		attrs := []slog.Attr{logfields.Error(err)}
		if code, ok := devto.StatusCode(err); ok {
			attrs = append(attrs, logfields.StatusCode(code))
		}
		p.debug(lookupCtx, "article lookup failed", attrs...)
		return foundation.Err[article.Envelope, error](err)
	}
	p.debug(lookupCtx, "fetched existing articles", logfields.Articles(len(existing)))

	payload, action, err := article.Assemble(meta, doc.Body, existing)
	if err != nil {
		return foundation.Err[article.Envelope, error](err)
	}

	attrs := []slog.Attr{logfields.Title(payload.Title), logfields.Action(action.String())}
	if payload.ID != nil {
		attrs = append(attrs, logfields.ArticleID(*payload.ID))
	}
	p.debug(observability.WithStage(ctx, "build"), "built article payload", attrs...)

	return foundation.Ok[article.Envelope, error](article.Envelope{Article: payload, Action: action})
}

func (p *Pipeline) debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	observability.DebugContext(ctx, p.Logger, msg, attrs...)
}
