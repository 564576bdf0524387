// Package article maps a parsed markdown document onto the dev.to article
// payload and decides whether it creates a new article or updates one.
package article

import (
	"encoding/json"
	"io"

	"git.home.luguber.info/inful/mdpublish/internal/devto"
	"git.home.luguber.info/inful/mdpublish/internal/frontmatter"
)

// Action says what the payload is meant to do on dev.to.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
)

func (a Action) String() string { return string(a) }

// Payload is the outbound article record. Field order is the JSON key order.
type Payload struct {
	Title        string   `json:"title"`
	Published    bool     `json:"published"`
	BodyMarkdown string   `json:"body_markdown"`
	Tags         []string `json:"tags"`
	// ID is set only when an article with the same title already exists.
	ID *int64 `json:"id,omitempty"`
}

// Envelope is the document printed on success.
type Envelope struct {
	Article Payload `json:"article"`
	Action  Action  `json:"action"`
}

// Encode writes e as a single JSON line. HTML characters in the body are
// left unescaped.
func (e Envelope) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(e)
}

// Build validates doc and produces the payload together with its action.
// existing is searched for an exact, case-sensitive title match; the first
// match supplies the payload id. Build does no I/O.
func Build(doc frontmatter.Document, existing []devto.Article) (Payload, Action, error) {
	meta, err := Validate(doc)
	if err != nil {
		return Payload{}, "", err
	}
	return Assemble(meta, doc.Body, existing)
}

// Assemble fills the payload from already validated metadata.
func Assemble(meta Metadata, body string, existing []devto.Article) (Payload, Action, error) {
	tags := make([]string, len(meta.Tags))
	copy(tags, meta.Tags)

	payload := Payload{
		Title:        meta.Title,
		Published:    meta.Published,
		BodyMarkdown: body,
		Tags:         tags,
	}

	match, ok := devto.FindByTitle(existing, meta.Title).Get()
	if !ok {
		return payload, ActionCreate, nil
	}
	id := match.ID
	payload.ID = &id
	return payload, ActionUpdate, nil
}
