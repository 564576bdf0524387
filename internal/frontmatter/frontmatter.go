// Package frontmatter splits a markdown document into its YAML front matter
// and body.
package frontmatter

import (
	stderrors "errors"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/mdpublish/internal/foundation/errors"
)

// blockPattern matches a front matter block anchored at the start of the text:
// a line of exactly "---", the YAML content, and the first following line of
// exactly "---". The content group is absent for an empty block.
var blockPattern = regexp.MustCompile(`\A---[ \t]*\r?\n(?:([\s\S]*?)\r?\n)?---[ \t]*(?:\r?\n|\z)`)

// ErrMalformedFrontMatter is returned (wrapped with the YAML cause) when the
// delimited block is not a YAML mapping.
var ErrMalformedFrontMatter = errors.ParseError("malformed front matter").Build()

// ErrFileNotFound is returned when the markdown path does not exist.
var ErrFileNotFound = errors.NotFoundError("markdown file not found").Build()

// Document is a parsed markdown file. It is built once and not modified.
type Document struct {
	// Fields holds the decoded front matter; empty (never nil) when absent.
	Fields map[string]any
	// Body is the text after the front matter block with surrounding whitespace trimmed.
	Body string
	// HadFrontMatter reports whether a delimited block was found.
	HadFrontMatter bool
}

// Has reports whether key is present in the front matter, whatever its value.
func (d Document) Has(key string) bool {
	_, ok := d.Fields[key]
	return ok
}

// Fingerprint returns the content fingerprint of the document.
func (d Document) Fingerprint() (string, error) {
	fm := ""
	if len(d.Fields) > 0 {
		serialized, err := SerializeYAML(d.Fields)
		if err != nil {
			return "", err
		}
		fm = strings.TrimSuffix(string(serialized), "\n")
	}
	return mdfp.CalculateFingerprintFromParts(fm, d.Body), nil
}

// Extract parses raw document text.
//
// Without a front matter block the whole input becomes the body and Fields is
// empty; required-key validation downstream rejects such documents.
func Extract(content []byte) (Document, error) {
	loc := blockPattern.FindSubmatchIndex(content)
	if loc == nil {
		return Document{
			Fields: map[string]any{},
			Body:   strings.TrimSpace(string(content)),
		}, nil
	}

	var raw []byte
	if loc[2] >= 0 {
		raw = content[loc[2]:loc[3]]
	}

	fields, err := ParseYAML(raw)
	if err != nil {
		return Document{}, errors.WrapError(err, errors.CategoryParse, ErrMalformedFrontMatter.Message()).
			Fatal().
			Build()
	}

	return Document{
		Fields:         fields,
		Body:           strings.TrimSpace(string(content[loc[1]:])),
		HadFrontMatter: true,
	}, nil
}

// ReadFile reads path fully and extracts its front matter. The file is closed
// before returning.
func ReadFile(path string) (Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return Document{}, errors.WrapError(err, errors.CategoryNotFound, ErrFileNotFound.Message()).
				Fatal().
				WithContext("path", path).
				Build()
		}
		return Document{}, errors.FileSystemError("failed to read markdown file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	doc, err := Extract(content)
	if err != nil {
		if classified, ok := errors.AsClassified(err); ok {
			return Document{}, classified.WithContext("path", path)
		}
		return Document{}, err
	}
	return doc, nil
}

// ParseYAML parses raw YAML front matter (without --- delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	if len(strings.TrimSpace(string(frontmatter))) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Render rebuilds a document from fields and body using "---" delimiters and
// deterministic YAML. Extract(Render(f, b)) yields f and the trimmed b.
func Render(fields map[string]any, body string) ([]byte, error) {
	raw, err := SerializeYAML(fields)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(raw)
	b.WriteString("---\n")
	if body != "" {
		b.WriteString("\n")
		b.WriteString(body)
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}
