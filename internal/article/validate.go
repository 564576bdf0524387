package article

import (
	"fmt"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"git.home.luguber.info/inful/mdpublish/internal/foundation/errors"
	"git.home.luguber.info/inful/mdpublish/internal/frontmatter"
)

const (
	KeyTitle     = "title"
	KeyTags      = "tags"
	KeyPublished = "published"
)

// RequiredKeys lists the front matter keys every document must carry, in
// the order they are reported.
var RequiredKeys = []string{KeyTitle, KeyTags}

// Metadata is the typed view of the front matter fields the payload uses.
type Metadata struct {
	Title     string
	Tags      []string
	Published bool
}

// Validate checks doc for the required keys and decodes them.
//
// Missing keys are reported together in one error before any type checks
// run. Type problems are likewise collected across all keys.
func Validate(doc frontmatter.Document) (Metadata, error) {
	if missing := MissingKeys(doc); len(missing) > 0 {
		return Metadata{}, errors.ValidationError("missing keys in front matter: "+strings.Join(missing, ", ")).
			WithContext("missing", missing).
			Build()
	}

	var meta Metadata
	errs := validation.Errors{}

	title, err := scalarString(doc.Fields[KeyTitle])
	if err != nil {
		errs[KeyTitle] = validation.NewError("mdpublish.frontmatter.title_invalid", "must be a string")
	}
	meta.Title = title

	tags, err := tagList(doc.Fields[KeyTags])
	if err != nil {
		errs[KeyTags] = validation.NewError("mdpublish.frontmatter.tags_invalid", "must be a list of strings")
	}
	meta.Tags = tags

	published, err := publishedFlag(doc.Fields[KeyPublished])
	if err != nil {
		errs[KeyPublished] = validation.NewError("mdpublish.frontmatter.published_invalid", "must be a boolean")
	}
	meta.Published = published

	if len(errs) > 0 {
		return Metadata{}, errors.ValidationError("invalid front matter").
			WithCause(errs).
			Build()
	}
	return meta, nil
}

// MissingKeys returns the required keys absent from doc, in RequiredKeys order.
func MissingKeys(doc frontmatter.Document) []string {
	var missing []string
	for _, key := range RequiredKeys {
		if !doc.Has(key) {
			missing = append(missing, key)
		}
	}
	return missing
}

var errNotScalar = fmt.Errorf("not a scalar")

// scalarString accepts strings and formats other scalars with fmt, so
// `2024` becomes "2024" and `1.0` becomes "1". Empty strings are kept.
func scalarString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case nil, map[string]any, []any:
		return "", errNotScalar
	default:
		return fmt.Sprint(s), nil
	}
}

// publishedFlag accepts a boolean or a quoted "true"/"false". Absent and
// null both mean false.
func publishedFlag(v any) (bool, error) {
	switch p := v.(type) {
	case nil:
		return false, nil
	case bool:
		return p, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(p))
	default:
		return false, errNotScalar
	}
}

// tagList accepts a YAML sequence of scalars or a comma separated string.
func tagList(v any) ([]string, error) {
	switch t := v.(type) {
	case []any:
		tags := make([]string, 0, len(t))
		for _, item := range t {
			s, err := scalarString(item)
			if err != nil {
				return nil, err
			}
			tags = append(tags, s)
		}
		return tags, nil
	case string:
		tags := []string{}
		for part := range strings.SplitSeq(t, ",") {
			if part = strings.TrimSpace(part); part != "" {
				tags = append(tags, part)
			}
		}
		return tags, nil
	default:
		return nil, errNotScalar
	}
}
