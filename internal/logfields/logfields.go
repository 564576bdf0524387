package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyTitle      = "title"
	KeyAction     = "action"
	KeyArticleID  = "article_id"
	KeyArticles   = "articles"
	KeyStatusCode = "status_code"
	KeyRequestID  = "request_id"
	KeyStage      = "stage"
	KeyURL        = "url"
	KeyDurationMS = "duration_ms"
	KeyHash       = "fingerprint"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Title(t string) slog.Attr         { return slog.String(KeyTitle, t) }
func Action(a string) slog.Attr        { return slog.String(KeyAction, a) }
func ArticleID(id int64) slog.Attr     { return slog.Int64(KeyArticleID, id) }
func Articles(n int) slog.Attr         { return slog.Int(KeyArticles, n) }
func StatusCode(code int) slog.Attr    { return slog.Int(KeyStatusCode, code) }
func RequestID(id string) slog.Attr    { return slog.String(KeyRequestID, id) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func URL(u string) slog.Attr           { return slog.String(KeyURL, u) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Fingerprint(h string) slog.Attr   { return slog.String(KeyHash, h) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
