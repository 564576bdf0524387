package version

// Version contains the application version information.
// This should be set via build-time ldflags in production:
// go build -ldflags "-X git.home.luguber.info/inful/mdpublish/internal/version.Version=v1.0.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Name is the binary name used in usage text and the User-Agent header.
const Name = "mdpublish"

// UserAgent returns the User-Agent sent to the dev.to API.
func UserAgent() string {
	return Name + "/" + Version
}
