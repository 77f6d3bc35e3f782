package version

import "fmt"

// Version is stamped at build time:
// go build -ldflags "-X git.home.luguber.info/inful/docxposts/internal/version.Version=v0.3.0".
var Version = "dev"

// Build metadata, also stamped via ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by `docxposts --version`.
func String() string {
	return fmt.Sprintf("docxposts %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
