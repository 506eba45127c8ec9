package version

// Application version information, set at build time with -ldflags.
var (
	Version = "dev"
	Commit  = ""
)

// String returns the version followed by the short commit, when known.
func String() string {
	if Commit == "" {
		return Version
	}
	commit := Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return Version + " (" + commit + ")"
}
