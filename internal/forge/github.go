package forge

import (
	"regexp"

	"gitlink/internal/model"
)

// gitHubRepo stops the repo name at the next "/" or ".", which drops a
// ".git" suffix along with anything after it.
var gitHubRepo = regexp.MustCompile(`(?i)github\.com[:/]([^/]+)/([^/.]+)`)

func gitHub() Rule {
	return Rule{
		Name:    "github",
		Match:   containsFold("github.com"),
		Extract: hostedExtractor("github.com", gitHubRepo, model.GitHubStyle),
	}
}

// hostedExtractor handles providers with a single public host, for both
// scp-like (host:owner/repo) and URL (host/owner/repo) remotes.
func hostedExtractor(host string, re *regexp.Regexp, style model.Style) func(string) (model.RemoteDescriptor, bool) {
	return func(remote string) (model.RemoteDescriptor, bool) {
		m := re.FindStringSubmatch(remote)
		if len(m) != 3 {
			return model.RemoteDescriptor{}, false
		}
		return model.RemoteDescriptor{
			Host:  host,
			Owner: m[1],
			Repo:  m[2],
			Style: style,
		}, true
	}
}
