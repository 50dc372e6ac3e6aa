package forge

import (
	"net/url"
	"regexp"
	"strings"

	"gitlink/internal/model"
)

var gitLabRepo = regexp.MustCompile(`(?i)gitlab\.com[:/]([^/]+)/([^/.]+)`)

func gitLabDotCom() Rule {
	return Rule{
		Name:    "gitlab.com",
		Match:   containsFold("gitlab.com"),
		Extract: hostedExtractor("gitlab.com", gitLabRepo, model.GitLabStyle),
	}
}

// selfHostedGitLab covers any remote mentioning "gitlab" that is not gitlab.com.
func selfHostedGitLab() Rule {
	return Rule{
		Name:    "gitlab",
		Match:   containsFold("gitlab"),
		Extract: parseSelfHosted,
	}
}

// parseSelfHosted splits a remote into host, owner and repo. Everything
// between the host and the last segment is the owner, so nested groups
// (group/subgroup/repo) keep their full namespace.
func parseSelfHosted(remote string) (model.RemoteDescriptor, bool) {
	host, path, ok := splitHostPath(remote)
	if !ok {
		return model.RemoteDescriptor{}, false
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 {
		return model.RemoteDescriptor{}, false
	}
	repo := strings.TrimSuffix(parts[len(parts)-1], ".git")
	owner := strings.Join(parts[:len(parts)-1], "/")
	if host == "" || owner == "" || repo == "" {
		return model.RemoteDescriptor{}, false
	}

	return model.RemoteDescriptor{
		Host:  host,
		Owner: owner,
		Repo:  repo,
		Style: model.GitLabStyle,
	}, true
}

// splitHostPath accepts URL remotes (https://, http://, ssh://, git://) and
// scp-like remotes (user@host:owner/repo.git).
func splitHostPath(remote string) (host, path string, ok bool) {
	if strings.Contains(remote, "://") {
		u, err := url.Parse(remote)
		if err != nil {
			return "", "", false
		}
		host = u.Host
		if u.Scheme != "http" && u.Scheme != "https" {
			// an ssh or git port says nothing about the web port
			host = u.Hostname()
		}
		return host, u.Path, true
	}

	hostAndPath := remote
	if i := strings.LastIndex(remote, "@"); i >= 0 {
		hostAndPath = remote[i+1:]
	}
	hostAndPath = strings.Replace(hostAndPath, ":", "/", 1)

	host, path, found := strings.Cut(hostAndPath, "/")
	if !found {
		return "", "", false
	}
	return host, path, true
}
