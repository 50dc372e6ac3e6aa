package forge

import (
	"fmt"
	"net/url"
	"strings"

	"gitlink/internal/domain"
	"gitlink/internal/model"
)

// Rule maps one family of remotes to a web URL layout.
// Rules are evaluated in order; the first whose Match holds decides.
type Rule struct {
	Name    string
	Match   func(remote string) bool
	Extract func(remote string) (model.RemoteDescriptor, bool)
}

// Resolver turns link requests into provider web URLs.
type Resolver struct {
	rules []Rule
}

// New returns a Resolver that evaluates rules in the given order.
func New(rules ...Rule) *Resolver {
	return &Resolver{rules: rules}
}

// Default returns the built-in precedence: GitHub, gitlab.com, then any
// self-hosted GitLab.
func Default() *Resolver {
	return New(gitHub(), gitLabDotCom(), selfHostedGitLab())
}

// Rules returns the rule names in evaluation order.
func (r *Resolver) Rules() []string {
	names := make([]string, len(r.rules))
	for i, rule := range r.rules {
		names[i] = rule.Name
	}
	return names
}

// Describe parses a remote connection string. A remote whose first matching
// rule cannot extract owner and repo is unsupported; later rules are not tried.
func (r *Resolver) Describe(remote string) (model.RemoteDescriptor, error) {
	remote = strings.TrimSpace(remote)
	for _, rule := range r.rules {
		if !rule.Match(remote) {
			continue
		}
		d, ok := rule.Extract(remote)
		if !ok {
			return model.RemoteDescriptor{}, &domain.UnsupportedProviderError{Remote: remote}
		}
		return d, nil
	}
	return model.RemoteDescriptor{}, &domain.UnsupportedProviderError{Remote: remote}
}

// Resolve builds the web URL for req.
func (r *Resolver) Resolve(req model.LinkRequest) (string, error) {
	if req.LineNumber < 1 {
		return "", fmt.Errorf("%w: %d", domain.ErrInvalidLine, req.LineNumber)
	}
	d, err := r.Describe(req.Remote)
	if err != nil {
		return "", err
	}
	return BuildURL(d, req.Ref, req.Path, req.LineNumber), nil
}

// BuildURL renders the blob URL for a file line in the layout of d.Style.
func BuildURL(d model.RemoteDescriptor, ref, path string, line int) string {
	blob := "blob"
	if d.Style == model.GitLabStyle {
		blob = "-/blob"
	}
	return fmt.Sprintf("https://%s/%s/%s/%s/%s/%s#L%d",
		d.Host, d.Owner, d.Repo, blob, escapeSegments(ref), escapeSegments(path), line)
}

// escapeSegments path-escapes each "/"-separated segment, keeping the slashes.
func escapeSegments(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

func containsFold(marker string) func(string) bool {
	return func(remote string) bool {
		return strings.Contains(strings.ToLower(remote), marker)
	}
}
