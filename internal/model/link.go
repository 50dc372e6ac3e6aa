package model

// EditorContext is the ambient state a link is generated from.
type EditorContext struct {
	FilePath         string   // absolute path of the file being viewed
	CursorLine       int      // 0-based line of the cursor; negative means no selection
	WorkspaceFolders []string // absolute workspace folder roots
}

// Remote is a configured git remote.
type Remote struct {
	Name     string
	FetchURL string
}

// LinkRequest carries everything the resolver needs for one link.
type LinkRequest struct {
	Remote     string // raw remote connection string
	Path       string // repo-relative, forward slashes, no leading slash
	Ref        string // branch name or full commit hash
	LineNumber int    // 1-based
}

// Style selects the URL layout a provider uses.
type Style int

const (
	GitHubStyle Style = iota
	GitLabStyle
)

func (s Style) String() string {
	switch s {
	case GitHubStyle:
		return "github"
	case GitLabStyle:
		return "gitlab"
	default:
		return "unknown"
	}
}

// RemoteDescriptor is the parsed form of a remote connection string.
type RemoteDescriptor struct {
	Host  string
	Owner string // may contain "/" for nested groups
	Repo  string // ".git" suffix stripped
	Style Style
}
