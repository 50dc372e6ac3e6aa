package git

import (
	"context"
	"fmt"

	"gitlink/internal/model"
)

// Repo is the read-only set of queries link generation needs.
type Repo interface {
	// Remotes lists configured remotes in the order the backend reports them.
	Remotes(ctx context.Context) ([]model.Remote, error)
	// TopLevel returns the absolute repository root (rev-parse --show-toplevel).
	TopLevel(ctx context.Context) (string, error)
	// AbbrevRef returns the current branch, or "HEAD" when detached.
	AbbrevRef(ctx context.Context) (string, error)
	// HeadCommit returns the full hash HEAD points at.
	HeadCommit(ctx context.Context) (string, error)
}

// Opener opens the repository that contains dir.
type Opener func(dir string) (Repo, error)

// Backend names
const (
	BackendExec  = "exec"
	BackendGoGit = "gogit"
)

// OpenerFor returns the Opener for a backend name.
func OpenerFor(backend string) (Opener, error) {
	switch backend {
	case BackendExec, "":
		return OpenExec, nil
	case BackendGoGit:
		return OpenGoGit, nil
	default:
		return nil, fmt.Errorf("unknown git backend %q", backend)
	}
}

// Detached is what AbbrevRef reports when HEAD is not on a branch.
const Detached = "HEAD"
