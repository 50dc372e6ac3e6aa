package git

import (
	"context"
	"path/filepath"
	"sort"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"gitlink/internal/domain"
	"gitlink/internal/model"
)

// goGitRepo answers the same queries as execRepo without a git binary.
type goGitRepo struct {
	repo *gogit.Repository
}

// OpenGoGit opens the repository containing dir with go-git, walking up
// to the nearest .git.
func OpenGoGit(dir string) (Repo, error) {
	r, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, domain.NewVCSError("open repository", err)
	}
	return &goGitRepo{repo: r}, nil
}

// Remotes are sorted by name; go-git keeps them in a map.
func (r *goGitRepo) Remotes(ctx context.Context) ([]model.Remote, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewVCSError("list remotes", err)
	}
	list, err := r.repo.Remotes()
	if err != nil {
		return nil, domain.NewVCSError("list remotes", err)
	}

	remotes := make([]model.Remote, 0, len(list))
	for _, rm := range list {
		cfg := rm.Config()
		if len(cfg.URLs) == 0 {
			continue
		}
		remotes = append(remotes, model.Remote{Name: cfg.Name, FetchURL: cfg.URLs[0]})
	}
	sort.Slice(remotes, func(i, j int) bool { return remotes[i].Name < remotes[j].Name })
	return remotes, nil
}

func (r *goGitRepo) TopLevel(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", domain.NewVCSError("resolve top level", err)
	}
	wt, err := r.repo.Worktree()
	if err != nil {
		return "", domain.NewVCSError("resolve top level", err)
	}
	root, err := filepath.Abs(wt.Filesystem.Root())
	if err != nil {
		return "", domain.NewVCSError("resolve top level", err)
	}
	return root, nil
}

func (r *goGitRepo) AbbrevRef(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", domain.NewVCSError("resolve branch", err)
	}
	head, err := r.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", domain.NewVCSError("resolve branch", err)
	}
	if head.Type() != plumbing.SymbolicReference || !head.Target().IsBranch() {
		return Detached, nil
	}
	// unborn branches have no commit to link to
	if _, err := r.repo.Reference(head.Target(), true); err != nil {
		return "", domain.NewVCSError("resolve branch", err)
	}
	return head.Target().Short(), nil
}

func (r *goGitRepo) HeadCommit(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", domain.NewVCSError("resolve HEAD", err)
	}
	head, err := r.repo.Head()
	if err != nil {
		return "", domain.NewVCSError("resolve HEAD", err)
	}
	return head.Hash().String(), nil
}
