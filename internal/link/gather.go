package link

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gitlink/internal/domain"
	"gitlink/internal/git"
	"gitlink/internal/logging"
	"gitlink/internal/model"
)

// Gatherer collects a LinkRequest from the editor context and git.
type Gatherer struct {
	Open            git.Opener
	PreferredRemote string // falls back to the first listed remote
	Log             *logging.Logger
}

// Gather runs the checks in order and stops at the first failure:
// editor, workspace, remotes, repository root, reference.
func (g *Gatherer) Gather(ctx context.Context, ec model.EditorContext) (model.LinkRequest, error) {
	log := g.log()

	if ec.FilePath == "" || ec.CursorLine < 0 {
		return model.LinkRequest{}, domain.ErrNoActiveEditor
	}

	folder, ok := WorkspaceFolder(ec.WorkspaceFolders, ec.FilePath)
	if !ok {
		return model.LinkRequest{}, fmt.Errorf("%w: %s", domain.ErrNotInWorkspace, ec.FilePath)
	}

	repo, err := g.Open(folder)
	if err != nil {
		return model.LinkRequest{}, vcsError("open repository", err)
	}

	remotes, err := repo.Remotes(ctx)
	if err != nil {
		return model.LinkRequest{}, vcsError("git remote", err)
	}
	if len(remotes) == 0 {
		return model.LinkRequest{}, domain.ErrNoRemote
	}
	remote := SelectRemote(remotes, g.PreferredRemote)
	log.Debug().Str("remote", remote.Name).Str("url", remote.FetchURL).Msg("selected remote")

	root, err := repo.TopLevel(ctx)
	if err != nil {
		return model.LinkRequest{}, vcsError("git rev-parse", err)
	}
	rel, err := RelativePath(root, ec.FilePath)
	if err != nil {
		return model.LinkRequest{}, err
	}
	log.Debug().Str("root", root).Str("path", rel).Msg("resolved repository path")

	ref, err := resolveRef(ctx, repo, log)
	if err != nil {
		return model.LinkRequest{}, err
	}
	log.Debug().Str("ref", ref).Msg("resolved reference")

	return model.LinkRequest{
		Remote:     remote.FetchURL,
		Path:       rel,
		Ref:        ref,
		LineNumber: ec.CursorLine + 1,
	}, nil
}

func (g *Gatherer) log() *logging.Logger {
	if g.Log == nil {
		return logging.Nop()
	}
	return g.Log
}

// resolveRef prefers the branch name and falls back to the commit hash when
// HEAD is detached or the branch cannot be read.
func resolveRef(ctx context.Context, repo git.Repo, log *logging.Logger) (string, error) {
	branch, err := repo.AbbrevRef(ctx)
	if err == nil && branch != "" && branch != git.Detached {
		return branch, nil
	}
	if err != nil {
		log.Debug().Err(err).Msg("branch lookup failed, using commit hash")
	}

	hash, err := repo.HeadCommit(ctx)
	if err != nil {
		return "", vcsError("git rev-parse", err)
	}
	return hash, nil
}

// SelectRemote returns the remote named preferred, or the first remote.
// remotes must not be empty.
func SelectRemote(remotes []model.Remote, preferred string) model.Remote {
	for _, r := range remotes {
		if r.Name == preferred {
			return r
		}
	}
	return remotes[0]
}

// WorkspaceFolder returns the innermost folder containing file.
func WorkspaceFolder(folders []string, file string) (string, bool) {
	best := ""
	for _, folder := range folders {
		if _, ok := within(folder, file); ok && len(folder) > len(best) {
			best = folder
		}
	}
	return best, best != ""
}

// RelativePath returns file relative to root with forward slashes. Both
// paths are symlink-resolved when possible so that aliases of the same
// directory compare equal.
func RelativePath(root, file string) (string, error) {
	if rel, ok := within(resolve(root), resolve(file)); ok {
		return filepath.ToSlash(rel), nil
	}
	if rel, ok := within(root, file); ok {
		return filepath.ToSlash(rel), nil
	}
	return "", domain.NewVCSError("relative path",
		fmt.Errorf("%s is not inside repository %s", file, root))
}

// within reports whether target lies strictly below base.
func within(base, target string) (string, bool) {
	rel, err := filepath.Rel(filepath.Clean(base), filepath.Clean(target))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

func resolve(p string) string {
	if r, err := filepath.EvalSymlinks(p); err == nil {
		return r
	}
	return p
}

func vcsError(op string, err error) error {
	if errors.Is(err, domain.ErrVCSQueryFailed) {
		return err
	}
	return domain.NewVCSError(op, err)
}
