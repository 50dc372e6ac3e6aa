package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"gitlink/internal/domain"
	"gitlink/internal/model"
)

// execRepo runs the git binary against a directory.
type execRepo struct {
	dir string
}

// OpenExec returns a Repo backed by the git CLI. The directory is not
// checked until the first query.
func OpenExec(dir string) (Repo, error) {
	return &execRepo{dir: dir}, nil
}

func (r *execRepo) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", r.dir}, args...)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		op := "git " + args[0]
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", domain.NewVCSError(op, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return "", domain.NewVCSError(op, errors.New(msg))
			}
		}
		return "", domain.NewVCSError(op, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (r *execRepo) Remotes(ctx context.Context) ([]model.Remote, error) {
	out, err := r.run(ctx, "remote", "-v")
	if err != nil {
		return nil, err
	}
	return parseRemotes(out), nil
}

func (r *execRepo) TopLevel(ctx context.Context) (string, error) {
	return r.run(ctx, "rev-parse", "--show-toplevel")
}

func (r *execRepo) AbbrevRef(ctx context.Context) (string, error) {
	return r.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}

func (r *execRepo) HeadCommit(ctx context.Context) (string, error) {
	return r.run(ctx, "rev-parse", "HEAD")
}

// parseRemotes reads `git remote -v` output, keeping fetch URLs in the
// order git prints them:
//
//	origin	git@github.com:o/r.git (fetch)
//	origin	git@github.com:o/r.git (push)
func parseRemotes(raw string) []model.Remote {
	var remotes []model.Remote
	seen := make(map[string]bool)
	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if len(fields) >= 3 && fields[2] != "(fetch)" {
			continue
		}
		if seen[fields[0]] {
			continue
		}
		seen[fields[0]] = true
		remotes = append(remotes, model.Remote{Name: fields[0], FetchURL: fields[1]})
	}
	return remotes
}
