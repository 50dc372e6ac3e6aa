package link

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gitlink/internal/domain"
	"gitlink/internal/git"
	"gitlink/internal/model"
)

const hash = "0123456789abcdef0123456789abcdef01234567"

func editorAt(file string, line int) model.EditorContext {
	return model.EditorContext{
		FilePath:         file,
		CursorLine:       line,
		WorkspaceFolders: []string{"/workspace"},
	}
}

func happyRepo() *MockRepo {
	repo := new(MockRepo)
	repo.On("Remotes", mock.Anything).Return([]model.Remote{
		{Name: "origin", FetchURL: "https://github.com/owner/repo.git"},
	}, nil)
	repo.On("TopLevel", mock.Anything).Return("/workspace", nil)
	repo.On("AbbrevRef", mock.Anything).Return("main", nil)
	return repo
}

func TestGather(t *testing.T) {
	repo := happyRepo()
	var opened string
	g := &Gatherer{Open: openerFor(repo, &opened), PreferredRemote: "origin"}

	req, err := g.Gather(context.Background(), editorAt("/workspace/a/b/c.ts", 9))

	require.NoError(t, err)
	assert.Equal(t, model.LinkRequest{
		Remote:     "https://github.com/owner/repo.git",
		Path:       "a/b/c.ts",
		Ref:        "main",
		LineNumber: 10,
	}, req)
	assert.Equal(t, "/workspace", opened)
	repo.AssertNotCalled(t, "HeadCommit", mock.Anything)
}

func TestGather_NoActiveEditor(t *testing.T) {
	g := &Gatherer{Open: func(string) (git.Repo, error) {
		t.Fatal("repository must not be opened")
		return nil, nil
	}}

	_, err := g.Gather(context.Background(), editorAt("", 0))
	assert.ErrorIs(t, err, domain.ErrNoActiveEditor)

	_, err = g.Gather(context.Background(), editorAt("/workspace/a.go", -1))
	assert.ErrorIs(t, err, domain.ErrNoActiveEditor)
}

func TestGather_NotInWorkspace(t *testing.T) {
	g := &Gatherer{Open: openerFor(new(MockRepo), nil)}

	_, err := g.Gather(context.Background(), editorAt("/elsewhere/a.go", 0))

	assert.ErrorIs(t, err, domain.ErrNotInWorkspace)
}

func TestGather_NoRemote(t *testing.T) {
	repo := new(MockRepo)
	repo.On("Remotes", mock.Anything).Return([]model.Remote{}, nil)
	g := &Gatherer{Open: openerFor(repo, nil)}

	_, err := g.Gather(context.Background(), editorAt("/workspace/a.go", 0))

	assert.ErrorIs(t, err, domain.ErrNoRemote)
	repo.AssertNotCalled(t, "TopLevel", mock.Anything)
}

func TestGather_RemoteSelection(t *testing.T) {
	tests := []struct {
		name      string
		remotes   []model.Remote
		preferred string
		want      string
	}{
		{
			name: "origin wins regardless of position",
			remotes: []model.Remote{
				{Name: "upstream", FetchURL: "git@gitlab.com:up/repo.git"},
				{Name: "origin", FetchURL: "git@github.com:me/repo.git"},
			},
			preferred: "origin",
			want:      "git@github.com:me/repo.git",
		},
		{
			name: "first listed without origin",
			remotes: []model.Remote{
				{Name: "upstream", FetchURL: "git@gitlab.com:up/repo.git"},
				{Name: "fork", FetchURL: "git@github.com:me/repo.git"},
			},
			preferred: "origin",
			want:      "git@gitlab.com:up/repo.git",
		},
		{
			name: "configured preference",
			remotes: []model.Remote{
				{Name: "origin", FetchURL: "git@github.com:me/repo.git"},
				{Name: "upstream", FetchURL: "git@gitlab.com:up/repo.git"},
			},
			preferred: "upstream",
			want:      "git@gitlab.com:up/repo.git",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectRemote(tt.remotes, tt.preferred).FetchURL)
		})
	}
}

func TestGather_DetachedHeadUsesCommit(t *testing.T) {
	repo := new(MockRepo)
	repo.On("Remotes", mock.Anything).Return([]model.Remote{{Name: "origin", FetchURL: "git@github.com:o/r.git"}}, nil)
	repo.On("TopLevel", mock.Anything).Return("/workspace", nil)
	repo.On("AbbrevRef", mock.Anything).Return(git.Detached, nil)
	repo.On("HeadCommit", mock.Anything).Return(hash, nil)
	g := &Gatherer{Open: openerFor(repo, nil)}

	req, err := g.Gather(context.Background(), editorAt("/workspace/a.go", 0))

	require.NoError(t, err)
	assert.Equal(t, hash, req.Ref)
	assert.NotEqual(t, "HEAD", req.Ref)
}

func TestGather_BranchFailureUsesCommit(t *testing.T) {
	repo := new(MockRepo)
	repo.On("Remotes", mock.Anything).Return([]model.Remote{{Name: "origin", FetchURL: "git@github.com:o/r.git"}}, nil)
	repo.On("TopLevel", mock.Anything).Return("/workspace", nil)
	repo.On("AbbrevRef", mock.Anything).Return("", errBoom)
	repo.On("HeadCommit", mock.Anything).Return(hash, nil)
	g := &Gatherer{Open: openerFor(repo, nil)}

	req, err := g.Gather(context.Background(), editorAt("/workspace/a.go", 0))

	require.NoError(t, err)
	assert.Equal(t, hash, req.Ref)
}

func TestGather_CommitFailure(t *testing.T) {
	repo := new(MockRepo)
	repo.On("Remotes", mock.Anything).Return([]model.Remote{{Name: "origin", FetchURL: "git@github.com:o/r.git"}}, nil)
	repo.On("TopLevel", mock.Anything).Return("/workspace", nil)
	repo.On("AbbrevRef", mock.Anything).Return(git.Detached, nil)
	repo.On("HeadCommit", mock.Anything).Return("", errBoom)
	g := &Gatherer{Open: openerFor(repo, nil)}

	_, err := g.Gather(context.Background(), editorAt("/workspace/a.go", 0))

	assert.ErrorIs(t, err, domain.ErrVCSQueryFailed)
	assert.ErrorIs(t, err, errBoom)
}

func TestGather_VCSFailures(t *testing.T) {
	t.Run("open", func(t *testing.T) {
		g := &Gatherer{Open: func(string) (git.Repo, error) { return nil, errBoom }}

		_, err := g.Gather(context.Background(), editorAt("/workspace/a.go", 0))

		assert.ErrorIs(t, err, domain.ErrVCSQueryFailed)
	})

	t.Run("remotes", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("Remotes", mock.Anything).Return(nil, errBoom)
		g := &Gatherer{Open: openerFor(repo, nil)}

		_, err := g.Gather(context.Background(), editorAt("/workspace/a.go", 0))

		assert.ErrorIs(t, err, domain.ErrVCSQueryFailed)
		assert.Equal(t, "Error generating link: boom", domain.Message(err))
	})

	t.Run("top level keeps backend error", func(t *testing.T) {
		backendErr := domain.NewVCSError("git rev-parse", errors.New("fatal: not a git repository"))
		repo := new(MockRepo)
		repo.On("Remotes", mock.Anything).Return([]model.Remote{{Name: "origin", FetchURL: "x"}}, nil)
		repo.On("TopLevel", mock.Anything).Return("", backendErr)
		g := &Gatherer{Open: openerFor(repo, nil)}

		_, err := g.Gather(context.Background(), editorAt("/workspace/a.go", 0))

		assert.Same(t, backendErr, err)
	})
}

func TestGather_RepoRootDiffersFromWorkspace(t *testing.T) {
	repo := new(MockRepo)
	repo.On("Remotes", mock.Anything).Return([]model.Remote{{Name: "origin", FetchURL: "git@github.com:o/r.git"}}, nil)
	repo.On("TopLevel", mock.Anything).Return("/repo", nil)
	repo.On("AbbrevRef", mock.Anything).Return("main", nil)
	var opened string
	g := &Gatherer{Open: openerFor(repo, &opened)}

	req, err := g.Gather(context.Background(), model.EditorContext{
		FilePath:         "/repo/services/api/handler.go",
		CursorLine:       0,
		WorkspaceFolders: []string{"/repo/services"},
	})

	require.NoError(t, err)
	assert.Equal(t, "/repo/services", opened)
	assert.Equal(t, "services/api/handler.go", req.Path)
}

func TestGather_FileOutsideRepository(t *testing.T) {
	repo := new(MockRepo)
	repo.On("Remotes", mock.Anything).Return([]model.Remote{{Name: "origin", FetchURL: "git@github.com:o/r.git"}}, nil)
	repo.On("TopLevel", mock.Anything).Return("/workspace/vendored", nil)
	g := &Gatherer{Open: openerFor(repo, nil)}

	_, err := g.Gather(context.Background(), editorAt("/workspace/main.go", 0))

	assert.ErrorIs(t, err, domain.ErrVCSQueryFailed)
}

func TestWorkspaceFolder(t *testing.T) {
	folders := []string{"/src", "/src/project", "/other"}

	got, ok := WorkspaceFolder(folders, "/src/project/main.go")
	assert.True(t, ok)
	assert.Equal(t, "/src/project", got)

	got, ok = WorkspaceFolder(folders, "/src/lib/x.go")
	assert.True(t, ok)
	assert.Equal(t, "/src", got)

	_, ok = WorkspaceFolder(folders, "/srcfoo/x.go")
	assert.False(t, ok)

	_, ok = WorkspaceFolder(nil, "/src/x.go")
	assert.False(t, ok)
}

func TestRelativePath(t *testing.T) {
	rel, err := RelativePath("/repo", "/repo/a/b/c.ts")
	require.NoError(t, err)
	assert.Equal(t, "a/b/c.ts", rel)

	_, err = RelativePath("/repo", "/repo")
	assert.ErrorIs(t, err, domain.ErrVCSQueryFailed)

	_, err = RelativePath("/repo", "/repository/a.go")
	assert.ErrorIs(t, err, domain.ErrVCSQueryFailed)
}
