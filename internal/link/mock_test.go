package link

import (
	"context"
	"errors"

	"github.com/stretchr/testify/mock"

	"gitlink/internal/git"
	"gitlink/internal/model"
)

// MockRepo mocks git.Repo
type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) Remotes(ctx context.Context) ([]model.Remote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Remote), args.Error(1)
}

func (m *MockRepo) TopLevel(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockRepo) AbbrevRef(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockRepo) HeadCommit(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// openerFor returns an Opener that hands out repo and records the directory.
func openerFor(repo git.Repo, opened *string) git.Opener {
	return func(dir string) (git.Repo, error) {
		if opened != nil {
			*opened = dir
		}
		return repo, nil
	}
}

// recorder captures notifications and clipboard writes.
type recorder struct {
	infos     []string
	errors    []string
	clipboard []string
	clipErr   error
}

func (r *recorder) Info(msg string)  { r.infos = append(r.infos, msg) }
func (r *recorder) Error(msg string) { r.errors = append(r.errors, msg) }

func (r *recorder) WriteAll(text string) error {
	if r.clipErr != nil {
		return r.clipErr
	}
	r.clipboard = append(r.clipboard, text)
	return nil
}

var errBoom = errors.New("boom")
