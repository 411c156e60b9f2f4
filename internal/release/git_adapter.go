package release

import (
	"context"

	"github.com/apiarycd/autorelease/internal/git"
	"github.com/samber/lo"
)

// gitAdapter adapts the git.Service to implement the release.VCS interface.
type gitAdapter struct {
	gitSvc *git.Service
	dir    string
}

// NewGitAdapter creates a new Git adapter bound to the repository in config.Dir.
func NewGitAdapter(gitSvc *git.Service, config Config) VCS {
	return &gitAdapter{
		gitSvc: gitSvc,
		dir:    config.Dir,
	}
}

func (a *gitAdapter) Status(ctx context.Context) (WorktreeStatus, error) {
	status, err := a.gitSvc.GetStatus(ctx, a.dir)
	if err != nil {
		return WorktreeStatus{}, err
	}

	return WorktreeStatus{
		Branch:  status.CurrentBranch,
		Clean:   !status.IsDirty,
		Changes: status.UncommittedChanges,
	}, nil
}

func (a *gitAdapter) Identity(ctx context.Context) (Identity, error) {
	id, err := a.gitSvc.GetIdentity(ctx, a.dir)
	if err != nil {
		return Identity{}, err
	}

	return Identity{Name: id.Name, Email: id.Email}, nil
}

func (a *gitAdapter) BlameLine(ctx context.Context, path string, line int) (string, error) {
	return a.gitSvc.BlameLine(ctx, a.dir, path, line)
}

func (a *gitAdapter) Summaries(ctx context.Context, base string) ([]string, error) {
	commits, err := a.gitSvc.GetCommitsSince(ctx, a.dir, base)
	if err != nil {
		return nil, err
	}

	return lo.Map(commits, func(c git.CommitInfo, _ int) string {
		return c.Summary
	}), nil
}

func (a *gitAdapter) HasTag(ctx context.Context, tag string) (bool, error) {
	return a.gitSvc.HasTag(ctx, a.dir, tag)
}

func (a *gitAdapter) CommitAndTag(ctx context.Context, files []string, message, tag string, author Identity) error {
	id := git.Identity{Name: author.Name, Email: author.Email}

	if _, err := a.gitSvc.CreateCommit(ctx, git.CommitRequest{
		Path:    a.dir,
		Files:   files,
		Message: message,
		Author:  id,
	}); err != nil {
		return err
	}

	_, err := a.gitSvc.CreateTag(ctx, git.TagCreateRequest{
		Path:      a.dir,
		Name:      tag,
		Message:   message,
		Annotated: true,
		Tagger:    id,
	})

	return err
}

func (a *gitAdapter) Push(ctx context.Context, branch, tag string) error {
	return a.gitSvc.Push(ctx, git.PushRequest{
		Path:   a.dir,
		Branch: branch,
		Tags:   []string{tag},
	})
}
