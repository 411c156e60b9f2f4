package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v6"
	gitconfig "github.com/go-git/go-git/v6/config"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const defaultRemote = "origin"

type Service struct {
	config Config

	logger *zap.Logger
}

// NewService creates a new GitService.
func NewService(config Config, logger *zap.Logger) *Service {
	return &Service{
		config: config,
		logger: logger,
	}
}

// GetStatus reports the current branch, last commit and worktree cleanliness.
func (s *Service) GetStatus(_ context.Context, repoPath string) (*RepositoryStatus, error) {
	s.logger.Debug("getting repository status",
		zap.String("path", repoPath))

	repo, err := s.open(repoPath)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		s.logger.Error("failed to get HEAD", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		s.logger.Error("failed to get commit object", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		s.logger.Error("failed to get worktree", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	wtStatus, err := worktree.Status()
	if err != nil {
		s.logger.Error("failed to get worktree status", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	changed := lo.Keys(lo.PickBy(map[string]*git.FileStatus(wtStatus), func(_ string, fs *git.FileStatus) bool {
		return fs.Staging != git.Unmodified || fs.Worktree != git.Unmodified
	}))
	sort.Strings(changed)

	status := &RepositoryStatus{
		Path:               repoPath,
		IsDirty:            len(changed) > 0,
		LastCommit:         head.Hash().String(),
		LastCommitTime:     commit.Committer.When,
		UncommittedChanges: changed,
	}
	if head.Name().IsBranch() {
		status.CurrentBranch = head.Name().Short()
	}

	s.logger.Debug("repository status retrieved",
		zap.String("path", repoPath),
		zap.String("branch", status.CurrentBranch),
		zap.Bool("dirty", status.IsDirty))

	return status, nil
}

// GetIdentity returns user.name and user.email merged from the local, global
// and system configuration.
func (s *Service) GetIdentity(_ context.Context, repoPath string) (Identity, error) {
	repo, err := s.open(repoPath)
	if err != nil {
		return Identity{}, err
	}

	cfg, err := repo.ConfigScoped(gitconfig.SystemScope)
	if err != nil {
		s.logger.Error("failed to read git config", zap.Error(err))
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	return Identity{
		Name:  cfg.User.Name,
		Email: cfg.User.Email,
	}, nil
}

// BlameLine returns the hash of the commit that last modified the given
// 1-based line of filePath at HEAD.
func (s *Service) BlameLine(_ context.Context, repoPath, filePath string, line int) (string, error) {
	s.logger.Debug("blaming line",
		zap.String("path", repoPath),
		zap.String("file", filePath),
		zap.Int("line", line))

	repo, err := s.open(repoPath)
	if err != nil {
		return "", err
	}

	commit, err := s.headCommit(repo)
	if err != nil {
		return "", err
	}

	result, err := git.Blame(commit, filepath.ToSlash(filePath))
	if errors.Is(err, object.ErrFileNotFound) {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, filePath)
	}
	if err != nil {
		s.logger.Error("failed to blame file", zap.String("file", filePath), zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrBlameFailed, err)
	}

	if line < 1 || line > len(result.Lines) {
		return "", fmt.Errorf("%w: %s has %d lines, requested %d", ErrLineOutOfRange, filePath, len(result.Lines), line)
	}

	hash := result.Lines[line-1].Hash.String()

	s.logger.Debug("line attributed",
		zap.String("file", filePath),
		zap.Int("line", line),
		zap.String("hash", hash))

	return hash, nil
}

// GetCommitsSince lists the commits reachable from HEAD but not from base,
// in log order.
func (s *Service) GetCommitsSince(ctx context.Context, repoPath, base string) ([]CommitInfo, error) {
	repo, err := s.open(repoPath)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		s.logger.Error("failed to get HEAD", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	baseHash := plumbing.NewHash(base)
	if _, commitErr := repo.CommitObject(baseHash); commitErr != nil {
		return nil, fmt.Errorf("%w: %s", ErrCommitNotFound, base)
	}

	reachable := make(map[plumbing.Hash]struct{})
	baseIter, err := repo.Log(&git.LogOptions{From: baseHash})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}
	err = baseIter.ForEach(func(c *object.Commit) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		reachable[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk base history: %w", err)
	}

	headIter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	var commits []CommitInfo
	err = headIter.ForEach(func(c *object.Commit) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if _, ok := reachable[c.Hash]; ok {
			return nil
		}

		commits = append(commits, CommitInfo{
			Hash:    c.Hash.String(),
			Summary: summary(c.Message),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk history: %w", err)
	}

	s.logger.Debug("commits listed",
		zap.String("base", base),
		zap.String("head", head.Hash().String()),
		zap.Int("count", len(commits)))

	return commits, nil
}

// CreateCommit stages the requested files and commits them.
func (s *Service) CreateCommit(_ context.Context, req CommitRequest) (string, error) {
	s.logger.Info("creating commit",
		zap.String("path", req.Path),
		zap.Strings("files", req.Files))

	repo, err := s.open(req.Path)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		s.logger.Error("failed to get worktree", zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	for _, file := range req.Files {
		if _, addErr := worktree.Add(filepath.ToSlash(file)); addErr != nil {
			s.logger.Error("failed to stage file", zap.String("file", file), zap.Error(addErr))
			return "", fmt.Errorf("%w: stage %s: %w", ErrCommitFailed, file, addErr)
		}
	}

	sig := signature(req.Author)
	hash, err := worktree.Commit(req.Message, &git.CommitOptions{
		Author:    sig,
		Committer: sig,
	})
	if err != nil {
		s.logger.Error("failed to commit", zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}

	s.logger.Info("commit created",
		zap.String("hash", hash.String()))

	return hash.String(), nil
}

// HasTag reports whether a tag with the given name exists.
func (s *Service) HasTag(_ context.Context, repoPath, name string) (bool, error) {
	repo, err := s.open(repoPath)
	if err != nil {
		return false, err
	}

	_, err = repo.Tag(name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, git.ErrTagNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}
}

// CreateTag creates a tag on HEAD.
func (s *Service) CreateTag(ctx context.Context, req TagCreateRequest) (*TagInfo, error) {
	s.logger.Info("creating tag",
		zap.String("path", req.Path),
		zap.String("name", req.Name),
		zap.Bool("annotated", req.Annotated))

	repo, err := s.open(req.Path)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		s.logger.Error("failed to get HEAD", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	exists, err := s.HasTag(ctx, req.Path, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrTagAlreadyExists, req.Name)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		s.logger.Error("failed to get commit object", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}
	date := commit.Committer.When

	var opts *git.CreateTagOptions
	if req.Annotated {
		message := req.Message
		if message == "" {
			message = req.Name
		}
		tagger := signature(req.Tagger)
		date = tagger.When
		opts = &git.CreateTagOptions{
			Tagger:  tagger,
			Message: message,
		}
	}

	if _, err = repo.CreateTag(req.Name, head.Hash(), opts); err != nil {
		s.logger.Error("failed to create tag", zap.Error(err))
		return nil, fmt.Errorf("failed to create tag %s: %w", req.Name, err)
	}

	s.logger.Info("tag created",
		zap.String("name", req.Name),
		zap.String("hash", head.Hash().String()))

	return &TagInfo{
		Name: req.Name,
		Hash: head.Hash().String(),
		Date: date,
	}, nil
}

// Push pushes the requested branch and tags to the remote.
func (s *Service) Push(ctx context.Context, req PushRequest) error {
	remote := lo.CoalesceOrEmpty(req.Remote, s.config.Remote, defaultRemote)

	s.logger.Info("pushing to remote",
		zap.String("path", req.Path),
		zap.String("remote", remote),
		zap.String("branch", req.Branch),
		zap.Strings("tags", req.Tags))

	repo, err := s.open(req.Path)
	if err != nil {
		return err
	}

	auth, err := authMethod(s.config.Auth)
	if err != nil {
		return err
	}

	var specs []gitconfig.RefSpec
	if req.Branch != "" {
		specs = append(specs, refSpec(plumbing.NewBranchReferenceName(req.Branch)))
	}
	for _, tag := range req.Tags {
		specs = append(specs, refSpec(plumbing.NewTagReferenceName(tag)))
	}

	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   specs,
		Auth:       auth,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		s.logger.Error("failed to push", zap.String("remote", remote), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPushFailed, err)
	}

	s.logger.Info("pushed to remote",
		zap.String("remote", remote))

	return nil
}

func (s *Service) open(repoPath string) (*git.Repository, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		s.logger.Error("failed to open repository", zap.String("path", repoPath), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrRepositoryNotFound, err)
	}

	return repo, nil
}

func (s *Service) headCommit(repo *git.Repository) (*object.Commit, error) {
	head, err := repo.Head()
	if err != nil {
		s.logger.Error("failed to get HEAD", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		s.logger.Error("failed to get commit object", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	return commit, nil
}

func refSpec(ref plumbing.ReferenceName) gitconfig.RefSpec {
	return gitconfig.RefSpec(ref.String() + ":" + ref.String())
}

func signature(id Identity) *object.Signature {
	return &object.Signature{
		Name:  id.Name,
		Email: id.Email,
		When:  time.Now(),
	}
}

// summary returns the subject of a commit message: its first paragraph
// folded onto a single line.
func summary(message string) string {
	paragraph, _, _ := strings.Cut(strings.TrimSpace(message), "\n\n")
	lines := lo.Map(strings.Split(paragraph, "\n"), func(line string, _ int) string {
		return strings.TrimSpace(line)
	})

	return strings.Join(lines, " ")
}
