package release

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apiarycd/autorelease/internal/manifest"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine decides whether a release is due and drives it:
// gate, change detection, classification, then bump, publish and push.
type Engine struct {
	config Config

	vcs      VCS
	registry Registry
	manifest Manifest
	tokens   TokenSource

	logger *zap.Logger
}

func NewEngine(
	config Config,
	vcs VCS,
	registry Registry,
	manifest Manifest,
	tokens TokenSource,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		config: config,

		vcs:      vcs,
		registry: registry,
		manifest: manifest,
		tokens:   tokens,

		logger: logger,
	}
}

// Run executes one release attempt. Expected no-ops are returned as skipped
// outcomes; errors are fatal.
func (e *Engine) Run(ctx context.Context) (*Outcome, error) {
	runID := uuid.Must(uuid.NewV7()).String()
	log := e.logger.With(zap.String("run_id", runID))

	outcome := &Outcome{RunID: runID}

	runCtx, err := e.gate(ctx, log, outcome)
	if err != nil {
		return nil, err
	}
	if runCtx == nil {
		return outcome, nil
	}

	pkg, err := e.manifest.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	outcome.Package = pkg.Name
	outcome.PreviousVersion = pkg.Version

	pair, err := e.detectChange(ctx, log, pkg)
	if err != nil {
		return nil, err
	}
	outcome.Fingerprints = pair

	if !pair.Changed() {
		log.Info("package unchanged since last publish",
			zap.String("package", pkg.Name),
			zap.String("version", pkg.Version),
			zap.String("shasum", pair.Local))
		return skip(outcome, ReasonUnchanged,
			fmt.Sprintf("%s@%s is unchanged, nothing to publish", pkg.Name, pkg.Version)), nil
	}

	bump, commits, err := e.classify(ctx, log, pkg)
	if err != nil {
		return nil, err
	}

	next, err := NextVersion(pkg.Version, bump)
	if err != nil {
		return nil, err
	}

	outcome.Bump = bump
	outcome.Commits = commits
	outcome.Version = next
	outcome.Tag = e.config.TagPrefix + next

	exists, err := e.vcs.HasTag(ctx, outcome.Tag)
	if err != nil {
		return nil, fmt.Errorf("failed to look up tag %s: %w", outcome.Tag, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrTagExists, outcome.Tag)
	}

	log.Info("release planned",
		zap.String("package", pkg.Name),
		zap.String("from", pkg.Version),
		zap.String("to", next),
		zap.String("bump", string(bump)),
		zap.Int("commits", commits))

	if e.config.DryRun {
		return skip(outcome, ReasonDryRun,
			fmt.Sprintf("would release %s@%s (%s bump from %s)", pkg.Name, next, bump, pkg.Version)), nil
	}

	if bumpErr := e.bump(ctx, runCtx, outcome); bumpErr != nil {
		return nil, bumpErr
	}

	if pubErr := e.registry.Publish(ctx, runCtx.Token.Value); pubErr != nil {
		return nil, fmt.Errorf("%w: %s@%s: %w", ErrPublishFailed, pkg.Name, next, pubErr)
	}
	log.Info("published", zap.String("package", pkg.Name), zap.String("version", next))

	// A failure here leaves the registry ahead of the remote; there is no
	// compensation, the error names the published version instead.
	if pushErr := e.vcs.Push(ctx, runCtx.Branch, outcome.Tag); pushErr != nil {
		return nil, fmt.Errorf("%w: %s@%s is published but %s was not pushed: %w",
			ErrPushFailed, pkg.Name, next, outcome.Tag, pushErr)
	}

	outcome.Status = StatusPublished
	outcome.Message = fmt.Sprintf("released %s@%s", pkg.Name, next)

	log.Info("release complete",
		zap.String("package", pkg.Name),
		zap.String("version", next),
		zap.String("tag", outcome.Tag))

	return outcome, nil
}

// gate validates the environment and repository. It returns a nil
// RunContext and fills outcome when the run should be skipped.
func (e *Engine) gate(ctx context.Context, log *zap.Logger, outcome *Outcome) (*RunContext, error) {
	status, err := e.vcs.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get repository status: %w", err)
	}

	if status.Branch != e.config.Branch {
		log.Info("not on release branch",
			zap.String("branch", status.Branch),
			zap.String("release_branch", e.config.Branch))
		skip(outcome, ReasonBranch,
			fmt.Sprintf("not on %s (on %s), nothing to release", e.config.Branch, describeBranch(status.Branch)))
		return nil, nil //nolint:nilnil // skipped run
	}

	token, err := e.tokens.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenMissing, err)
	}

	artifact := filepath.Join(e.config.Dir, e.config.ArtifactPath)
	if _, statErr := os.Stat(artifact); statErr != nil {
		if errors.Is(statErr, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist, build the package first", ErrArtifactMissing, e.config.ArtifactPath)
		}
		return nil, fmt.Errorf("%w: %w", ErrArtifactMissing, statErr)
	}

	if availErr := e.registry.Available(ctx); availErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrToolMissing, availErr)
	}

	if !status.Clean {
		return nil, fmt.Errorf("%w: %v", ErrDirtyWorktree, status.Changes)
	}

	identity, err := e.vcs.Identity(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIdentityMissing, err)
	}
	if identity.Name == "" || identity.Email == "" {
		return nil, fmt.Errorf("%w: set user.name and user.email", ErrIdentityMissing)
	}

	log.Debug("preconditions met",
		zap.String("branch", status.Branch),
		zap.Stringer("token", token),
		zap.String("identity", identity.Name))

	return &RunContext{
		Branch:   status.Branch,
		Token:    token,
		Identity: identity,
	}, nil
}

func (e *Engine) detectChange(ctx context.Context, log *zap.Logger, pkg *manifest.Descriptor) (FingerprintPair, error) {
	remote, err := e.registry.PublishedFingerprint(ctx, pkg.Name, pkg.Version)
	if err != nil {
		return FingerprintPair{}, fmt.Errorf("failed to query published fingerprint: %w", err)
	}

	local, err := e.registry.PackFingerprint(ctx)
	if err != nil {
		return FingerprintPair{}, fmt.Errorf("failed to compute local fingerprint: %w", err)
	}

	log.Debug("fingerprints",
		zap.String("remote", remote),
		zap.String("local", local))

	return FingerprintPair{Remote: remote, Local: local}, nil
}

// classify returns the bump for the commits since the version field last
// changed, along with the number of commits considered.
func (e *Engine) classify(ctx context.Context, log *zap.Logger, pkg *manifest.Descriptor) (Bump, int, error) {
	base, err := e.vcs.BlameLine(ctx, e.manifest.Path(), pkg.VersionLine)
	if err != nil {
		return BumpNone, 0, fmt.Errorf("%w: %w", ErrAttribution, err)
	}

	summaries, err := e.vcs.Summaries(ctx, base)
	if err != nil {
		return BumpNone, 0, fmt.Errorf("%w: %w", ErrAttribution, err)
	}

	log.Debug("commits since last version change",
		zap.String("base", base),
		zap.Strings("summaries", summaries))

	return Classify(summaries), len(summaries), nil
}

func (e *Engine) bump(ctx context.Context, runCtx *RunContext, outcome *Outcome) error {
	files, err := e.manifest.SetVersion(ctx, outcome.Version)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBumpFailed, err)
	}

	message := fmt.Sprintf(e.config.CommitMessage, outcome.Version)
	if err = e.vcs.CommitAndTag(ctx, files, message, outcome.Tag, runCtx.Identity); err != nil {
		return fmt.Errorf("%w: %w", ErrBumpFailed, err)
	}

	return nil
}

func skip(outcome *Outcome, reason Reason, message string) *Outcome {
	outcome.Status = StatusSkipped
	outcome.Reason = reason
	outcome.Message = message

	return outcome
}

func describeBranch(branch string) string {
	if branch == "" {
		return "a detached HEAD"
	}
	return branch
}
