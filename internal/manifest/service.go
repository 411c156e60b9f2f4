package manifest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"
)

const (
	nameField    = "name"
	versionField = "version"
)

type Service struct {
	config Config

	logger *zap.Logger
}

func NewService(config Config, logger *zap.Logger) *Service {
	return &Service{
		config: config,
		logger: logger,
	}
}

// Path returns the manifest path relative to the repository root.
func (s *Service) Path() string {
	return s.config.Path
}

// Read parses the name and version fields of the manifest.
func (s *Service) Read(_ context.Context) (*Descriptor, error) {
	data, err := s.readFile(s.config.Path)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s is not valid JSON", ErrInvalidManifest, s.config.Path)
	}

	name := gjson.GetBytes(data, nameField)
	if !name.Exists() || name.Type != gjson.String || name.Str == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoNameField, s.config.Path)
	}

	version := gjson.GetBytes(data, versionField)
	if !version.Exists() || version.Type != gjson.String || version.Str == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoVersionField, s.config.Path)
	}
	if version.Index <= 0 {
		return nil, fmt.Errorf("%w: cannot locate version field in %s", ErrInvalidManifest, s.config.Path)
	}

	desc := &Descriptor{
		Name:        name.Str,
		Version:     version.Str,
		VersionLine: bytes.Count(data[:version.Index], []byte("\n")) + 1,
	}

	s.logger.Debug("manifest read",
		zap.String("name", desc.Name),
		zap.String("version", desc.Version),
		zap.Int("version_line", desc.VersionLine))

	return desc, nil
}

// SetVersion rewrites the version field of the manifest, and of the lock
// file when one exists, preserving the rest of the documents byte for byte.
// It returns the repository-relative paths it modified.
func (s *Service) SetVersion(_ context.Context, version string) ([]string, error) {
	if err := s.rewrite(s.config.Path, version); err != nil {
		return nil, err
	}
	files := []string{s.config.Path}

	if s.config.LockPath != "" {
		err := s.rewrite(s.config.LockPath, version)
		switch {
		case err == nil:
			files = append(files, s.config.LockPath)
		case errors.Is(err, ErrManifestNotFound):
			s.logger.Debug("no lock file", zap.String("path", s.config.LockPath))
		default:
			return nil, err
		}
	}

	s.logger.Info("version updated",
		zap.String("version", version),
		zap.Strings("files", files))

	return files, nil
}

func (s *Service) rewrite(path, version string) error {
	data, err := s.readFile(path)
	if err != nil {
		return err
	}

	if !gjson.GetBytes(data, versionField).Exists() {
		return fmt.Errorf("%w: %s", ErrNoVersionField, path)
	}

	updated, err := sjson.SetBytes(data, versionField, version)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, path, err)
	}
	updated = setRootPackageVersion(updated, version)

	fullPath := s.fullPath(path)
	info, err := os.Stat(fullPath)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, path, err)
	}

	if err = os.WriteFile(fullPath, updated, info.Mode().Perm()); err != nil {
		s.logger.Error("failed to write file", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, path, err)
	}

	return nil
}

// setRootPackageVersion rewrites packages[""].version, the copy of the
// version lock files from lockfileVersion 2 on carry. Documents without it
// are returned unchanged.
func setRootPackageVersion(data []byte, version string) []byte {
	packages := gjson.GetBytes(data, "packages")
	if !packages.IsObject() || packages.Index == 0 {
		return data
	}

	var root gjson.Result
	packages.ForEach(func(key, value gjson.Result) bool {
		if key.Str == "" {
			root = value
			return false
		}
		return true
	})
	if !root.IsObject() {
		return data
	}

	current := gjson.Get(root.Raw, versionField)
	offset := strings.Index(packages.Raw, root.Raw)
	if !current.Exists() || offset < 0 {
		return data
	}

	start := packages.Index + offset + current.Index
	end := start + len(current.Raw)
	if end > len(data) || string(data[start:end]) != current.Raw {
		return data
	}

	quoted := strconv.Quote(version)

	return slices.Concat(data[:start], []byte(quoted), data[end:])
}

func (s *Service) readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(s.fullPath(path))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return data, nil
}

func (s *Service) fullPath(path string) string {
	return filepath.Join(s.config.Dir, path)
}
