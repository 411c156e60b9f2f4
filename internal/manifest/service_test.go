package manifest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

const testManifest = `{
  "name": "@scope/example",
  "description": "has a \"version\" word",
  "version": "1.2.3",
  "scripts": {
    "build": "tsc"
  }
}
`

func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func newTestService(t *testing.T, dir string) *Service {
	t.Helper()

	return NewService(Config{
		Dir:      dir,
		Path:     "package.json",
		LockPath: "package-lock.json",
	}, zaptest.NewLogger(t))
}

func TestService_Read(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "package.json", testManifest)

	desc, err := newTestService(t, dir).Read(context.Background())
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if desc.Name != "@scope/example" {
		t.Errorf("Expected name '@scope/example', got '%s'", desc.Name)
	}
	if desc.Version != "1.2.3" {
		t.Errorf("Expected version '1.2.3', got '%s'", desc.Version)
	}
	if desc.VersionLine != 4 {
		t.Errorf("Expected version on line 4, got %d", desc.VersionLine)
	}
}

func TestService_ReadErrors(t *testing.T) {
	cases := []struct {
		name     string
		content  string
		expected error
	}{
		{name: "no version", content: `{"name": "pkg"}`, expected: ErrNoVersionField},
		{name: "numeric version", content: `{"name": "pkg", "version": 1}`, expected: ErrNoVersionField},
		{name: "no name", content: `{"version": "1.0.0"}`, expected: ErrNoNameField},
		{name: "invalid json", content: `{"name": "pkg",`, expected: ErrInvalidManifest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeTestFile(t, dir, "package.json", tc.content)

			_, err := newTestService(t, dir).Read(context.Background())
			if !errors.Is(err, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, err)
			}
		})
	}

	_, err := newTestService(t, t.TempDir()).Read(context.Background())
	if !errors.Is(err, ErrManifestNotFound) {
		t.Errorf("Expected ErrManifestNotFound, got %v", err)
	}
}

func TestService_SetVersion(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "package.json", testManifest)
	writeTestFile(t, dir, "package-lock.json", "{\n  \"name\": \"@scope/example\",\n  \"version\": \"1.2.3\",\n  \"lockfileVersion\": 3\n}\n")

	service := newTestService(t, dir)

	files, err := service.SetVersion(context.Background(), "1.3.0")
	if err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}

	if len(files) != 2 || files[0] != "package.json" || files[1] != "package-lock.json" {
		t.Errorf("Unexpected files: %v", files)
	}

	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		t.Fatal(err)
	}

	expected := `{
  "name": "@scope/example",
  "description": "has a \"version\" word",
  "version": "1.3.0",
  "scripts": {
    "build": "tsc"
  }
}
`
	if string(data) != expected {
		t.Errorf("Unexpected manifest:\n%s", data)
	}

	lock, err := os.ReadFile(filepath.Join(dir, "package-lock.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(lock) != "{\n  \"name\": \"@scope/example\",\n  \"version\": \"1.3.0\",\n  \"lockfileVersion\": 3\n}\n" {
		t.Errorf("Unexpected lock file:\n%s", lock)
	}

	desc, err := service.Read(context.Background())
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if desc.Version != "1.3.0" {
		t.Errorf("Expected version '1.3.0', got '%s'", desc.Version)
	}
}

func TestService_SetVersionWithoutLock(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "package.json", testManifest)

	files, err := newTestService(t, dir).SetVersion(context.Background(), "2.0.0")
	if err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}

	if len(files) != 1 || files[0] != "package.json" {
		t.Errorf("Unexpected files: %v", files)
	}
}

func TestSetRootPackageVersion(t *testing.T) {
	lock := `{
  "name": "example",
  "version": "1.3.0",
  "lockfileVersion": 3,
  "packages": {
    "": {
      "name": "example",
      "version": "1.2.3",
      "dependencies": {
        "dep": "^1.2.3"
      }
    },
    "node_modules/dep": {
      "version": "1.2.3"
    }
  }
}
`
	expected := strings.Replace(lock, `"version": "1.2.3",`, `"version": "1.3.0",`, 1)

	if got := string(setRootPackageVersion([]byte(lock), "1.3.0")); got != expected {
		t.Errorf("Unexpected lock file:\n%s", got)
	}

	for _, doc := range []string{
		`{"version": "1.2.3"}`,
		`{"version": "1.2.3", "packages": {}}`,
		`{"version": "1.2.3", "packages": {"node_modules/dep": {"version": "1.2.3"}}}`,
	} {
		if got := string(setRootPackageVersion([]byte(doc), "9.9.9")); got != doc {
			t.Errorf("Expected %s unchanged, got %s", doc, got)
		}
	}
}
