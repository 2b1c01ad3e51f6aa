// Package fixtures loads and runs YAML scenario suites: source snippets with
// the type, value or failure they are expected to produce.
package fixtures

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"gopkg.in/yaml.v3"

	"minilang/interpreter-go/pkg/driver"
)

// Suite is a named list of scenarios.
type Suite struct {
	Path      string     `yaml:"-"`
	Name      string     `yaml:"name"`
	Scenarios []Scenario `yaml:"scenarios"`
}

// Scenario is one expression and its expected outcome. A scenario either
// expects success (Type and/or Value) or a failure (Error).
type Scenario struct {
	Name   string         `yaml:"name"`
	Source string         `yaml:"source"`
	Type   string         `yaml:"type"`
	Value  string         `yaml:"value"`
	Error  *ExpectedError `yaml:"error"`
	// SkipTypecheckError, when set on a typecheck failure, re-runs the
	// source without the static check and expects a runtime error
	// containing this text.
	SkipTypecheckError string `yaml:"skip_typecheck_error"`
}

// ExpectedError names the failing stage and a fragment of its message.
type ExpectedError struct {
	Stage    driver.Stage `yaml:"stage"`
	Contains string       `yaml:"contains"`
}

// LoadSuite reads a suite file from disk.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: read %s: %w", path, err)
	}
	suite, err := ParseSuite(data)
	if err != nil {
		return nil, fmt.Errorf("fixtures: %s: %w", path, err)
	}
	suite.Path = path
	return suite, nil
}

// LoadSuiteAtRevision reads the suite at path as committed at rev in the git
// repository rooted at repoDir. rev is anything go-git can resolve: a branch,
// tag, HEAD~n or a commit hash.
func LoadSuiteAtRevision(repoDir, rev, path string) (*Suite, error) {
	repo, err := git.PlainOpen(repoDir)
	if err != nil {
		return nil, fmt.Errorf("fixtures: open repository %s: %w", repoDir, err)
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("fixtures: resolve %s: %w", rev, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("fixtures: load commit %s: %w", hash, err)
	}
	file, err := commit.File(filepath.ToSlash(filepath.Clean(path)))
	if err != nil {
		return nil, fmt.Errorf("fixtures: %s at %s: %w", path, rev, err)
	}
	contents, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("fixtures: read %s at %s: %w", path, rev, err)
	}
	suite, err := ParseSuite([]byte(contents))
	if err != nil {
		return nil, fmt.Errorf("fixtures: %s at %s: %w", path, rev, err)
	}
	suite.Path = fmt.Sprintf("%s@%s", path, rev)
	return suite, nil
}

// ParseSuite decodes and validates suite YAML.
func ParseSuite(data []byte) (*Suite, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var suite Suite
	if err := decoder.Decode(&suite); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("suite is empty")
		}
		return nil, fmt.Errorf("parse suite: %w", err)
	}
	if err := suite.validate(); err != nil {
		return nil, err
	}
	return &suite, nil
}

func (s *Suite) validate() error {
	var errs driver.ValidationError
	if strings.TrimSpace(s.Name) == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if len(s.Scenarios) == 0 {
		errs.Issues = append(errs.Issues, "scenarios must not be empty")
	}
	seen := make(map[string]struct{}, len(s.Scenarios))
	for i, sc := range s.Scenarios {
		label := fmt.Sprintf("scenarios[%d]", i)
		if sc.Name == "" {
			errs.Issues = append(errs.Issues, label+": name must be provided")
		} else {
			label = fmt.Sprintf("scenario %q", sc.Name)
			if _, dup := seen[sc.Name]; dup {
				errs.Issues = append(errs.Issues, label+": duplicate name")
			}
			seen[sc.Name] = struct{}{}
		}
		if strings.TrimSpace(sc.Source) == "" {
			errs.Issues = append(errs.Issues, label+": source must be provided")
		}
		if sc.Error == nil {
			if sc.Type == "" && sc.Value == "" {
				errs.Issues = append(errs.Issues, label+": expects neither a type, a value nor an error")
			}
			if sc.SkipTypecheckError != "" {
				errs.Issues = append(errs.Issues, label+": skip_typecheck_error requires a typecheck error")
			}
			continue
		}
		if sc.Type != "" || sc.Value != "" {
			errs.Issues = append(errs.Issues, label+": cannot expect both an error and a result")
		}
		if !sc.Error.Stage.IsValid() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s: unknown error stage %q", label, sc.Error.Stage))
		}
		if sc.SkipTypecheckError != "" && sc.Error.Stage != driver.StageTypecheck {
			errs.Issues = append(errs.Issues, label+": skip_typecheck_error requires a typecheck error")
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}
