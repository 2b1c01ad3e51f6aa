package fixtures

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minilang/interpreter-go/pkg/driver"
)

func TestCoreSuitePasses(t *testing.T) {
	suite, err := LoadSuite(filepath.Join("testdata", "core.yml"))
	require.NoError(t, err)
	assert.Equal(t, "core", suite.Name)

	report := Run(suite, nil)
	for _, failure := range report.Failures() {
		t.Errorf("%s: %s", failure.Scenario, failure.Message)
	}
	assert.True(t, report.Passed())
	assert.Len(t, report.Outcomes, len(suite.Scenarios))
}

func TestRunReportsMismatches(t *testing.T) {
	suite, err := ParseSuite([]byte(`
name: broken
scenarios:
  - name: wrong value
    source: "1 + 1"
    value: "3"
  - name: wrong type
    source: "1 < 2"
    type: int
  - name: wrong stage
    source: "1 + true"
    error: { stage: runtime, contains: "+" }
  - name: no failure
    source: "1"
    error: { stage: parse, contains: "x" }
  - name: runtime text
    source: "1 + true"
    error: { stage: typecheck, contains: "+" }
    skip_typecheck_error: "nope"
  - name: fine
    source: '"a" ++ "b"'
    value: ab
`))
	require.NoError(t, err)

	report := Run(suite, nil)
	assert.False(t, report.Passed())
	assert.Equal(t, "broken: 1 passed, 5 failed", report.Summary())

	messages := map[string]string{}
	for _, o := range report.Outcomes {
		messages[o.Scenario] = o.Message
	}
	assert.Equal(t, "value: expected 3, got 2", messages["wrong value"])
	assert.Equal(t, "type: expected int, got bool", messages["wrong type"])
	assert.Contains(t, messages["wrong stage"], `expected runtime error containing "+", got Type check failure`)
	assert.Equal(t, `expected parse error containing "x", got value 1`, messages["no failure"])
	assert.Contains(t, messages["runtime text"], "without typecheck: expected runtime error")
	assert.Empty(t, messages["fine"])
}

func TestRunIgnoresDisabledTypecheck(t *testing.T) {
	suite, err := ParseSuite([]byte(`
name: checked
scenarios:
  - name: still checked
    source: "1 + true"
    error: { stage: typecheck, contains: "+" }
`))
	require.NoError(t, err)
	cfg := driver.DefaultConfig()
	cfg.Typecheck = false
	assert.True(t, Run(suite, cfg).Passed())
}

func TestParseSuiteValidation(t *testing.T) {
	_, err := ParseSuite([]byte(`
name: ""
scenarios:
  - name: a
    source: "1"
  - name: a
    source: ""
    value: "1"
  - name: b
    source: "1"
    value: "1"
    error: { stage: lexing, contains: "" }
  - name: c
    source: "1"
    value: "1"
    skip_typecheck_error: "x"
`))
	require.Error(t, err)
	var validation *driver.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, []string{
		"name must be provided",
		`scenario "a": expects neither a type, a value nor an error`,
		`scenario "a": duplicate name`,
		`scenario "a": source must be provided`,
		`scenario "b": cannot expect both an error and a result`,
		`scenario "b": unknown error stage "lexing"`,
		`scenario "c": skip_typecheck_error requires a typecheck error`,
	}, validation.Issues)
}

func TestParseSuiteRejectsUnknownFields(t *testing.T) {
	_, err := ParseSuite([]byte("name: x\nscenarios:\n  - name: a\n    source: \"1\"\n    expect: \"1\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expect")

	_, err = ParseSuite(nil)
	require.Error(t, err)
}

func TestLoadSuiteMissingFile(t *testing.T) {
	_, err := LoadSuite(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func commitFile(t *testing.T, repo *git.Repository, path, message string) string {
	t.Helper()
	worktree, err := repo.Worktree()
	require.NoError(t, err)
	_, err = worktree.Add(path)
	require.NoError(t, err)
	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "minilang",
			Email: "minilang@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)
	return hash.String()
}

func TestLoadSuiteAtRevision(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	suitePath := filepath.Join(dir, "suites", "pinned.yml")
	require.NoError(t, os.MkdirAll(filepath.Dir(suitePath), 0o755))
	first := "name: pinned\nscenarios:\n  - name: sum\n    source: \"1 + 1\"\n    value: \"2\"\n"
	require.NoError(t, os.WriteFile(suitePath, []byte(first), 0o644))
	firstHash := commitFile(t, repo, "suites/pinned.yml", "first")

	second := "name: pinned\nscenarios:\n  - name: sum\n    source: \"2 + 2\"\n    value: \"4\"\n"
	require.NoError(t, os.WriteFile(suitePath, []byte(second), 0o644))
	commitFile(t, repo, "suites/pinned.yml", "second")

	// Uncommitted edits are not visible at any revision.
	require.NoError(t, os.WriteFile(suitePath, []byte("not: yaml: ["), 0o644))

	head, err := LoadSuiteAtRevision(dir, "HEAD", filepath.Join("suites", "pinned.yml"))
	require.NoError(t, err)
	assert.Equal(t, "2 + 2", head.Scenarios[0].Source)
	assert.Equal(t, "suites/pinned.yml@HEAD", filepath.ToSlash(head.Path))

	pinned, err := LoadSuiteAtRevision(dir, firstHash, "suites/pinned.yml")
	require.NoError(t, err)
	assert.Equal(t, "1 + 1", pinned.Scenarios[0].Source)
	assert.True(t, Run(pinned, nil).Passed())

	previous, err := LoadSuiteAtRevision(dir, "HEAD~1", "suites/pinned.yml")
	require.NoError(t, err)
	assert.Equal(t, "1 + 1", previous.Scenarios[0].Source)

	_, err = LoadSuiteAtRevision(dir, "HEAD", "suites/absent.yml")
	require.Error(t, err)

	_, err = LoadSuiteAtRevision(t.TempDir(), "HEAD", "suites/pinned.yml")
	require.Error(t, err)
}
