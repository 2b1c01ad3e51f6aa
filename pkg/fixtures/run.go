package fixtures

import (
	"errors"
	"fmt"
	"strings"

	"minilang/interpreter-go/pkg/driver"
	"minilang/interpreter-go/pkg/runtime"
)

// Outcome is the verdict for one scenario. Message explains a failure.
type Outcome struct {
	Scenario string
	Passed   bool
	Message  string
}

// Report collects the outcomes of a suite run in scenario order.
type Report struct {
	Suite    string
	Outcomes []Outcome
}

// Passed reports whether every scenario passed.
func (r Report) Passed() bool {
	return len(r.Failures()) == 0
}

// Failures returns the failed outcomes.
func (r Report) Failures() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if !o.Passed {
			failed = append(failed, o)
		}
	}
	return failed
}

// Summary renders "suite: N passed, M failed".
func (r Report) Summary() string {
	failed := len(r.Failures())
	return fmt.Sprintf("%s: %d passed, %d failed", r.Suite, len(r.Outcomes)-failed, failed)
}

// Run executes every scenario in a fresh session. Limits come from cfg (nil
// means the defaults); the static check always runs, since scenarios state
// which stage they expect to fail in.
func Run(suite *Suite, cfg *driver.Config) Report {
	if cfg == nil {
		cfg = driver.DefaultConfig()
	}
	checked := *cfg
	checked.Typecheck = true
	unchecked := *cfg
	unchecked.Typecheck = false

	report := Report{Suite: suite.Name}
	for _, sc := range suite.Scenarios {
		message := runScenario(sc, &checked, &unchecked)
		report.Outcomes = append(report.Outcomes, Outcome{
			Scenario: sc.Name,
			Passed:   message == "",
			Message:  message,
		})
	}
	return report
}

func runScenario(sc Scenario, checked, unchecked *driver.Config) string {
	res, err := driver.NewSession(checked).Run(sc.Source)
	if sc.Error == nil {
		if err != nil {
			return fmt.Sprintf("unexpected %v", err)
		}
		if sc.Type != "" && res.Type.String() != sc.Type {
			return fmt.Sprintf("type: expected %s, got %s", sc.Type, res.Type)
		}
		if sc.Value != "" && runtime.Format(res.Value) != sc.Value {
			return fmt.Sprintf("value: expected %s, got %s", sc.Value, runtime.Format(res.Value))
		}
		return ""
	}

	if msg := matchStageError(err, sc.Error.Stage, sc.Error.Contains); msg != "" {
		if err == nil {
			return fmt.Sprintf("%s, got value %s", msg, runtime.Format(res.Value))
		}
		return msg
	}
	if sc.SkipTypecheckError == "" {
		return ""
	}
	_, err = driver.NewSession(unchecked).Run(sc.Source)
	if msg := matchStageError(err, driver.StageRuntime, sc.SkipTypecheckError); msg != "" {
		return "without typecheck: " + msg
	}
	return ""
}

func matchStageError(err error, stage driver.Stage, contains string) string {
	want := fmt.Sprintf("expected %s error containing %q", stage, contains)
	if err == nil {
		return want
	}
	var stageErr *driver.StageError
	if !errors.As(err, &stageErr) {
		return fmt.Sprintf("%s, got %v", want, err)
	}
	if stageErr.Stage != stage || !strings.Contains(stageErr.Err.Error(), contains) {
		return fmt.Sprintf("%s, got %v", want, err)
	}
	return ""
}
