// SPDX-License-Identifier: MPL-2.0

package validate

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"philang/pkg/phiexpr"
	"philang/pkg/phisys"
)

// fixedPredicate always yields the same outcome.
type fixedPredicate struct {
	src string
	ok  bool
}

func (p fixedPredicate) Satisfied(phisys.Probe, *phisys.Invocation) (bool, error) { return p.ok, nil }
func (p fixedPredicate) String() string                                           { return p.src }

// failingPredicate cannot be evaluated at all.
type failingPredicate struct{}

func (failingPredicate) Satisfied(phisys.Probe, *phisys.Invocation) (bool, error) {
	return false, errors.New("unbound symbol")
}
func (failingPredicate) String() string { return "broken" }

// probingPredicate re-invokes its own transformation n times per evaluation.
type probingPredicate struct {
	calls int
}

func (p probingPredicate) Satisfied(pr phisys.Probe, inv *phisys.Invocation) (bool, error) {
	for i := 0; i < p.calls; i++ {
		if _, err := pr.Invoke(inv.Transformation, inv.Operands); err != nil {
			return false, err
		}
	}
	return true, nil
}
func (p probingPredicate) String() string { return "probing" }

func mustRule(t *testing.T, m *phisys.Module, r phisys.Rule) {
	t.Helper()
	if err := m.AddRule(r); err != nil {
		t.Fatalf("AddRule(%s): %v", r.ID, err)
	}
}

func mustBind(t *testing.T, m *phisys.Module, name string, arity int, fn phisys.ApplyFunc) {
	t.Helper()
	if err := m.BindTransformation(name, arity, fn); err != nil {
		t.Fatalf("BindTransformation(%s): %v", name, err)
	}
}

func mustFinalize(t *testing.T, sys *phisys.System) {
	t.Helper()
	if err := sys.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
}

func divide(operands []phisys.Value) (phisys.Value, error) {
	a, b := operands[0].(float64), operands[1].(float64)
	if b == 0 {
		return nil, errors.New("division by zero")
	}
	return a / b, nil
}

// financeSystem builds a two-module system: CoreMath declares divide with a
// hard nonzero-divisor rule, Finance imports CoreMath.
func financeSystem(t *testing.T) *phisys.System {
	t.Helper()
	sys := phisys.NewSystem()

	core, err := sys.DefineModule("CoreMath")
	if err != nil {
		t.Fatalf("DefineModule: %v", err)
	}
	mustBind(t, core, "divide", 2, divide)
	nonzero, err := phiexpr.New("b != 0")
	if err != nil {
		t.Fatalf("phiexpr.New: %v", err)
	}
	mustRule(t, core, phisys.Rule{ID: "nonzero", Kind: phisys.KindHard, Predicate: nonzero, Module: "CoreMath"})

	fin, err := sys.DefineModule("Finance")
	if err != nil {
		t.Fatalf("DefineModule: %v", err)
	}
	if err := fin.AddImport("CoreMath"); err != nil {
		t.Fatalf("AddImport: %v", err)
	}

	mustFinalize(t, sys)
	return sys
}

func TestValidate_InheritedHardViolationRejects(t *testing.T) {
	t.Parallel()
	// A lenient divide host that yields a value even for a zero divisor, so
	// the outcome is settled by the rule rather than by an operation error.
	sys := phisys.NewSystem()
	core, _ := sys.DefineModule("CoreMath")
	mustBind(t, core, "divide", 2, func(operands []phisys.Value) (phisys.Value, error) {
		b := operands[1].(float64)
		if b == 0 {
			return 0.0, nil
		}
		return operands[0].(float64) / b, nil
	})
	nonzero, err := phiexpr.New("b != 0")
	if err != nil {
		t.Fatalf("phiexpr.New: %v", err)
	}
	mustRule(t, core, phisys.Rule{ID: "nonzero", Kind: phisys.KindHard, Predicate: nonzero, Module: "CoreMath"})
	fin, _ := sys.DefineModule("Finance")
	if err := fin.AddImport("CoreMath"); err != nil {
		t.Fatalf("AddImport: %v", err)
	}
	mustFinalize(t, sys)

	v := New(sys)
	verdict, err := v.Validate("Finance", "divide", []phisys.Value{10.0, 0.0})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if verdict.Status != StatusReject {
		t.Fatalf("expected reject, got %s", verdict.Status)
	}
	if len(verdict.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(verdict.Violations))
	}
	viol := verdict.Violations[0]
	if viol.RuleID != "nonzero" || viol.Source != "CoreMath" || viol.Kind != phisys.KindHard {
		t.Errorf("unexpected violation: %+v", viol)
	}
	if len(verdict.Adaptations) != 0 {
		t.Errorf("hard rejection must not adapt, got %v", verdict.Adaptations)
	}

	// Same inputs through a valid divisor pass.
	verdict, err = v.Validate("Finance", "divide", []phisys.Value{10.0, 2.0})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if verdict.Status != StatusAccept {
		t.Fatalf("expected accept, got %s: %v", verdict.Status, verdict.Trail)
	}
	if got := verdict.Invocation.Result.(float64); got != 5.0 {
		t.Errorf("expected result 5, got %v", got)
	}
}

func TestValidate_SoftViolationDeactivatesAndAccepts(t *testing.T) {
	t.Parallel()
	sys := phisys.NewSystem()
	mat, err := sys.DefineModule("MatrixAlg")
	if err != nil {
		t.Fatalf("DefineModule: %v", err)
	}
	mustBind(t, mat, "mat_multiply", 2, func(operands []phisys.Value) (phisys.Value, error) {
		a, b := operands[0].(phisys.Matrix), operands[1].(phisys.Matrix)
		out := make(phisys.Matrix, a.Rows())
		for i := range out {
			out[i] = make([]float64, b.Cols())
			for j := range out[i] {
				for k := 0; k < a.Cols(); k++ {
					out[i][j] += a[i][k] * b[k][j]
				}
			}
		}
		return out, nil
	})
	comm, ok := phiexpr.Builtin("commutativity")
	if !ok {
		t.Fatal("commutativity builtin missing")
	}
	mustRule(t, mat, phisys.Rule{ID: "commutative", Kind: phisys.KindSoft, Predicate: comm, Module: "MatrixAlg"})
	mustFinalize(t, sys)

	a := phisys.Matrix{{1, 2}, {3, 4}}
	b := phisys.Matrix{{0, 1}, {1, 0}}

	v := New(sys)
	verdict, err := v.Validate("MatrixAlg", "mat_multiply", []phisys.Value{a, b})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if verdict.Status != StatusAccept {
		t.Fatalf("expected accept, got %s: %v", verdict.Status, verdict.Trail)
	}
	if len(verdict.Adaptations) != 1 {
		t.Fatalf("expected 1 adaptation, got %d", len(verdict.Adaptations))
	}
	if ad := verdict.Adaptations[0]; ad.RuleID != "commutative" || ad.Source != "MatrixAlg" {
		t.Errorf("unexpected adaptation: %+v", ad)
	}
	// The violation is still reported alongside the adaptation.
	if len(verdict.SoftViolations()) != 1 {
		t.Errorf("expected soft violation to remain recorded, got %v", verdict.Violations)
	}
	// The computed product is untouched by the deactivation.
	want := phisys.Matrix{{2, 1}, {4, 3}}
	if !verdict.Invocation.Result.(phisys.Matrix).Equal(want) {
		t.Errorf("result altered: %v", verdict.Invocation.Result)
	}

	// Deactivation was invocation-scoped: a rerun reports the violation and
	// adapts again rather than remembering the previous call.
	again, err := v.Validate("MatrixAlg", "mat_multiply", []phisys.Value{a, b})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if again.Status != StatusAccept || len(again.Adaptations) != 1 {
		t.Errorf("second call diverged: status=%s adaptations=%d", again.Status, len(again.Adaptations))
	}
}

func TestValidate_NoRulesAccepts(t *testing.T) {
	t.Parallel()
	sys := phisys.NewSystem()
	m, err := sys.DefineModule("Scratch")
	if err != nil {
		t.Fatalf("DefineModule: %v", err)
	}
	mustBind(t, m, "add", 2, func(operands []phisys.Value) (phisys.Value, error) {
		return operands[0].(float64) + operands[1].(float64), nil
	})
	mustFinalize(t, sys)

	verdict, err := New(sys).Validate("Scratch", "add", []phisys.Value{1.0, 2.0})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if verdict.Status != StatusAccept {
		t.Fatalf("expected accept, got %s", verdict.Status)
	}
	if len(verdict.Violations) != 0 || len(verdict.Adaptations) != 0 {
		t.Errorf("expected empty verdict lists: %+v", verdict)
	}
}

func TestValidate_HardTakesPrecedenceOverSoft(t *testing.T) {
	t.Parallel()
	sys := phisys.NewSystem()
	m, _ := sys.DefineModule("M")
	mustBind(t, m, "op", 1, func(operands []phisys.Value) (phisys.Value, error) {
		return operands[0], nil
	})
	mustRule(t, m, phisys.Rule{ID: "strict", Kind: phisys.KindHard, Predicate: fixedPredicate{src: "false", ok: false}, Module: "M"})
	mustRule(t, m, phisys.Rule{ID: "lenient", Kind: phisys.KindSoft, Predicate: fixedPredicate{src: "false", ok: false}, Module: "M"})
	mustFinalize(t, sys)

	verdict, err := New(sys).Validate("M", "op", []phisys.Value{1.0})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if verdict.Status != StatusReject {
		t.Fatalf("expected reject, got %s", verdict.Status)
	}
	// Both violations are reported, but no adaptation happens once a hard
	// rule has settled the outcome.
	if len(verdict.Violations) != 2 {
		t.Errorf("expected both violations reported, got %v", verdict.Violations)
	}
	if len(verdict.Adaptations) != 0 {
		t.Errorf("expected no adaptations, got %v", verdict.Adaptations)
	}
}

func TestValidate_OperationFailureIsNotAViolation(t *testing.T) {
	t.Parallel()
	v := New(financeSystem(t))

	verdict, err := v.Validate("Finance", "divide", []phisys.Value{10.0, 0.0})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if verdict.Status != StatusError {
		t.Fatalf("expected error status, got %s", verdict.Status)
	}
	if verdict.Err == nil {
		t.Fatal("expected OperationError")
	}
	if !errors.Is(verdict.Err, ErrOperation) {
		t.Error("expected errors.Is(verdict.Err, ErrOperation)")
	}
	if verdict.Err.Transformation != "divide" || verdict.Err.Module != "Finance" {
		t.Errorf("unexpected attribution: %+v", verdict.Err)
	}
	if len(verdict.Violations) != 0 {
		t.Errorf("operation failure must not register violations, got %v", verdict.Violations)
	}
}

func TestValidate_ArityMismatchYieldsOperationError(t *testing.T) {
	t.Parallel()
	v := New(financeSystem(t))

	verdict, err := v.Validate("Finance", "divide", []phisys.Value{10.0})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if verdict.Status != StatusError || verdict.Err == nil {
		t.Fatalf("expected operation error verdict, got %+v", verdict)
	}
	if !strings.Contains(verdict.Err.Err.Error(), "expects 2 operands") {
		t.Errorf("unexpected cause: %v", verdict.Err.Err)
	}
}

func TestValidate_UnknownModule(t *testing.T) {
	t.Parallel()
	v := New(financeSystem(t))

	_, err := v.Validate("Treasury", "divide", []phisys.Value{10.0, 2.0})
	var unkErr *phisys.UnknownModuleError
	if !errors.As(err, &unkErr) {
		t.Fatalf("expected *UnknownModuleError, got %T: %v", err, err)
	}
}

func TestValidate_UnknownTransformation(t *testing.T) {
	t.Parallel()
	v := New(financeSystem(t))

	_, err := v.Validate("Finance", "integrate", nil)
	var unkErr *phisys.UnknownTransformationError
	if !errors.As(err, &unkErr) {
		t.Fatalf("expected *UnknownTransformationError, got %T: %v", err, err)
	}
	if unkErr.Name != "integrate" || unkErr.Module != "Finance" {
		t.Errorf("unexpected attribution: %+v", unkErr)
	}
}

func TestValidate_UnfinalizedSystem(t *testing.T) {
	t.Parallel()
	sys := phisys.NewSystem()
	if _, err := sys.DefineModule("M"); err != nil {
		t.Fatalf("DefineModule: %v", err)
	}

	_, err := New(sys).Validate("M", "op", nil)
	if !errors.Is(err, ErrNotFinalized) {
		t.Fatalf("expected ErrNotFinalized, got %v", err)
	}
}

func TestValidate_PredicateErrorSkipsRule(t *testing.T) {
	t.Parallel()
	sys := phisys.NewSystem()
	m, _ := sys.DefineModule("M")
	mustBind(t, m, "op", 1, func(operands []phisys.Value) (phisys.Value, error) {
		return operands[0], nil
	})
	mustRule(t, m, phisys.Rule{ID: "broken", Kind: phisys.KindHard, Predicate: failingPredicate{}, Module: "M"})
	mustFinalize(t, sys)

	verdict, err := New(sys).Validate("M", "op", []phisys.Value{1.0})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if verdict.Status != StatusAccept {
		t.Fatalf("expected accept, got %s", verdict.Status)
	}
	if len(verdict.Violations) != 0 {
		t.Errorf("skipped rule must not register a violation, got %v", verdict.Violations)
	}
	found := false
	for _, line := range verdict.Trail {
		if strings.Contains(line, "skipped rule broken") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected skip recorded in trail, got %v", verdict.Trail)
	}
}

func TestValidate_ProbeDepthBounded(t *testing.T) {
	t.Parallel()
	sys := phisys.NewSystem()
	m, _ := sys.DefineModule("M")
	mustBind(t, m, "op", 1, func(operands []phisys.Value) (phisys.Value, error) {
		return operands[0], nil
	})
	mustRule(t, m, phisys.Rule{ID: "greedy", Kind: phisys.KindHard, Predicate: probingPredicate{calls: 3}, Module: "M"})
	mustFinalize(t, sys)

	// Budget below the predicate's appetite: evaluation errors out and the
	// rule is skipped rather than blocking the call forever.
	verdict, err := New(sys, WithMaxProbeDepth(2)).Validate("M", "op", []phisys.Value{1.0})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if verdict.Status != StatusAccept {
		t.Fatalf("expected accept, got %s: %v", verdict.Status, verdict.Trail)
	}
	found := false
	for _, line := range verdict.Trail {
		if strings.Contains(line, "probe depth exceeded") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected depth exhaustion in trail, got %v", verdict.Trail)
	}

	// A sufficient budget lets the predicate finish.
	verdict, err = New(sys, WithMaxProbeDepth(3)).Validate("M", "op", []phisys.Value{1.0})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if verdict.Status != StatusAccept || len(verdict.Trail) != 2 {
		t.Errorf("expected clean accept, got %+v", verdict)
	}
}

func TestValidate_TrailNarratesOutcome(t *testing.T) {
	t.Parallel()
	sys := phisys.NewSystem()
	m, _ := sys.DefineModule("M")
	mustBind(t, m, "op", 1, func(operands []phisys.Value) (phisys.Value, error) {
		return operands[0], nil
	})
	mustRule(t, m, phisys.Rule{ID: "lenient", Kind: phisys.KindSoft, Predicate: fixedPredicate{src: "false", ok: false}, Module: "M"})
	mustFinalize(t, sys)

	verdict, err := New(sys).Validate("M", "op", []phisys.Value{1.0})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	want := []string{
		"module M: invoke op with 1 operand(s)",
		"violated SOFT rule lenient from module M",
		"deactivated SOFT rule lenient from module M",
		"verdict: accept",
	}
	if len(verdict.Trail) != len(want) {
		t.Fatalf("trail length %d, want %d: %v", len(verdict.Trail), len(want), verdict.Trail)
	}
	for i, line := range want {
		if verdict.Trail[i] != line {
			t.Errorf("trail[%d] = %q, want %q", i, verdict.Trail[i], line)
		}
	}
}

// A finalized system is immutable, so concurrent Validate calls on one
// shared Validator must neither race nor diverge. Run under -race.
func TestValidate_ConcurrentCallsAgree(t *testing.T) {
	t.Parallel()
	sys := phisys.NewSystem()
	m, err := sys.DefineModule("M")
	if err != nil {
		t.Fatalf("DefineModule: %v", err)
	}
	mustBind(t, m, "add", 2, func(operands []phisys.Value) (phisys.Value, error) {
		return operands[0].(float64) + operands[1].(float64), nil
	})
	comm, ok := phiexpr.Builtin("commutativity")
	if !ok {
		t.Fatal("commutativity builtin missing")
	}
	// One probing rule that holds and one soft rule that always violates,
	// so every call exercises both the probe and the adaptation path.
	mustRule(t, m, phisys.Rule{ID: "commutative", Kind: phisys.KindHard, Predicate: comm, Module: "M"})
	mustRule(t, m, phisys.Rule{ID: "lenient", Kind: phisys.KindSoft, Predicate: fixedPredicate{src: "false", ok: false}, Module: "M"})
	mustFinalize(t, sys)

	const goroutines = 16
	v := New(sys)
	verdicts := make([]*Verdict, goroutines)
	errs := make([]error, goroutines)

	var wg sync.WaitGroup
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			verdicts[i], errs[i] = v.Validate("M", "add", []phisys.Value{2.0, 3.0})
		}()
	}
	wg.Wait()

	first := verdicts[0]
	if errs[0] != nil {
		t.Fatalf("Validate: %v", errs[0])
	}
	if first.Status != StatusAccept || len(first.Adaptations) != 1 {
		t.Fatalf("unexpected verdict: status=%s adaptations=%d trail=%v",
			first.Status, len(first.Adaptations), first.Trail)
	}
	for i := 1; i < goroutines; i++ {
		if errs[i] != nil {
			t.Fatalf("Validate from goroutine %d: %v", i, errs[i])
		}
		got := verdicts[i]
		if got.Status != first.Status ||
			len(got.Violations) != len(first.Violations) ||
			len(got.Adaptations) != len(first.Adaptations) ||
			len(got.Trail) != len(first.Trail) {
			t.Fatalf("verdicts diverged: %+v vs %+v", got, first)
		}
		for j := range first.Trail {
			if got.Trail[j] != first.Trail[j] {
				t.Errorf("trail[%d] diverged: %q vs %q", j, got.Trail[j], first.Trail[j])
			}
		}
	}
}
