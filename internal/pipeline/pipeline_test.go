package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

// fakeStep is a configurable step for pipeline tests.
type fakeStep struct {
	name string
	err  error
	ran  *[]string
}

func (s *fakeStep) Name() string { return s.name }

func (s *fakeStep) Do(_ context.Context, _ *Analysis) error {
	if s.ran != nil {
		*s.ran = append(*s.ran, s.name)
	}
	return s.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestPipelineExecute tests sequential step execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("runs steps in order", func(t *testing.T) {
		t.Parallel()

		var ran []string
		p := New(WithLogger(quietLogger()))
		p.AddSteps(
			&fakeStep{name: "first", ran: &ran},
			&fakeStep{name: "second", ran: &ran},
		)

		a := NewAnalysis("survey.csv")
		if err := p.Execute(context.Background(), a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(ran) != 2 || ran[0] != "first" || ran[1] != "second" {
			t.Errorf("steps ran = %v, want [first second]", ran)
		}
		if len(a.Report.PerformedSteps) != 2 {
			t.Errorf("performed steps = %v, want 2 entries", a.Report.PerformedSteps)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		var ran []string
		wantErr := errors.New("boom")
		p := New(WithLogger(quietLogger()))
		p.AddSteps(
			&fakeStep{name: "first", err: wantErr, ran: &ran},
			&fakeStep{name: "second", ran: &ran},
		)

		a := NewAnalysis("survey.csv")
		err := p.Execute(context.Background(), a)
		if !errors.Is(err, wantErr) {
			t.Fatalf("expected boom, got %v", err)
		}
		if len(ran) != 1 {
			t.Errorf("steps ran = %v, want only first", ran)
		}
		if a.Report.ErrorMessage != "boom" {
			t.Errorf("error message = %q, want %q", a.Report.ErrorMessage, "boom")
		}
	})

	t.Run("continue on error runs all steps", func(t *testing.T) {
		t.Parallel()

		var ran []string
		p := New(WithLogger(quietLogger()), WithContinueOnError(true))
		p.AddSteps(
			&fakeStep{name: "first", err: errors.New("boom"), ran: &ran},
			&fakeStep{name: "second", ran: &ran},
		)

		a := NewAnalysis("survey.csv")
		if err := p.Execute(context.Background(), a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(ran) != 2 {
			t.Errorf("steps ran = %v, want both", ran)
		}
	})

	t.Run("cancelled context stops execution", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var ran []string
		p := New(WithLogger(quietLogger()))
		p.AddStep(&fakeStep{name: "first", ran: &ran})

		a := NewAnalysis("survey.csv")
		err := p.Execute(ctx, a)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if len(ran) != 0 {
			t.Errorf("steps ran = %v, want none", ran)
		}
	})
}

// TestPipelineStepNames tests step introspection.
func TestPipelineStepNames(t *testing.T) {
	t.Parallel()

	p := New(WithLogger(quietLogger()))
	p.AddSteps(&fakeStep{name: "load_csv"}, &fakeStep{name: "write_report"})

	if p.StepCount() != 2 {
		t.Errorf("step count = %d, want 2", p.StepCount())
	}
	names := p.StepNames()
	if names[0] != "load_csv" || names[1] != "write_report" {
		t.Errorf("names = %v", names)
	}
}
