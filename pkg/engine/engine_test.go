package engine

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestEvaluateEmptyScene(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"empty", ""},
		{"whitespace", "   \n\t  \n  "},
		{"comments only", "; supply air\n; return air\n"},
		{"arithmetic", "(def x 10)\n(+ x 20)"},
	}
	eng := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, evalErrs, err := eng.Evaluate(tt.source)
			if err != nil {
				t.Fatalf("unexpected fatal error: %v", err)
			}
			if len(evalErrs) > 0 {
				t.Fatalf("unexpected eval errors: %v", evalErrs)
			}
			if sc == nil || sc.ElementCount() != 0 {
				t.Errorf("expected an empty scene, got %+v", sc)
			}
		})
	}
}

func TestEvaluateErrorsAreNotFatal(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"unmatched paren", `(level "L1"`},
		{"undefined symbol", `(level undefined-name)`},
		{"error on second line", "(level \"L1\")\n(wall"},
	}
	eng := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, evalErrs, err := eng.Evaluate(tt.source)
			if err != nil {
				t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
			}
			if sc != nil {
				t.Error("expected nil scene on eval error")
			}
			if len(evalErrs) == 0 || evalErrs[0].Message == "" {
				t.Fatalf("expected a populated eval error, got %v", evalErrs)
			}
		})
	}
}

func TestWaitWithTimeout(t *testing.T) {
	var mu sync.Mutex

	t.Run("stale generation", func(t *testing.T) {
		gen := uint64(2)
		ch := make(chan evalResult, 1)
		ch <- evalResult{}
		if _, _, err := waitWithTimeout(ch, 1, &mu, &gen); err == nil || !strings.Contains(err.Error(), "superseded") {
			t.Errorf("error = %v, want superseded", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		gen := uint64(1)
		done := make(chan error, 1)
		go func() {
			_, _, err := waitWithTimeout(make(chan evalResult), 1, &mu, &gen)
			done <- err
		}()
		select {
		case err := <-done:
			if err == nil || !strings.Contains(err.Error(), "timed out") {
				t.Errorf("error = %v, want timeout", err)
			}
		case <-time.After(EvalTimeout + 2*time.Second):
			t.Fatal("evaluation never timed out")
		}
	})
}

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		wantLine int
		wantMsg  string
	}{
		{"builtin message spans lines", "Error on line 3: wall: missing :thickness\nin (wall \"W1\")", 3, "missing :thickness"},
		{"short form", "line 7: pipe: :diameter must be a number", 7, ":diameter"},
		{"no line info", "duct: needs an id", 0, "duct: needs an id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseZygomysError(errString(tt.msg))
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1", len(errs))
			}
			if errs[0].Line != tt.wantLine {
				t.Errorf("line = %d, want %d", errs[0].Line, tt.wantLine)
			}
			if !strings.Contains(errs[0].Message, tt.wantMsg) {
				t.Errorf("message = %q, want containing %q", errs[0].Message, tt.wantMsg)
			}
			if tt.wantLine > 0 && !strings.Contains(errs[0].Error(), "line") {
				t.Errorf("Error() = %q, want line info", errs[0].Error())
			}
		})
	}
}

type errString string

func (e errString) Error() string { return string(e) }
