package repl

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

type recorder struct {
	calls [][]string
	err   error
}

func (r *recorder) exec(_ context.Context, args []string) error {
	r.calls = append(r.calls, args)
	return r.err
}

func TestREPL_Run(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCalls [][]string
	}{
		{"exit", "exit\nlookup stone\n", nil},
		{"quit", "quit\n", nil},
		{"eof without newline", "lookup stone", [][]string{{"lookup", "stone"}}},
		{"empty lines", "\n\n  \nlookup 1:3\nexit\n", [][]string{{"lookup", "1:3"}}},
		{"quoted", `list --prefix "diamond_"` + "\n", [][]string{{"list", "--prefix", "diamond_"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			var out bytes.Buffer
			r := New(rec.exec, WithIO(strings.NewReader(tt.input), &out))
			if err := r.Run(context.Background()); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if !reflect.DeepEqual(rec.calls, tt.wantCalls) {
				t.Errorf("calls = %v, want %v", rec.calls, tt.wantCalls)
			}
			if !strings.HasPrefix(out.String(), DefaultPrompt) {
				t.Errorf("output = %q, want prompt", out.String())
			}
		})
	}
}

func TestREPL_ErrorsDoNotStop(t *testing.T) {
	rec := &recorder{err: errors.New("boom")}
	var out bytes.Buffer
	r := New(rec.exec, WithIO(strings.NewReader("a\n'open\nb\n"), &out), WithPrompt("> "))
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(rec.calls) != 2 {
		t.Errorf("calls = %v, want 2", rec.calls)
	}
	if got := strings.Count(out.String(), "error: "); got != 3 {
		t.Errorf("printed %d errors, want 3:\n%s", got, out.String())
	}
}

func TestREPL_Builtins(t *testing.T) {
	rec := &recorder{}
	var out bytes.Buffer
	r := New(rec.exec,
		WithIO(strings.NewReader("lookup stone\nhistory\ncomplete lo\n"), &out),
		WithCompleter(NewCompleter([]string{"lookup", "list"})))
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(rec.calls) != 1 {
		t.Errorf("builtins reached the executor: %v", rec.calls)
	}
	s := out.String()
	if !strings.Contains(s, "   1  lookup stone") || !strings.Contains(s, "lookup\n") {
		t.Errorf("builtin output = %q", s)
	}
}

func TestREPL_CancelledContext(t *testing.T) {
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := New(rec.exec, WithIO(strings.NewReader("lookup stone\n"), &bytes.Buffer{}))
	if err := r.Run(ctx); err != nil || len(rec.calls) != 0 {
		t.Errorf("Run(cancelled) = %v, calls %v", err, rec.calls)
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		line    string
		want    []string
		wantErr bool
	}{
		{"lookup stone", []string{"lookup", "stone"}, false},
		{"  a\t b  ", []string{"a", "b"}, false},
		{`a "b c" d`, []string{"a", "b c", "d"}, false},
		{`a 'b "c"'`, []string{"a", `b "c"`}, false},
		{`a b\ c`, []string{"a", "b c"}, false},
		{`""`, []string{""}, false},
		{`a "b`, nil, true},
		{`a \`, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := SplitArgs(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SplitArgs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitArgs() = %q, want %q", got, tt.want)
			}
		})
	}
}
