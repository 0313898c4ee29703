package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add write report", TypeAdd},
		{"remove 2", TypeRemove},
		{"rm #1", TypeRemove},
		{"pick", TypePick},
		{"select 3", TypeSelect},
		{"focus 1", TypeSelect},
		{"start", TypeStart},
		{"start deep work", TypeStart},
		{"STOP", TypeStop},
		{"clear", TypeClear},
		{"/sleep", TypeSleep},
		{"wake", TypeWake},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseArguments(t *testing.T) {
	cmd, err := Parse("add   write   report ")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Name != "write report" {
		t.Fatalf("unexpected name: %q", cmd.Add.Name)
	}

	cmd, err = Parse("remove 2")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Remove.Index != 1 {
		t.Fatalf("remove index = %d, want 1", cmd.Remove.Index)
	}

	cmd, err = Parse("start")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Start.Task != "" {
		t.Fatalf("bare start should leave task empty, got %q", cmd.Start.Task)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		in   string
		code ErrorCode
	}{
		{"", ErrCodeEmptyInput},
		{"  /  ", ErrCodeEmptyInput},
		{"/unknown do x", ErrCodeUnknownCommand},
		{"add", ErrCodeInvalidArgument},
		{"add    ", ErrCodeInvalidArgument},
		{"remove", ErrCodeInvalidArgument},
		{"remove zero", ErrCodeInvalidArgument},
		{"select 0", ErrCodeInvalidArgument},
		{"select 1 2", ErrCodeInvalidArgument},
		{"stop now", ErrCodeInvalidArgument},
	}
	for _, tc := range cases {
		_, err := Parse(tc.in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != tc.code {
			t.Fatalf("parse %q: expected %s, got %v", tc.in, tc.code, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Name != "write docs" {
				t.Fatalf("unexpected name: %q", a.Name)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	for _, in := range []string{"pick", "select 1", "wake"} {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		_, err = Execute(cmd, Handlers{})
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
			t.Fatalf("%q: expected missing handler error, got %v", in, err)
		}
	}
}

func TestRunPropagatesHandlerError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Run("stop", Handlers{Stop: func() (Result, error) { return Result{}, boom }})
	if !errors.Is(err, boom) {
		t.Fatalf("expected handler error, got %v", err)
	}
}
