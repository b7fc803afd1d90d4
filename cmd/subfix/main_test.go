package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		want       int
		wantStdout string
		wantStderr string
	}{
		{name: "success", err: nil, want: 0},
		{name: "usage", err: &usageError{msg: runUsage}, want: 0, wantStdout: runUsage + "\n"},
		{name: "wrapped usage", err: fmt.Errorf("run: %w", &usageError{msg: "bad"}), want: 0, wantStdout: "bad\n"},
		{name: "canceled", err: fmt.Errorf("transcribe: %w", context.Canceled), want: 1},
		{name: "failure", err: errors.New("boom"), want: 1, wantStderr: "boom\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := exitCode(tt.err, &stdout, &stderr); got != tt.want {
				t.Fatalf("exitCode = %d, want %d", got, tt.want)
			}
			if stdout.String() != tt.wantStdout {
				t.Fatalf("stdout = %q, want %q", stdout.String(), tt.wantStdout)
			}
			if stderr.String() != tt.wantStderr {
				t.Fatalf("stderr = %q, want %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}
