package errortypes

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppErrorMessage(t *testing.T) {
	tests := []struct {
		name    string
		err     *AppError
		want    string
	}{
		{
			name: "message and wrapped error",
			err:  Database(errors.New("disk I/O error"), "failed to commit"),
			want: "failed to commit: disk I/O error",
		},
		{
			name: "message only",
			err:  RecordNotFound(nil, "paper 2101.00001 not found"),
			want: "paper 2101.00001 not found",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.err.Error(); got != test.want {
				t.Errorf("Error() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"store not found", StoreNotFound(nil, "no database"), ErrorTypeStoreNotFound},
		{"record not found", RecordNotFound(nil, "missing"), ErrorTypeRecordNotFound},
		{"empty content", EmptyContent(nil, "no text"), ErrorTypeEmptyContent},
		{"model load", ModelLoad(errors.New("boom"), "load"), ErrorTypeModelLoad},
		{"model runtime", ModelRuntime(errors.New("boom"), "encode"), ErrorTypeModelRuntime},
		{"dependency missing", DependencyMissing(nil, "no backend"), ErrorTypeDependencyMissing},
		{"untyped", errors.New("plain"), ErrorType("")},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := TypeOf(test.err); got != test.want {
				t.Errorf("TypeOf() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestTypeSurvivesWrapping(t *testing.T) {
	inner := RecordNotFound(nil, "paper xyz not found")
	wrapped := fmt.Errorf("paper mode: %w", inner)

	if !IsRecordNotFound(wrapped) {
		t.Errorf("IsRecordNotFound(wrapped) = false, want true")
	}
	if !strings.Contains(wrapped.Error(), "not found") {
		t.Errorf("wrapped message %q should contain %q", wrapped.Error(), "not found")
	}
}

func TestUnwrap(t *testing.T) {
	sentinel := errors.New("connection refused")
	err := ModelLoad(sentinel, "ollama unreachable")

	if !errors.Is(err, sentinel) {
		t.Errorf("errors.Is should find the wrapped sentinel")
	}
}

func TestWithField(t *testing.T) {
	err := ModelRuntime(errors.New("boom"), "encode failed").WithField("batch", 3)
	if err.Fields["batch"] != 3 {
		t.Errorf("Fields[batch] = %v, want 3", err.Fields["batch"])
	}
}
