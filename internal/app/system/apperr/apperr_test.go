package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		want int
	}{
		{"validation", KindValidation, http.StatusBadRequest},
		{"unauthorized", KindUnauthorized, http.StatusUnauthorized},
		{"forbidden", KindForbidden, http.StatusForbidden},
		{"not found", KindNotFound, http.StatusNotFound},
		{"conflict", KindConflict, http.StatusConflict},
		{"unavailable", KindUnavailable, http.StatusServiceUnavailable},
		{"internal", KindInternal, http.StatusInternalServerError},
		{"unknown", KindUnknown, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.kind, "x").HTTPStatus()
			if got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWrap_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindUnavailable, "store unreachable", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
	if GetKind(err) != KindUnavailable {
		t.Errorf("GetKind = %v, want KindUnavailable", GetKind(err))
	}
}

func TestGetKind_WrappedDeeper(t *testing.T) {
	err := fmt.Errorf("handler: %w", Conflict("organization already exists"))
	if !Is(err, KindConflict) {
		t.Error("expected KindConflict through fmt.Errorf wrapping")
	}
}

func TestGetKind_PlainError(t *testing.T) {
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Error("expected KindUnknown for non-domain errors")
	}
}
