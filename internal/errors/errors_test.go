package errors

import (
	"fmt"
	"testing"
)

func TestTransportError(t *testing.T) {
	base := New("broken pipe")
	err := NewTransportError("write", base)

	if !Is(err, base) {
		t.Error("TransportError should unwrap to the base error")
	}

	var terr *TransportError
	if !As(err, &terr) {
		t.Fatal("As failed to match *TransportError")
	}
	if terr.Op != "write" {
		t.Errorf("Op = %q, want %q", terr.Op, "write")
	}
	if terr.Severity() != SeverityFatal {
		t.Errorf("Severity = %v, want %v", terr.Severity(), SeverityFatal)
	}
}

func TestTransportError_NilUnderlying(t *testing.T) {
	err := NewTransportError("spawn", nil)
	if err.Error() == "" {
		t.Error("Error() should not be empty with nil underlying error")
	}
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("iso", ErrReadonlyConfig)

	if !Is(err, ErrReadonlyConfig) {
		t.Error("ConfigError should unwrap to ErrReadonlyConfig")
	}

	var cerr *ConfigError
	if !As(err, &cerr) {
		t.Fatal("As failed to match *ConfigError")
	}
	if cerr.Name != "iso" {
		t.Errorf("Name = %q, want %q", cerr.Name, "iso")
	}
}

func TestConfigError_Wrapped(t *testing.T) {
	err := fmt.Errorf("set failed: %w", NewConfigError("shutterspeed", ErrUnknownConfig))
	if !Is(err, ErrUnknownConfig) {
		t.Error("wrapped ConfigError should still match ErrUnknownConfig")
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"transport error", NewTransportError("write", New("eof")), true},
		{"session failed", ErrSessionFailed, true},
		{"wrapped session failed", fmt.Errorf("tick: %w", ErrSessionFailed), true},
		{"busy", ErrBusy, false},
		{"unknown config", NewConfigError("iso", ErrUnknownConfig), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFatal(tt.err); got != tt.want {
				t.Errorf("IsFatal(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsBusy(t *testing.T) {
	if !IsBusy(fmt.Errorf("send: %w", ErrBusy)) {
		t.Error("IsBusy should match wrapped ErrBusy")
	}
	if IsBusy(ErrSessionClosed) {
		t.Error("IsBusy should not match ErrSessionClosed")
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(NewConfigError("iso", ErrUnknownConfig)) {
		t.Error("IsValidation should match ErrUnknownConfig")
	}
	if !IsValidation(NewConfigError("iso", ErrReadonlyConfig)) {
		t.Error("IsValidation should match ErrReadonlyConfig")
	}
	if IsValidation(ErrBusy) {
		t.Error("IsValidation should not match ErrBusy")
	}
}

func TestSeverityString(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityFatal, "fatal"},
		{Severity(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
