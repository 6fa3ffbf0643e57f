package validate

import (
	"strings"
	"testing"
)

func TestRequired(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"non-empty", "alice", true},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := Fields{}
			if got := Required(fields, "username", tt.value); got != tt.want {
				t.Errorf("Required() = %v, want %v", got, tt.want)
			}
			if tt.want != fields.Empty() {
				t.Errorf("Fields.Empty() = %v after Required() = %v", fields.Empty(), tt.want)
			}
		})
	}
}

func TestMaxLen(t *testing.T) {
	tests := []struct {
		name  string
		value string
		max   int
		want  bool
	}{
		{"under limit", strings.Repeat("a", 199), 200, true},
		{"at limit", strings.Repeat("a", 200), 200, true},
		{"over limit", strings.Repeat("a", 201), 200, false},
		// 长度按字符计，不按字节计
		{"unicode at limit", strings.Repeat("я", 200), 200, true},
		{"unicode over limit", strings.Repeat("я", 201), 200, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := Fields{}
			if got := MaxLen(fields, "text", tt.value, tt.max); got != tt.want {
				t.Errorf("MaxLen() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMinLen(t *testing.T) {
	tests := []struct {
		name  string
		value string
		min   int
		want  bool
	}{
		{"above minimum", "12345", 4, true},
		{"at minimum", "1234", 4, true},
		{"below minimum", "123", 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := Fields{}
			if got := MinLen(fields, "password", tt.value, tt.min); got != tt.want {
				t.Errorf("MinLen() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFields_Add(t *testing.T) {
	fields := Fields{}
	fields.Add("username", MsgRequired)
	fields.Add("username", MsgTooLong)

	if len(fields["username"]) != 2 {
		t.Errorf("Fields.Add() accumulated %d messages, want 2", len(fields["username"]))
	}
}
