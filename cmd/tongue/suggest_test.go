package main

import (
	"strings"
	"testing"
)

func TestSuggest(t *testing.T) {
	formats := []string{"pretty", "plain", "short", "json", "sarif"}
	tests := []struct {
		value string
		want  string
	}{
		{"jsn", "json"},
		{"PRETY", "pretty"},
		{"srf", "sarif"},
		{"pla", "plain"},
		{"xml", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := suggest(tt.value, formats); got != tt.want {
			t.Errorf("suggest(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestInvalidChoice(t *testing.T) {
	err := invalidChoice("ui", "of", []string{"auto", "on", "off"})
	if !strings.Contains(err.Error(), `expected auto|on|off`) || !strings.Contains(err.Error(), `did you mean "off"?`) {
		t.Fatalf("err = %v", err)
	}
	err = invalidChoice("color", "zzz", []string{"auto", "on", "off"})
	if strings.Contains(err.Error(), "did you mean") {
		t.Fatalf("unexpected hint: %v", err)
	}
}
