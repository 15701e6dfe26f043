package model

import (
	"encoding/json"
	"testing"
)

func TestSeverityString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		severity Severity
		expected string
	}{
		{SeverityInfo, "INFO"},
		{SeverityWarning, "WARNING"},
		{SeverityError, "ERROR"},
		{Severity(999), "UNKNOWN"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.severity.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.severity.String(), tc.expected)
			}
		})
	}
}

func TestParseSeverity(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input   string
		want    Severity
		wantErr bool
	}{
		{"info", SeverityInfo, false},
		{"WARNING", SeverityWarning, false},
		{" warn ", SeverityWarning, false},
		{"Error", SeverityError, false},
		{"critical", 0, true},
		{"", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSeverity(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFindingJSON(t *testing.T) {
	t.Parallel()

	f := Finding{Check: "title", Path: "/blog", Severity: SeverityWarning, Message: "título largo"}
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if raw["severity"] != "WARNING" {
		t.Errorf("severity should be encoded by name, got %v", raw["severity"])
	}

	var back Finding
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back.Severity != SeverityWarning {
		t.Errorf("got %v, want WARNING", back.Severity)
	}
}

func TestFindingString(t *testing.T) {
	t.Parallel()

	f := Finding{Check: "links", Path: "/", Severity: SeverityError, Message: "enlace roto", Value: "/x"}
	if got, want := f.String(), "[ERROR] / links: enlace roto (/x)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
