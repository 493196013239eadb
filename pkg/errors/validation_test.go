package errors

import (
	"strings"
	"testing"
)

func TestValidateQuestID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "debut", false},
		{"valid with dash", "shooting-cans", false},
		{"valid hex id", "5936d90786f7742b1420ba5b", false},
		{"valid with dot", "the.punisher.1", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"space", "the punisher", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuestID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateQuestID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidQuestID) {
				t.Errorf("ValidateQuestID(%q) code = %q, want %q", tt.input, GetCode(err), ErrCodeInvalidQuestID)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "data/quests.json", false},
		{"absolute", "/home/user/quests.json", false},

		{"empty", "", true},
		{"null byte", "data\x00.json", true},
		{"control char", "data\x01.json", true},
		{"too long", strings.Repeat("a", 5000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	valid := []string{"svg", "json"}

	if err := ValidateFormat("svg", valid); err != nil {
		t.Errorf("ValidateFormat(svg) error = %v", err)
	}

	err := ValidateFormat("gif", valid)
	if err == nil {
		t.Fatal("ValidateFormat(gif) expected error")
	}
	if !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("code = %q, want %q", GetCode(err), ErrCodeInvalidFormat)
	}
	if !strings.Contains(err.Error(), "svg, json") {
		t.Errorf("error %q should list valid formats", err.Error())
	}
}
