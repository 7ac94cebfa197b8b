package problemgen

import (
	"errors"
	"testing"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{"Positive", CategoryPositive, false},
		{"  negative ", CategoryNegative, false},
		{"ZERO", CategoryZero, false},
		{"undefined", CategoryUndefined, false},
		{"1", CategoryPositive, false},
		{"4", CategoryUndefined, false},
		{"5", "", true},
		{"0", "", true},
		{"steep", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseCategory(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownCategory) {
				t.Errorf("ParseCategory(%q) err = %v, want ErrUnknownCategory", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCategory(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCheckAnswer(t *testing.T) {
	q := &Question{Answer: CategoryZero}

	if !CheckAnswer("Zero", q) {
		t.Error("expected exact label to be correct")
	}
	if CheckAnswer("zero", q) {
		t.Error("expected CheckAnswer to compare canonical labels exactly")
	}
	if CheckAnswer("", q) {
		t.Error("expected empty choice to be incorrect")
	}
	if CheckAnswer("Zero", nil) {
		t.Error("expected nil question to be incorrect")
	}
}

func TestIsCategory(t *testing.T) {
	if !IsCategory("Undefined") {
		t.Error("expected Undefined to be a category")
	}
	if IsCategory("undefined") || IsCategory("") {
		t.Error("expected only canonical labels to match")
	}
}
