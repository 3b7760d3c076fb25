package ident

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Save Changes", "save_changes"},
		{"already_clean", "save", "save"},
		{"ampersand", "Save & Exit", "save_and_exit"},
		{"punctuation_runs", "Hello,   World!!", "hello_world"},
		{"leading_trailing", "  --Save--  ", "save"},
		{"digits", "Page 2 of 10", "page_2_of_10"},
		{"empty", "", ""},
		{"only_symbols", "!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		category string
		variant  string
		label    string
		prefix   string
		want     string
	}{
		{"full", "button", "primary", "Save Changes", "", "button_primary_save_changes"},
		{"no_variant", "textfield", "", "Email", "", "textfield_email"},
		{"with_prefix", "button", "", "Cancel", "login", "login_button_cancel"},
		{"ampersand_label", "button", "secondary", "Save & Exit", "", "button_secondary_save_and_exit"},
		{"empty_label", "button", "primary", "", "", "button_primary"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.category, tt.variant, tt.label, tt.prefix)
			if got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}
