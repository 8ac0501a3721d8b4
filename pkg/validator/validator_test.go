package validator

import (
	"strings"
	"testing"
)

func TestValidateRegister_Valid(t *testing.T) {
	errs := ValidateRegister("ana@example.com", "ana_99", "Ana", "Passw0rd")
	if errs.HasErrors() {
		t.Errorf("valid input produced errors: %v", errs)
	}
}

func TestValidateRegister_Username(t *testing.T) {
	cases := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"too short", "ab", true},
		{"too long", "abcdefghijklmnop", true},
		{"uppercase normalized", "ANA", false},
		{"hyphen rejected", "ana-b", true},
		{"space rejected", "ana b", true},
		{"digits and underscore ok", "ana_99", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidateRegister("ana@example.com", tc.username, "Ana", "Passw0rd")
			if _, got := errs["username"]; got != tc.wantErr {
				t.Errorf("username %q: error = %v, want %v (%v)", tc.username, got, tc.wantErr, errs)
			}
		})
	}
}

func TestValidateRegister_PasswordRules(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"too short", "Pw1", true},
		{"missing upper", "password1", true},
		{"missing digit", "Password", true},
		{"all classes", "Password1", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidateRegister("ana@example.com", "ana", "Ana", tc.password)
			if _, got := errs["password"]; got != tc.wantErr {
				t.Errorf("password %q: error = %v, want %v (%v)", tc.password, got, tc.wantErr, errs)
			}
		})
	}
}

func TestValidateComment_Bounds(t *testing.T) {
	if errs := ValidateComment("   "); !errs.HasErrors() {
		t.Error("whitespace comment passed validation")
	}
	if errs := ValidateComment(strings.Repeat("a", 501)); !errs.HasErrors() {
		t.Error("oversized comment passed validation")
	}
	if errs := ValidateComment("looking strong"); errs.HasErrors() {
		t.Errorf("valid comment rejected: %v", errs)
	}
}
