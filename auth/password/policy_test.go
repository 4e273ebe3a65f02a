package password

import (
	"testing"

	"github.com/kbukum/cognito-gateway/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
		rule     Rule
	}{
		{"valid", "Passw0rd!", true, ""},
		{"valid with every symbol class", `Aa1"{}|<>`, true, ""},
		{"too short", "Pa0!", false, RuleLength},
		{"empty", "", false, RuleLength},
		{"no uppercase", "passw0rd!", false, RuleUppercase},
		{"no lowercase", "PASSW0RD!", false, RuleLowercase},
		{"no digit", "Password!", false, RuleDigit},
		{"no symbol", "Passw0rdd", false, RuleSymbol},
		{"symbol outside the set", "Passw0rd_", false, RuleSymbol},
		{"short wins over missing classes", "abc", false, RuleLength},
		{"uppercase wins over digit and symbol", "password", false, RuleUppercase},
		{"seven characters", "short1!", false, RuleLength},
		{"all rules met", "Password1!", true, ""},
		{"lowercase only letters", "password1!", false, RuleUppercase},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Validate(tc.password)
			if r.Valid != tc.valid {
				t.Fatalf("Validate(%q).Valid = %v, want %v", tc.password, r.Valid, tc.valid)
			}
			if r.Rule != tc.rule {
				t.Errorf("Validate(%q).Rule = %q, want %q", tc.password, r.Rule, tc.rule)
			}
			if !tc.valid && r.Reason == "" {
				t.Error("expected a reason for an invalid password")
			}
			if tc.valid && r.Reason != "" {
				t.Errorf("expected no reason for a valid password, got %q", r.Reason)
			}
		})
	}
}

func TestValidateLengthCountsCharacters(t *testing.T) {
	// Seven characters, more than eight bytes.
	if r := Validate("Aé1!ééé"); r.Rule != RuleLength {
		t.Errorf("expected length violation, got %+v", r)
	}
}

func TestResultErr(t *testing.T) {
	if err := Validate("Passw0rd!").Err(); err != nil {
		t.Errorf("expected nil error for valid password, got %v", err)
	}

	err := Validate("short").Err()
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != errors.ErrCodePolicyViolation {
		t.Errorf("expected POLICY_VIOLATION, got %s", appErr.Code)
	}
	if appErr.Details["rule"] != string(RuleLength) {
		t.Errorf("expected rule detail %q, got %v", RuleLength, appErr.Details["rule"])
	}
	if appErr.Message != "Password must be at least 8 characters long" {
		t.Errorf("unexpected message %q", appErr.Message)
	}
}
