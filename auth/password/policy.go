// Package password pre-checks candidate passwords against the gateway's
// local policy before they are sent to the identity provider.
//
// The provider enforces its own user pool policy independently and may still
// reject a password that passes here.
package password

import (
	"strings"
	"unicode/utf8"

	"github.com/kbukum/cognito-gateway/errors"
)

// Rule names a single policy rule.
type Rule string

const (
	RuleLength    Rule = "length"
	RuleUppercase Rule = "uppercase"
	RuleLowercase Rule = "lowercase"
	RuleDigit     Rule = "digit"
	RuleSymbol    Rule = "symbol"
)

// MinLength is the minimum number of characters a password must have.
const MinLength = 8

// Symbols is the set of characters accepted by the symbol rule.
const Symbols = `!@#$%^&*(),.?":{}|<>`

// Result is the outcome of Validate. Reason and Rule are set only when the
// password is invalid and describe the first rule it violated.
type Result struct {
	Valid  bool
	Reason string
	Rule   Rule
}

// Err returns a POLICY_VIOLATION error for an invalid result, nil otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return errors.PolicyViolation(string(r.Rule), r.Reason)
}

type check struct {
	rule   Rule
	reason string
	ok     func(string) bool
}

// Order matters: the first failing check is reported.
var checks = []check{
	{RuleLength, "Password must be at least 8 characters long", func(p string) bool {
		return utf8.RuneCountInString(p) >= MinLength
	}},
	{RuleUppercase, "Password must contain at least one uppercase letter", func(p string) bool {
		return containsByte(p, func(c byte) bool { return 'A' <= c && c <= 'Z' })
	}},
	{RuleLowercase, "Password must contain at least one lowercase letter", func(p string) bool {
		return containsByte(p, func(c byte) bool { return 'a' <= c && c <= 'z' })
	}},
	{RuleDigit, "Password must contain at least one number", func(p string) bool {
		return containsByte(p, func(c byte) bool { return '0' <= c && c <= '9' })
	}},
	{RuleSymbol, "Password must contain at least one special character", func(p string) bool {
		return strings.ContainsAny(p, Symbols)
	}},
}

// Validate checks password against the policy rules in order and reports
// the first violation.
func Validate(password string) Result {
	for _, c := range checks {
		if !c.ok(password) {
			return Result{Reason: c.reason, Rule: c.rule}
		}
	}
	return Result{Valid: true}
}

func containsByte(s string, pred func(byte) bool) bool {
	for i := 0; i < len(s); i++ {
		if pred(s[i]) {
			return true
		}
	}
	return false
}
