package models

import "strings"

const (
	MobileNumberLength = 10
	OTPLength          = 6
)

// NormalizeMobile strips every non-digit from s and truncates the result to
// ten digits. It is applied on every edit of the mobile number field.
func NormalizeMobile(s string) string {
	return normalizeDigits(s, MobileNumberLength)
}

// NormalizeOTP applies the same rule as NormalizeMobile with a six-digit cap.
func NormalizeOTP(s string) string {
	return normalizeDigits(s, OTPLength)
}

// ValidateMobile accepts exactly ten ASCII digits.
func ValidateMobile(s string) error {
	if !isDigits(s, MobileNumberLength) {
		return newValidationError("mobile_number", "please enter a valid 10-digit mobile number")
	}
	return nil
}

// ValidateOTP accepts exactly six ASCII digits.
func ValidateOTP(s string) error {
	if !isDigits(s, OTPLength) {
		return newValidationError("otp", "please enter a valid 6-digit OTP")
	}
	return nil
}

func normalizeDigits(s string, max int) string {
	var b strings.Builder
	for _, r := range s {
		if b.Len() == max {
			break
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
