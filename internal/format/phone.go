// Package format holds the derived-state helpers the storefront renders
// with: phone number masking, review rating aggregation and date output.
package format

import "strings"

// PhoneLength is the length of a fully formatted phone number,
// "+7 (XXX) XXX-XX-XX". The exact-length check is the validation gate
// before a profile or registration submit.
const PhoneLength = 18

// Phone normalizes free-text phone input to "+7 (XXX) XXX-XX-XX".
// Non-digits are stripped, a leading domestic "8" becomes "7", input is
// truncated to 11 significant digits and the mask is rebuilt from scratch,
// so formatting an already formatted number returns the same string.
func Phone(value string) string {
	var digits []byte
	for i := 0; i < len(value); i++ {
		if c := value[i]; c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}
	if len(digits) > 0 && digits[0] == '8' {
		digits[0] = '7'
	}
	if len(digits) > 11 {
		digits = digits[:11]
	}

	cleaned := string(digits)
	var b strings.Builder
	b.WriteString("+7")
	if len(cleaned) > 1 {
		b.WriteString(" (")
		b.WriteString(slice(cleaned, 1, 4))
	}
	if len(cleaned) > 4 {
		b.WriteString(") ")
		b.WriteString(slice(cleaned, 4, 7))
	}
	if len(cleaned) > 7 {
		b.WriteString("-")
		b.WriteString(slice(cleaned, 7, 9))
	}
	if len(cleaned) > 9 {
		b.WriteString("-")
		b.WriteString(slice(cleaned, 9, 11))
	}
	return b.String()
}

// PhoneValid reports whether the formatted value is a complete number.
func PhoneValid(formatted string) bool {
	return len(formatted) == PhoneLength
}

// PhoneDigits strips a formatted number back to the bare digits the backend
// expects ("7XXXXXXXXXX").
func PhoneDigits(formatted string) string {
	var b strings.Builder
	for i := 0; i < len(formatted); i++ {
		if c := formatted[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func slice(s string, from, to int) string {
	if to > len(s) {
		to = len(s)
	}
	if from >= to {
		return ""
	}
	return s[from:to]
}
