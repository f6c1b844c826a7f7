package validation

import "unicode"

// HasSpecialChar reports whether the string contains at least one
// punctuation or symbol rune.
func HasSpecialChar(s string) bool {
	for _, r := range s {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return true
		}
	}
	return false
}

// Password applies the password policy to the given field.
func (v *Validator) Password(field, password string) {
	v.MinLength(field, password, MinPasswordLength)
	v.Check(len(password) <= MaxPasswordLength, field, "is too long")
	v.Check(HasSpecialChar(password), field, "must contain a special character")
}
