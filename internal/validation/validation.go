// Package validation holds the input rules shared by the API handlers:
// CPF check digits, the admin password policy and their registration as
// custom go-playground/validator rules.
package validation

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// New returns a validator with the service's custom rules registered.
func New() *validator.Validate {
	v := validator.New()
	// Registration only fails for an empty tag, so these cannot error.
	_ = v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return IsValidCPF(fl.Field().String())
	})
	_ = v.RegisterValidation("senha", func(fl validator.FieldLevel) bool {
		return IsValidPassword(fl.Field().String())
	})
	return v
}

// NormalizeCPF strips every non-digit rune from s.
func NormalizeCPF(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidCPF validates a Brazilian CPF: exactly 11 digits after
// stripping separators, not a repeated single digit, and both check
// digits correct (mod-11 scheme).
func IsValidCPF(cpf string) bool {
	digits := NormalizeCPF(cpf)
	if len(digits) != 11 {
		return false
	}

	repeated := true
	for i := 1; i < 11; i++ {
		if digits[i] != digits[0] {
			repeated = false
			break
		}
	}
	if repeated {
		return false
	}

	nums := make([]int, 11)
	for i := 0; i < 11; i++ {
		nums[i] = int(digits[i] - '0')
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += nums[i] * (10 - i)
	}
	if nums[9] != checkDigit(sum) {
		return false
	}

	sum = 0
	for i := 0; i < 10; i++ {
		sum += nums[i] * (11 - i)
	}
	return nums[10] == checkDigit(sum)
}

func checkDigit(sum int) int {
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

// IsValidPassword enforces the admin-console policy: at least 8 runes
// with an upper-case letter, a lower-case letter and a symbol.
func IsValidPassword(senha string) bool {
	if len([]rune(senha)) < 8 {
		return false
	}
	var upper, lower, symbol bool
	for _, r := range senha {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			symbol = true
		}
	}
	return upper && lower && symbol
}
