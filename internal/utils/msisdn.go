package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// mobilePattern matches an Indonesian mobile number once the country code
// or trunk prefix is stripped: 8, an operator digit pair, then 6 to 9 digits.
var mobilePattern = regexp.MustCompile(`^8[1-9]\d{7,10}$`)

// NormalizeMSISDN validates a mobile number and returns it in 62xxxxxxxxxx form
func NormalizeMSISDN(msisdn string) (string, error) {
	stripped := strings.NewReplacer("-", "", " ", "", "+", "").Replace(msisdn)

	if strings.HasPrefix(stripped, "62") {
		stripped = stripped[2:]
	} else if strings.HasPrefix(stripped, "0") {
		stripped = stripped[1:]
	}

	if !mobilePattern.MatchString(stripped) {
		return "", fmt.Errorf("invalid mobile number format")
	}

	return "62" + stripped, nil
}
