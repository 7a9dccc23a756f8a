package validators

import (
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

// NormalizePhone remove espaços, hífens, pontos e parênteses.
func NormalizePhone(raw string) string {
	r := strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "")
	return r.Replace(strings.TrimSpace(raw))
}

func IsPhone(raw string) bool {
	return phonePattern.MatchString(NormalizePhone(raw))
}
