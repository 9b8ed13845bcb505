package respond

import (
	"regexp"
)

var (
	// user:password@ in URL DSNs
	dbURLPasswordPattern = regexp.MustCompile(`://([^:/@]+):([^@]+)@`)

	// password=... in key/value DSNs
	dbKVPasswordPattern = regexp.MustCompile(`(?i)(password\s*=\s*)('[^']*'|\S+)`)

	// Bearer tokens echoed back by upstream errors
	bearerPattern = regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9\-_.=]+`)
)

// SanitizeError returns the error message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = dbURLPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = dbKVPasswordPattern.ReplaceAllString(msg, "${1}****")
	msg = bearerPattern.ReplaceAllString(msg, "${1}****")
	return msg
}
