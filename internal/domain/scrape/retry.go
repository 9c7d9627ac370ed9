package scrape

import "strings"

// retryableFragments are matched against the error text of a failed
// fetch; anything transient upstream gets the job requeued.
var retryableFragments = []string{
	"timeout",
	"timed out",
	"rate limit",
	"too many requests",
	"429",
	"502",
	"503",
	"bad gateway",
	"service unavailable",
	"connection reset",
	"connection refused",
	"eof",
}

// IsRetryableError classifies a fetch failure by substring. The upstream
// does not return structured error codes, so text is all we have.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, fragment := range retryableFragments {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}
