package html

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	introPolicyOnce sync.Once
	introPolicy     *bluemonday.Policy
)

// SanitizeIntro strips scripts, handlers and unknown markup from configured
// page copy while keeping basic formatting and links.
func SanitizeIntro(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(introSanitizer().Sanitize(trimmed))
}

func introSanitizer() *bluemonday.Policy {
	introPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		introPolicy = policy
	})
	return introPolicy
}
