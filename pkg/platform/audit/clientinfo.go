package audit

import (
	"strings"

	"github.com/mssola/useragent"
)

// ClientInfo reduces a User-Agent header to "browser/os", e.g.
// "Firefox/Linux x86_64". Bots are reported as "bot/<name>".
func ClientInfo(userAgent string) string {
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return ""
	}
	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	if ua.Bot() {
		return "bot/" + browser
	}
	os := ua.OS()
	if browser == "" {
		browser = "unknown"
	}
	if os == "" {
		os = "unknown"
	}
	return browser + "/" + os
}
