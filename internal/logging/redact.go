package logging

import (
	"log/slog"
	"strings"
)

// secretKeyPatterns contains substrings that indicate a key likely holds
// sensitive data. Keys are matched case-insensitively.
var secretKeyPatterns = []string{
	"TOKEN",
	"KEY",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
	"PRIVATE",
}

// tokenPrefixes are well-known API token prefixes, sensitive whatever the key.
var tokenPrefixes = []string{
	"ghp_", "gho_", "ghu_", "ghs_", "ghr_",
	"sk-",
	"AKIA",
	"xoxb-", "xoxp-", "xoxa-", "xoxr-",
}

// ShouldMask reports whether a key (an attribute or option name) names a
// sensitive value.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range secretKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// LooksLikeToken reports whether a value starts with a known token prefix.
func LooksLikeToken(value string) bool {
	for _, prefix := range tokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// MaskValue masks a sensitive string. Values of 4 characters or fewer are
// fully masked; longer values keep their last 4 characters.
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// redactAttr masks the value of a secret-looking attribute.
func redactAttr(a slog.Attr) slog.Attr {
	switch {
	case ShouldMask(a.Key):
		return slog.String(a.Key, MaskValue(a.Value.String()))
	case a.Value.Kind() == slog.KindString && LooksLikeToken(a.Value.String()):
		return slog.String(a.Key, MaskValue(a.Value.String()))
	}
	return a
}
