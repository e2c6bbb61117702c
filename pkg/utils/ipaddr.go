package utils

import (
	"net/http"
	"strings"
)

const UnknownIP = "unknown"

// clientIPHeaders are consulted in order; the first non-empty value wins.
var clientIPHeaders = []string{
	"X-Vercel-Forwarded-For",
	"CF-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
	"True-Client-IP",
}

// ClientIP resolves the visitor address from proxy headers only.
// It never fails; "unknown" is returned when no header carries an address.
func ClientIP(h http.Header) string {
	for _, name := range clientIPHeaders {
		v := strings.TrimSpace(h.Get(name))
		if v == "" {
			continue
		}
		if name == "X-Forwarded-For" {
			first, _, _ := strings.Cut(v, ",")
			v = strings.TrimSpace(first)
			if v == "" {
				continue
			}
		}
		return v
	}
	return UnknownIP
}

// MaskIP hides the host part of an address for display.
// "203.0.113.42" -> "203.0.113.xxx", "2001:db8:1:2:3:4:5:6" -> "2001:db8:1:2:xxxx".
func MaskIP(ip string) string {
	if ip == "" || ip == UnknownIP {
		return ip
	}
	if strings.Contains(ip, ":") {
		groups := strings.Split(ip, ":")
		if len(groups) > 4 {
			groups = groups[:4]
		}
		return strings.Join(groups, ":") + ":xxxx"
	}
	parts := strings.Split(ip, ".")
	if len(parts) != 4 {
		return ip
	}
	return strings.Join(parts[:3], ".") + ".xxx"
}

// TruncateFingerprint shortens a fingerprint hash for list views.
func TruncateFingerprint(fp string) string {
	const keep = 12
	runes := []rune(fp)
	if len(runes) <= keep {
		return fp
	}
	return string(runes[:keep]) + "..."
}
