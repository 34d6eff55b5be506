// Package request resolves what kind of client is calling. Web clients get
// their tokens via HttpOnly cookies, native clients via the response body.
package request

import "strings"

const (
	ClientWeb    = "web"
	ClientMobile = "mobile"
)

// ResolveClientType honors an explicit X-Client-Type header and falls back
// to sniffing the user agent.
func ResolveClientType(header, userAgent string) string {
	switch strings.ToLower(header) {
	case ClientWeb:
		return ClientWeb
	case ClientMobile:
		return ClientMobile
	}

	ua := strings.ToLower(userAgent)
	if strings.Contains(ua, "okhttp") || strings.Contains(ua, "dart") {
		return ClientMobile
	}
	return ClientWeb
}

func IsWebClient(clientType string) bool {
	return clientType == ClientWeb
}
