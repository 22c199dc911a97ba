// Package platform identifies which streaming platform a URL belongs to.
package platform

import (
	"net/url"
	"strings"
)

// Platform names a supported streaming service.
type Platform string

const (
	VRTMax          Platform = "VRTMAX"
	VTMGo           Platform = "VTMGO"
	Streamz         Platform = "STREAMZ"
	GoPlay          Platform = "GOPLAY"
	YouTube         Platform = "YOUTUBE"
	GenericManifest Platform = "GENERIC_MANIFEST"
	Unknown         Platform = "UNKNOWN"
)

// String returns the platform identifier.
func (p Platform) String() string {
	return string(p)
}

// ForURL classifies a video page or manifest URL. Bare manifest URLs
// (.mpd/.m3u8) classify as GenericManifest; anything unrecognized is Unknown.
func ForURL(raw string) Platform {
	parsed, err := url.Parse(raw)
	if err != nil {
		return Unknown
	}
	host := strings.ToLower(parsed.Hostname())

	switch {
	case hostMatches(host, "vrt.be"):
		return VRTMax
	case hostMatches(host, "vtmgo.be"):
		return VTMGo
	case hostMatches(host, "streamz.be"):
		return Streamz
	case hostMatches(host, "goplay.be"):
		return GoPlay
	case hostMatches(host, "youtube.com"), hostMatches(host, "youtu.be"):
		return YouTube
	}

	lowerPath := strings.ToLower(parsed.Path)
	if strings.HasSuffix(lowerPath, ".mpd") || strings.HasSuffix(lowerPath, ".m3u8") {
		return GenericManifest
	}
	return Unknown
}

func hostMatches(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}
