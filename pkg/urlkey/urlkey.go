// Package urlkey canonicalizes page URLs into stable storage keys.
//
// Two URLs that differ only by playback-position decoration (resume
// timestamps, share tracking) must collapse to the same namespace, so
// notes attached to "the same video" end up in one record.
package urlkey

import (
	"net/url"
	"strings"
)

// volatileParams are query parameters that encode playback position or
// share/continuation state rather than page identity.
var volatileParams = []string{"t", "time_continue", "start", "si"}

var videoHosts = []string{
	"youtube.com",
	"youtu.be",
	"vimeo.com",
	"twitch.tv",
	"dailymotion.com",
}

// Normalize strips volatile query parameters from video-page URLs.
// Non-video URLs, unparsable input and empty strings are returned
// unchanged; Normalize never panics. It is idempotent: stripping an
// already-stripped URL returns it verbatim.
func Normalize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	if !isVideoPage(u) {
		return raw
	}

	q := u.Query()
	changed := false
	for _, p := range volatileParams {
		if q.Has(p) {
			q.Del(p)
			changed = true
		}
	}
	// Fragment-style positions (#t=1m30s) count as decoration too.
	if strings.HasPrefix(u.Fragment, "t=") {
		u.Fragment = ""
		changed = true
	}

	if !changed {
		return raw
	}

	u.RawQuery = q.Encode()
	return u.String()
}

// isVideoPage reports whether the URL looks like a video watch page:
// a known video host, a /watch or /embed path, or a v= video id.
func isVideoPage(u *url.URL) bool {
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for _, h := range videoHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	path := strings.ToLower(u.Path)
	if strings.Contains(path, "/watch") || strings.Contains(path, "/embed") {
		return true
	}
	return u.Query().Has("v")
}
