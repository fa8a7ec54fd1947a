package media

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

const (
	ImageHost        = "i.imgur.com"
	YouTubeHost      = "youtube.com"
	YouTubeShortHost = "youtu.be"
)

var (
	errNotAbsolute = errors.New("url is not an absolute http(s) url")
	errNoImageID   = errors.New("no image id in url")
)

// parseURL accepts only absolute http(s) urls. Everything else is reported as
// an error so callers can fall through to their next rule.
func parseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty url")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Wrap(err, "parse url")
	}
	scheme := strings.ToLower(u.Scheme)
	if (scheme != "http" && scheme != "https") || u.Host == "" {
		return nil, errNotAbsolute
	}
	return u, nil
}

func hostname(u *url.URL) string {
	return strings.ToLower(u.Hostname())
}

// lastSegment returns the last non-empty path segment.
func lastSegment(u *url.URL) string {
	parts := strings.Split(u.Path, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}

func youtubeID(raw string) (string, error) {
	u, err := parseURL(raw)
	if err != nil {
		return "", err
	}
	host := hostname(u)
	var id string
	switch {
	case strings.Contains(host, YouTubeHost):
		id = u.Query().Get("v")
	case host == YouTubeShortHost:
		id = strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)[0]
	default:
		return "", errors.Errorf("unrecognized video host %s", host)
	}
	if id == "" {
		return "", errors.New("no video id")
	}
	return id, nil
}

// YouTubeID extracts the video id from youtube.com/watch?v=<id> or
// youtu.be/<id> links.
func YouTubeID(raw string) (string, bool) {
	id, err := youtubeID(raw)
	if err != nil {
		return "", false
	}
	return id, true
}
