package media

import (
	"strings"

	"github.com/totegamma/hl3mural"
)

const YouTubeThumbnailBase = "https://i.ytimg.com/vi/"

// ThumbnailFor resolves the tile image of an entry. It never fails: when no
// media link is usable an initials placeholder is returned.
func ThumbnailFor(data hl3mural.StoryData) string {
	if thumb, err := imageThumbnail(data.Imgur()); err == nil {
		return thumb
	}
	if id, err := youtubeID(data.Video()); err == nil {
		return YouTubeThumbnailBase + id + "/hqdefault.jpg"
	}
	return Placeholder(data.Name())
}

func imageThumbnail(raw string) (string, error) {
	u, err := parseURL(raw)
	if err != nil {
		return "", err
	}
	if hostname(u) == ImageHost {
		return raw, nil
	}
	id := lastSegment(u)
	if id == "" || strings.Contains(id, ".") {
		return "", errNoImageID
	}
	return "https://" + ImageHost + "/" + id + ".jpg", nil
}
