package hl3mural

import "strings"

const AnonymousName = "Anonymous"

// StoryData is the data payload of a single form submission.
type StoryData map[string]string

// Entry is the projection of a submission served by the submissions endpoint.
// Nothing outside of data is ever exposed.
type Entry struct {
	Data StoryData `json:"data"`
}

func (d StoryData) field(key string) string {
	if d == nil {
		return ""
	}
	return d[key]
}

func (d StoryData) Name() string  { return d.field("name") }
func (d StoryData) Story() string { return d.field("story") }

// Imgur returns the trimmed image link.
func (d StoryData) Imgur() string { return strings.TrimSpace(d.field("imgur")) }

// Video returns the trimmed video link.
func (d StoryData) Video() string { return strings.TrimSpace(d.field("video")) }

// DisplayName falls back to AnonymousName for blank names.
func (d StoryData) DisplayName() string {
	name := d.Name()
	if strings.TrimSpace(name) == "" {
		return AnonymousName
	}
	return name
}
