package mural

import "github.com/totegamma/hl3mural"

// SampleEntries are shown when the submissions endpoint cannot be reached,
// typically during local development.
func SampleEntries() []hl3mural.Entry {
	return []hl3mural.Entry{
		{Data: hl3mural.StoryData{
			"name":  "Alyx V.",
			"story": "I still remember the tram ride.",
			"imgur": "https://i.imgur.com/3sK9kKq.jpeg",
			"video": "",
		}},
		{Data: hl3mural.StoryData{
			"name":  "Barney C.",
			"story": "Pick up that can.",
			"imgur": "",
			"video": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		}},
	}
}
