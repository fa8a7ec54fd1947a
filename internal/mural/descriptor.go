package mural

import (
	"github.com/totegamma/hl3mural"
	"github.com/totegamma/hl3mural/internal/media"
)

const (
	ReadMoreLabel = "Read Story"
	EmptyNote     = "No stories yet. Be the first to sign!"
)

// Tile is one clickable cell of the mural.
type Tile struct {
	Thumbnail string
	Name      string
	Action    string
}

// Detail is the content of the modal opened from a tile.
type Detail struct {
	Name   string
	Story  string
	Embeds []media.Embed
}

func TileFor(e hl3mural.Entry) Tile {
	return Tile{
		Thumbnail: media.ThumbnailFor(e.Data),
		Name:      e.Data.DisplayName(),
		Action:    ReadMoreLabel,
	}
}

// DetailFor resolves the embeds of an entry. Links that cannot be embedded
// are left out.
func DetailFor(e hl3mural.Entry) Detail {
	d := Detail{
		Name:  e.Data.DisplayName(),
		Story: e.Data.Story(),
	}
	if img := e.Data.Imgur(); img != "" {
		if embed, ok := media.RenderImage(img); ok {
			d.Embeds = append(d.Embeds, embed)
		}
	}
	if video := e.Data.Video(); video != "" {
		if embed, ok := media.RenderVideo(video); ok {
			d.Embeds = append(d.Embeds, embed)
		}
	}
	return d
}
