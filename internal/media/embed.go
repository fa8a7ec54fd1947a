package media

type EmbedKind int

const (
	EmbedImage EmbedKind = iota
	EmbedFrame
)

const (
	ImageFallbackAsset = "/assets/image-unavailable.svg"
	YouTubeEmbedBase   = "https://www.youtube.com/embed/"
	YouTubePlayerAllow = "accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture; web-share"
)

// Embed describes an element to materialize in a detail view. It carries no
// behavior so it can be rendered by any surface.
type Embed struct {
	Kind            EmbedKind `json:"kind"`
	Src             string    `json:"src"`
	Alt             string    `json:"alt,omitempty"`
	Title           string    `json:"title,omitempty"`
	Allow           string    `json:"allow,omitempty"`
	ReferrerPolicy  string    `json:"referrerPolicy,omitempty"`
	AspectRatio     string    `json:"aspectRatio,omitempty"`
	Fallback        string    `json:"fallback,omitempty"`
	Lazy            bool      `json:"lazy"`
	AllowFullscreen bool      `json:"allowFullscreen"`
}

// RenderImage embeds direct images as an image and anything else, such as
// gallery or album pages, as a best-effort frame.
func RenderImage(raw string) (Embed, bool) {
	u, err := parseURL(raw)
	if err != nil {
		return Embed{}, false
	}
	if hostname(u) == ImageHost {
		return Embed{
			Kind:        EmbedImage,
			Src:         u.String(),
			Alt:         "Imgur image",
			AspectRatio: "16/9",
			Fallback:    ImageFallbackAsset,
			Lazy:        true,
		}, true
	}
	return Embed{
		Kind:            EmbedFrame,
		Src:             u.String(),
		ReferrerPolicy:  "no-referrer",
		Lazy:            true,
		AllowFullscreen: true,
	}, true
}

// RenderVideo returns a player frame, or false when no video id is found.
func RenderVideo(raw string) (Embed, bool) {
	id, ok := YouTubeID(raw)
	if !ok {
		return Embed{}, false
	}
	return Embed{
		Kind:            EmbedFrame,
		Src:             YouTubeEmbedBase + id,
		Title:           "YouTube video",
		Allow:           YouTubePlayerAllow,
		Lazy:            true,
		AllowFullscreen: true,
	}, true
}
