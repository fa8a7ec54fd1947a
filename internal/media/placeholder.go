package media

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/patrickmn/go-cache"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	placeholderSize     = 300
	placeholderFontSize = 140
	placeholderBaseline = 170
)

var (
	placeholderBackground = color.RGBA{R: 0x15, G: 0x19, B: 0x22, A: 0xff}
	placeholderForeground = color.RGBA{R: 0x9a, G: 0xa3, B: 0xb7, A: 0xff}
)

// rendered placeholders never change for the same initials
var placeholders = cache.New(cache.NoExpiration, 0)

var (
	faceOnce sync.Once
	faceMu   sync.Mutex
	face     font.Face
)

func loadFace() font.Face {
	faceOnce.Do(func() {
		f, err := opentype.Parse(gobold.TTF)
		if err != nil {
			slog.Error("failed to parse placeholder font", slog.String("error", err.Error()), slog.String("module", "media"))
			return
		}
		face, err = opentype.NewFace(f, &opentype.FaceOptions{
			Size:    placeholderFontSize,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			slog.Error("failed to create placeholder face", slog.String("error", err.Error()), slog.String("module", "media"))
			face = nil
		}
	})
	return face
}

// Initials returns the upper-cased first letters of the first two words of
// name, or "A" when name is blank.
func Initials(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return "A"
	}
	if len(words) > 2 {
		words = words[:2]
	}
	var sb strings.Builder
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		sb.WriteRune(unicode.ToUpper(r))
	}
	return sb.String()
}

// Placeholder renders the initials of name on a square canvas and returns it
// as a PNG data url.
func Placeholder(name string) string {
	initials := Initials(name)
	if cached, found := placeholders.Get(initials); found {
		return cached.(string)
	}

	img := image.NewRGBA(image.Rect(0, 0, placeholderSize, placeholderSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(placeholderBackground), image.Point{}, draw.Src)
	drawInitials(img, initials)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		slog.Error("failed to encode placeholder", slog.String("error", err.Error()), slog.String("module", "media"))
		return ""
	}
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	placeholders.Set(initials, dataURL, cache.NoExpiration)
	return dataURL
}

func drawInitials(dst draw.Image, initials string) {
	f := loadFace()
	if f == nil {
		return
	}

	// opentype faces keep per-glyph buffers
	faceMu.Lock()
	defer faceMu.Unlock()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(placeholderForeground),
		Face: f,
	}
	metrics := f.Metrics()
	width := d.MeasureString(initials)
	d.Dot = fixed.Point26_6{
		X: fixed.I(placeholderSize/2) - width/2,
		Y: fixed.I(placeholderBaseline) + (metrics.Ascent-metrics.Descent)/2,
	}
	d.DrawString(initials)
}
