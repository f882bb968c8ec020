package sound

import (
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/dhowden/tag"
)

// Title is the display name of a source.
type Title struct {
	Title  string
	Artist string
}

// ReadTitle reads tag metadata from local sources. Remote sources, and files
// without usable tags, fall back to the base name of the URI.
func ReadTitle(src Source) Title {
	fallback := Title{Title: baseName(src)}

	p, ok := localPath(src)
	if !ok {
		return fallback
	}
	f, err := os.Open(p)
	if err != nil {
		return fallback
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return fallback
	}

	t := Title{Title: m.Title(), Artist: m.Artist()}
	if t.Title == "" {
		t.Title = fallback.Title
	}
	if t.Artist == "" {
		t.Artist = m.AlbumArtist()
	}
	return t
}

func baseName(src Source) string {
	if p, ok := localPath(src); ok {
		return filepath.Base(p)
	}
	if u, err := url.Parse(src.URI); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	return src.URI
}
