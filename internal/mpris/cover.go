package mpris

import (
	"os"
	"path/filepath"

	"github.com/llehouerou/tapedeck/internal/sound"
)

// coverNames lists common album art filenames in priority order.
var coverNames = []string{
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png", "folder.jpeg",
	"front.jpg", "front.png", "front.jpeg",
}

// FindAlbumArt looks for album art next to a local source.
// Returns the path to the art file, or empty string if not found.
func FindAlbumArt(src sound.Source) string {
	p, ok := src.LocalPath()
	if !ok {
		return ""
	}
	dir := filepath.Dir(p)
	for _, name := range coverNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
