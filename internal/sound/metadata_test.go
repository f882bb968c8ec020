package sound

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadTitle_FallsBackToBaseName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "untagged.mp3")
	if err := os.WriteFile(path, []byte("not really audio"), 0o600); err != nil {
		t.Fatal(err)
	}

	got := ReadTitle(Source{URI: path})

	if got.Title != "untagged.mp3" {
		t.Errorf("Title = %q, want untagged.mp3", got.Title)
	}
	if got.Artist != "" {
		t.Errorf("Artist = %q, want empty", got.Artist)
	}
}

func TestReadTitle_Remote(t *testing.T) {
	got := ReadTitle(Source{URI: "https://example.com/podcasts/episode-12.mp3?token=x"})

	if got.Title != "episode-12.mp3" {
		t.Errorf("Title = %q, want episode-12.mp3", got.Title)
	}
}

func TestReadTitle_MissingFile(t *testing.T) {
	got := ReadTitle(Source{URI: "/nope/missing.flac"})

	if got.Title != "missing.flac" {
		t.Errorf("Title = %q, want missing.flac", got.Title)
	}
}
