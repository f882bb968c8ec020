package sound

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
	extOGG  = ".ogg"
	extOGA  = ".oga"
)

// maxRemoteSize caps the size of http sources buffered in memory.
const maxRemoteSize = 256 << 20

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrUnsupportedScheme = errors.New("unsupported source scheme")
	ErrEmptySource       = errors.New("empty source")
)

// IsSupported reports whether the source's extension can be decoded.
func IsSupported(src Source) bool {
	_, ext, err := locate(src)
	if err != nil {
		return false
	}
	switch ext {
	case extMP3, extFLAC, extWAV, extOGG, extOGA:
		return true
	}
	return false
}

// locate splits a source into its scheme and lowercased file extension.
func locate(src Source) (scheme, ext string, err error) {
	if src.IsZero() {
		return "", "", ErrEmptySource
	}
	u, err := url.Parse(src.URI)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain paths, including Windows drive letters.
		return "", strings.ToLower(filepath.Ext(src.URI)), nil
	}
	return strings.ToLower(u.Scheme), strings.ToLower(path.Ext(u.Path)), nil
}

// localPath returns the filesystem path of a path or file:// source.
func localPath(src Source) (string, bool) {
	scheme, _, err := locate(src)
	if err != nil {
		return "", false
	}
	switch scheme {
	case "":
		return src.URI, true
	case "file":
		u, err := url.Parse(src.URI)
		if err != nil {
			return "", false
		}
		return u.Path, true
	}
	return "", false
}

type readSeekCloser struct {
	*bytes.Reader
}

func (readSeekCloser) Close() error { return nil }

// open returns a seekable reader over the source and its extension.
func open(ctx context.Context, client *http.Client, src Source) (io.ReadSeekCloser, string, error) {
	scheme, ext, err := locate(src)
	if err != nil {
		return nil, "", err
	}

	switch scheme {
	case "", "file":
		p, _ := localPath(src)
		f, err := os.Open(p)
		if err != nil {
			return nil, "", errors.Wrapf(err, "open %s", p)
		}
		return f, ext, nil

	case "http", "https":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URI, nil)
		if err != nil {
			return nil, "", errors.Wrap(err, "build request")
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, "", errors.Wrapf(err, "fetch %s", src.URI)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, "", errors.Newf("fetch %s: unexpected status %s", src.URI, resp.Status)
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteSize+1))
		if err != nil {
			return nil, "", errors.Wrapf(err, "read %s", src.URI)
		}
		if len(data) > maxRemoteSize {
			return nil, "", errors.Newf("fetch %s: source larger than %d bytes", src.URI, maxRemoteSize)
		}
		return readSeekCloser{bytes.NewReader(data)}, ext, nil
	}

	return nil, "", errors.Wrapf(ErrUnsupportedScheme, "%q", scheme)
}

// decode picks a decoder by extension.
func decode(rc io.ReadSeekCloser, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext {
	case extMP3:
		return decodeMP3(rc)
	case extFLAC:
		if err := skipID3v2(rc); err != nil {
			return nil, beep.Format{}, errors.Wrap(err, "skip id3v2 header")
		}
		return flac.Decode(rc)
	case extWAV:
		return wav.Decode(rc)
	case extOGG, extOGA:
		return vorbis.Decode(rc)
	}
	return nil, beep.Format{}, errors.Wrapf(ErrUnsupportedFormat, "%q", ext)
}

// skipID3v2 positions r after a leading ID3v2 tag, or at the start if there
// is none. Some taggers prepend ID3v2 to FLAC files.
func skipID3v2(r io.ReadSeeker) error {
	var header [10]byte
	n, err := io.ReadFull(r, header[:])
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	if n < len(header) || string(header[:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}
	// Tag size is a 28-bit syncsafe integer.
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(int64(len(header))+size, io.SeekStart)
	return err
}
