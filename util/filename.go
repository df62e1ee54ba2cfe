package util

import (
	"errors"
	"net/url"
	"path"
	"strings"
)

var (
	ErrNoFilename = errors.New("cannot extract valid filename")
)

// MediaExtensions is the set of file extensions (without the leading dot)
// recognised as downloadable media.
var MediaExtensions = []string{"mp4", "webm", "m4v", "mkv", "mov", "flv"}

// FilenameFromURL extracts the last path element of a URL as a filename.
func FilenameFromURL(url *url.URL) (string, error) {
	if url == nil {
		return "", ErrNoFilename
	}
	trimmed := strings.Trim(url.Path, "/")
	if trimmed == "" {
		return "", ErrNoFilename
	}
	pathElements := strings.Split(trimmed, "/")
	filename := pathElements[len(pathElements)-1]
	if filename == "" {
		return "", ErrNoFilename
	}
	// Don't allow "filenames" that are just ".", "..", etc.
	if strings.ReplaceAll(filename, ".", "") == "" {
		return "", ErrNoFilename
	}
	return filename, nil
}

// FilenameFromURLString is FilenameFromURL for an unparsed URL.
func FilenameFromURLString(s string) (string, error) {
	if parsedURL, err := url.Parse(s); err != nil {
		return "", err
	} else {
		return FilenameFromURL(parsedURL)
	}
}

// HasMediaExtension reports whether the filename ends in one of MediaExtensions.
func HasMediaExtension(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	for _, known := range MediaExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

// ExtensionForContentType maps a media content type to a filename extension,
// defaulting to ".mp4" when the subtype is unknown.
func ExtensionForContentType(contentType string) string {
	mediaType := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	parts := strings.SplitN(mediaType, "/", 2)
	if len(parts) != 2 || parts[0] != "video" {
		return ".mp4"
	}
	switch parts[1] {
	case "mp4", "webm":
		return "." + parts[1]
	case "x-matroska":
		return ".mkv"
	case "quicktime":
		return ".mov"
	default:
		return ".mp4"
	}
}
