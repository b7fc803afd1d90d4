package captions

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

const (
	originalSuffix = "-orig.srt"
	fixedSuffix    = "-fixed.srt"
	lockSuffix     = ".lock"
)

// Artifacts are the files a run produces for one media reference.
type Artifacts struct {
	Original string
	Fixed    string
}

// Lock returns the run lock path guarding the fixed artifact.
func (a Artifacts) Lock() string {
	return LockPath(a.Fixed)
}

// LockPath names the run lock guarding the artifact at fixedPath.
func LockPath(fixedPath string) string {
	return fixedPath + lockSuffix
}

// IsRemote reports whether media is an http(s) URL rather than a local path.
func IsRemote(media string) bool {
	lower := strings.ToLower(strings.TrimSpace(media))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// ArtifactsFor names the original and fixed caption files for media. A local
// path keeps its directory and extension (movie.mkv -> movie.mkv-fixed.srt).
// A URL is named after its last path segment in the working directory. When
// outputDir is set both files go there under the media's base name.
func ArtifactsFor(media, outputDir string) Artifacts {
	stem := media
	if IsRemote(media) {
		stem = remoteStem(media)
	}
	if outputDir != "" {
		stem = filepath.Join(outputDir, filepath.Base(stem))
	}
	return Artifacts{
		Original: stem + originalSuffix,
		Fixed:    stem + fixedSuffix,
	}
}

// FixedPathFor names the output of fixing an existing caption file.
func FixedPathFor(captionsPath, outputDir string) string {
	stem := strings.TrimSuffix(captionsPath, filepath.Ext(captionsPath))
	if outputDir != "" {
		stem = filepath.Join(outputDir, filepath.Base(stem))
	}
	return stem + fixedSuffix
}

func remoteStem(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "transcript"
	}
	base := sanitizeFileName(path.Base(parsed.Path))
	if base == "" || base == "." || base == "-" {
		if host := sanitizeFileName(parsed.Hostname()); host != "" {
			return host
		}
		return "transcript"
	}
	return base
}

// unsafeNameReplacer rewrites characters that cannot appear in a file name on
// common filesystems. URL paths are already percent-decoded at this point.
var unsafeNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

func sanitizeFileName(name string) string {
	return strings.TrimSpace(unsafeNameReplacer.Replace(strings.TrimSpace(name)))
}
