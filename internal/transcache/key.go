package transcache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"subfix/internal/captions"
)

// Key identifies one transcript request.
type Key struct {
	// Media is the absolute path of a local file or the URL of remote media.
	Media           string
	Size            int64
	ModTime         time.Time
	BoostWords      []string
	BoostParam      string
	CharsPerCaption int
}

// KeyFor fingerprints media and the transcript settings. Local files are
// stat'ed so an edited file misses the cache.
func KeyFor(media string, boostWords []string, boostParam string, charsPerCaption int) (Key, error) {
	key := Key{
		Media:           strings.TrimSpace(media),
		BoostWords:      slices.Clone(boostWords),
		BoostParam:      boostParam,
		CharsPerCaption: charsPerCaption,
	}
	slices.Sort(key.BoostWords)
	if captions.IsRemote(key.Media) {
		return key, nil
	}
	abs, err := filepath.Abs(key.Media)
	if err != nil {
		return Key{}, fmt.Errorf("transcache: resolve %s: %w", media, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Key{}, fmt.Errorf("transcache: stat %s: %w", media, err)
	}
	key.Media = abs
	key.Size = info.Size()
	key.ModTime = info.ModTime().UTC()
	return key, nil
}

// Digest returns the stable hex identifier stored in the database.
func (k Key) Digest() string {
	parts := []string{
		k.Media,
		strconv.FormatInt(k.Size, 10),
		strconv.FormatInt(k.ModTime.UnixNano(), 10),
		strings.Join(k.BoostWords, "\x1f"),
		k.BoostParam,
		strconv.Itoa(k.CharsPerCaption),
	}
	if k.ModTime.IsZero() {
		parts[2] = "0"
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1e")))
	return hex.EncodeToString(sum[:])
}
