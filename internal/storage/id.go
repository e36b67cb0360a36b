package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// DigestHexLen is the length of a hex-encoded SHA-256 digest.
const DigestHexLen = 64

// ErrInvalidID is returned for canonical ids that are not {digest}{ext}.
var ErrInvalidID = errors.New("invalid video id")

// CanonicalID identifies an ingested video: content digest plus the
// original file extension (with leading dot).
type CanonicalID struct {
	Digest string
	Ext    string
}

// NewCanonicalID combines a digest with the extension of originalName.
func NewCanonicalID(digest, originalName string) CanonicalID {
	return CanonicalID{Digest: digest, Ext: filepath.Ext(originalName)}
}

func (id CanonicalID) String() string { return id.Digest + id.Ext }

// ParseCanonicalID validates an id received from a client. Only a lowercase
// hex digest followed by a simple extension is accepted, so the id can be
// joined onto a directory without escaping it.
func ParseCanonicalID(s string) (CanonicalID, error) {
	if strings.ContainsAny(s, `/\`) {
		return CanonicalID{}, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}

	ext := filepath.Ext(s)
	digest := strings.TrimSuffix(s, ext)

	if !ValidExt(ext) {
		return CanonicalID{}, fmt.Errorf("%w: %q has no usable extension", ErrInvalidID, s)
	}
	if !isHexDigest(digest) {
		return CanonicalID{}, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}

	return CanonicalID{Digest: digest, Ext: ext}, nil
}

// ValidExt reports whether ext (with leading dot) can be part of a canonical
// id: 1 to 16 ASCII letters or digits after the dot.
func ValidExt(ext string) bool {
	if len(ext) < 2 || len(ext) > 17 || ext[0] != '.' {
		return false
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

func isHexDigest(s string) bool {
	if len(s) != DigestHexLen {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
