// Package avatar stores the picture chosen for a user: one of the preset
// illustrations, or an uploaded image kept as a data URI.
package avatar

import (
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"strings"

	"forest-funds/internal/storage"

	"github.com/gabriel-vasile/mimetype"
)

const (
	// Default is the preset shown to users who never picked one.
	Default = "1"
	// Custom marks an uploaded image.
	Custom = "custom"

	// DefaultMaxBytes is the largest image SetImage accepts.
	DefaultMaxBytes = 2 << 20
)

// Presets are the selectable illustrations.
var Presets = []string{"1", "2", "3", "4", "5", "6"}

var (
	ErrUnknownPreset = errors.New("unknown avatar preset")
	ErrEmptyImage    = errors.New("image is empty")
	ErrTooLarge      = errors.New("image must be smaller than 2MB")
	ErrNotImage      = errors.New("please select an image file")
)

// Avatar is the stored choice of a user. Image is set only for Custom.
type Avatar struct {
	Preset string
	Image  string
}

// Store reads and writes avatars on a key-value medium.
type Store struct {
	kv       storage.Medium
	maxBytes int64
}

// New creates a Store on kv. maxBytes below 1 means DefaultMaxBytes.
func New(kv storage.Medium, maxBytes int64) *Store {
	if maxBytes < 1 {
		maxBytes = DefaultMaxBytes
	}
	return &Store{kv: kv, maxBytes: maxBytes}
}

// Get returns the user's avatar, Default when none was chosen.
func (s *Store) Get(userID string) (Avatar, error) {
	preset, ok, err := s.kv.Get(storage.UserKey(userID, storage.AvatarKey))
	if err != nil {
		return Avatar{}, err
	}
	if !ok || preset == "" {
		preset = Default
	}
	a := Avatar{Preset: preset}
	if preset != Custom {
		return a, nil
	}
	image, ok, err := s.kv.Get(storage.UserKey(userID, storage.AvatarImageKey))
	if err != nil {
		return Avatar{}, err
	}
	if ok {
		a.Image = image
	}
	return a, nil
}

// SetPreset selects one of Presets and discards any uploaded image.
func (s *Store) SetPreset(userID, preset string) error {
	if !slices.Contains(Presets, preset) {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, preset)
	}
	if err := s.kv.Set(storage.UserKey(userID, storage.AvatarKey), preset); err != nil {
		return err
	}
	return s.kv.Delete(storage.UserKey(userID, storage.AvatarImageKey))
}

// SetImage stores data as the user's custom avatar. The content must sniff as
// an image and fit in the configured size.
func (s *Store) SetImage(userID string, data []byte) (Avatar, error) {
	if len(data) == 0 {
		return Avatar{}, ErrEmptyImage
	}
	if int64(len(data)) > s.maxBytes {
		return Avatar{}, ErrTooLarge
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return Avatar{}, fmt.Errorf("%w: got %s", ErrNotImage, mt.String())
	}

	uri := "data:" + mt.String() + ";base64," + base64.StdEncoding.EncodeToString(data)
	if err := s.kv.Set(storage.UserKey(userID, storage.AvatarImageKey), uri); err != nil {
		return Avatar{}, err
	}
	if err := s.kv.Set(storage.UserKey(userID, storage.AvatarKey), Custom); err != nil {
		return Avatar{}, err
	}
	return Avatar{Preset: Custom, Image: uri}, nil
}
