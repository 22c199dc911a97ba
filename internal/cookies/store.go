package cookies

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound reports that no usable cookie session exists for a platform.
// Callers treat it as "unauthenticated", not as a failure.
var ErrNotFound = errors.New("cookie session not found")

// Cookie mirrors the browser cookie model persisted on disk.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path,omitempty"`
	Expires  float64 `json:"expires,omitempty"`
	HTTPOnly bool    `json:"httpOnly,omitempty"`
	Secure   bool    `json:"secure,omitempty"`
	SameSite string  `json:"sameSite,omitempty"`
}

// Session is the persisted authentication state for one platform.
type Session struct {
	Platform string
	Cookies  []Cookie
}

// Value returns the value of the named cookie and whether it was present.
func (s Session) Value(name string) (string, bool) {
	for _, c := range s.Cookies {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

// Store persists per-platform cookie sessions as JSON files in one directory.
type Store struct {
	dir string
}

// NewStore builds a Store rooted at the provided directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the cookie file location for a platform.
func (s *Store) Path(platform string) string {
	return filepath.Join(s.dir, strings.ToLower(platform)+".json")
}

// Load reads the cookie session for a platform. A missing or unreadable file
// resolves to ErrNotFound so callers can proceed as unauthenticated.
func (s *Store) Load(platform string) (Session, error) {
	data, err := os.ReadFile(s.Path(platform))
	if err != nil {
		return Session{Platform: platform}, ErrNotFound
	}

	var list []Cookie
	if err := json.Unmarshal(data, &list); err != nil {
		return Session{Platform: platform}, ErrNotFound
	}
	return Session{Platform: platform, Cookies: list}, nil
}

// Save persists a platform's cookies. The write is all-or-nothing: content is
// written to a temporary file first and moved into place with a rename, so a
// partial failure never corrupts an existing session.
func (s *Store) Save(platform string, session Session) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("ensure cookie directory: %w", err)
	}

	data, err := json.MarshalIndent(session.Cookies, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cookies: %w", err)
	}

	target := s.Path(platform)
	tmp, err := os.CreateTemp(s.dir, "."+strings.ToLower(platform)+"-*.json")
	if err != nil {
		return fmt.Errorf("create temp cookie file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write cookies: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp cookie file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("restrict cookie file permissions: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace cookie file: %w", err)
	}
	return nil
}
