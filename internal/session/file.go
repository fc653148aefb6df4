package session

import (
	"path/filepath"
	"time"

	"github.com/idilsaglam/easycontact/internal/store/jsonstore"
)

const credFileName = "credentials.json"

// FileStore keeps the token in <dir>/credentials.json (0600).
type FileStore struct {
	path string
	now  func() time.Time
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, credFileName), now: time.Now}
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Set(token string) error {
	token, err := normalize(token)
	if err != nil {
		return err
	}
	ti := TokenInfo{
		Token:     token,
		Source:    "file",
		CreatedAt: s.now(),
	}
	if claims, err := Inspect(token); err == nil && claims.ExpiresAt != nil {
		ti.ExpiresAt = claims.ExpiresAt
	}
	return jsonstore.Save(s.path, ti)
}

func (s *FileStore) Get() (string, error) {
	ti, err := s.Info()
	if err != nil || ti == nil {
		return "", err
	}
	return ti.Token, nil
}

// Info returns the stored record, or nil when not logged in.
func (s *FileStore) Info() (*TokenInfo, error) {
	var ti TokenInfo
	found, err := jsonstore.Load(s.path, &ti)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	ti.Token = stripBearer(ti.Token)
	if ti.Token == "" {
		return nil, nil
	}
	return &ti, nil
}

func (s *FileStore) Clear() error {
	return jsonstore.Remove(s.path)
}
