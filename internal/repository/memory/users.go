package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/eventtick/eventtick-go/internal/domain"
	"github.com/eventtick/eventtick-go/internal/repository"
)

// UserRecord is a registered user together with its bcrypt password hash. The
// hash never leaves the repository layer.
type UserRecord struct {
	domain.User
	PasswordHash string `json:"passwordHash"`
}

// UserStore keeps the registered-user set, optionally mirrored to a JSON file
// so accounts survive restarts. A missing or empty file means no users.
type UserStore struct {
	mu   sync.RWMutex
	path string
	byID map[string]*UserRecord
	// byName indexes lowercased usernames for the case-insensitive
	// uniqueness check.
	byName map[string]string
	order  []string
}

func NewUserStore(path string) (*UserStore, error) {
	const op = "memory.NewUserStore"

	s := &UserStore{
		path:   path,
		byID:   make(map[string]*UserRecord),
		byName: make(map[string]string),
	}

	if path == "" {
		return s, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var records []UserRecord
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i := range records {
		r := records[i]
		s.byID[r.ID] = &r
		s.byName[strings.ToLower(r.Username)] = r.ID
		s.order = append(s.order, r.ID)
	}

	return s, nil
}

func (s *UserStore) Create(rec UserRecord) error {
	const op = "memory.UserStore.Create"

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(rec.Username)
	if _, ok := s.byName[key]; ok {
		return fmt.Errorf("%s: %w", op, repository.ErrUsernameTaken)
	}

	s.byID[rec.ID] = &rec
	s.byName[key] = rec.ID
	s.order = append(s.order, rec.ID)

	if err := s.persistLocked(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *UserStore) GetByUsername(username string) (*UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byName[strings.ToLower(username)]
	if !ok {
		return nil, repository.ErrNotFound
	}

	cp := *s.byID[id]
	return &cp, nil
}

func (s *UserStore) Get(id string) (*UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	cp := *rec
	return &cp, nil
}

func (s *UserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order)
}

func (s *UserStore) persistLocked() error {
	if s.path == "" {
		return nil
	}

	records := make([]UserRecord, 0, len(s.order))
	for _, id := range s.order {
		records = append(records, *s.byID[id])
	}

	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	return os.WriteFile(s.path, b, 0o600)
}
