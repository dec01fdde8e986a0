// Package session persists the authenticated API session between runs. The
// bearer token lives in a local SQLite database under a fixed profile key and
// is encrypted at rest.
package session

import (
	"database/sql"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DefaultProfileKey is the fixed key the single-user admin session is stored
// under.
const DefaultProfileKey = "default"

// Profile is a persisted API session.
type Profile struct {
	Key         string
	Token       string
	UserID      string
	Email       string
	DeviceID    string // unique per profile, assigned on first save
	LastUpdated time.Time
}

// Store defines the interface for session persistence.
type Store interface {
	Get(key string) (*Profile, error)
	Save(profile *Profile) error
	Delete(key string) error
	Close() error
}

// SQLiteStore implements Store using SQLite with encrypted tokens.
type SQLiteStore struct {
	db            *sql.DB
	encryptionKey []byte
	mu            sync.RWMutex
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite-based session store.
// The dbPath is the path to the SQLite database file.
// The encryptionKey is used to encrypt/decrypt the stored token.
func NewSQLiteStore(dbPath string, encryptionKey []byte) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set file permissions (only works on creation)
	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		// Ignore error if file doesn't exist yet
	}

	store := &SQLiteStore{
		db:            db,
		encryptionKey: encryptionKey,
	}

	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) init() error {
	query := `
	CREATE TABLE IF NOT EXISTS profiles (
		profile_key TEXT PRIMARY KEY,
		encrypted_token TEXT NOT NULL,
		user_id TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		device_id TEXT NOT NULL,
		last_updated DATETIME NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create profiles table: %w", err)
	}
	return nil
}

// Get retrieves a profile by key.
// Returns nil, nil if the profile doesn't exist.
func (s *SQLiteStore) Get(key string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var encryptedToken, userID, email, deviceID string
	var lastUpdated time.Time

	err := s.db.QueryRow(
		"SELECT encrypted_token, user_id, email, device_id, last_updated FROM profiles WHERE profile_key = ?",
		key,
	).Scan(&encryptedToken, &userID, &email, &deviceID, &lastUpdated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	token, err := Decrypt(encryptedToken, s.encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}

	return &Profile{
		Key:         key,
		Token:       string(token),
		UserID:      userID,
		Email:       email,
		DeviceID:    deviceID,
		LastUpdated: lastUpdated,
	}, nil
}

// Save inserts or replaces a profile. A missing profile key falls back to
// DefaultProfileKey and a missing device id is assigned.
func (s *SQLiteStore) Save(profile *Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if profile.Key == "" {
		profile.Key = DefaultProfileKey
	}
	if profile.DeviceID == "" {
		profile.DeviceID = uuid.NewString()
	}
	profile.LastUpdated = time.Now()

	encryptedToken, err := Encrypt([]byte(profile.Token), s.encryptionKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt token: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO profiles (profile_key, encrypted_token, user_id, email, device_id, last_updated)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		profile.Key, encryptedToken, profile.UserID, profile.Email, profile.DeviceID, profile.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// Delete removes a profile. Deleting a missing profile is not an error.
func (s *SQLiteStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM profiles WHERE profile_key = ?", key); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
