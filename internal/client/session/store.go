// Package session persists the admin session: access token, refresh token
// and the admin profile returned at login. Each value lives under its own
// key so clearing one never implicitly clears another.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/eventadmin/internal/client/repositories/kv"
	"github.com/dmitrijs2005/eventadmin/internal/common"
	"github.com/dmitrijs2005/eventadmin/internal/cryptox"
	"github.com/dmitrijs2005/eventadmin/internal/dbx"
)

// saltKey stores the Argon2 salt used to derive the sealing key. It is kept
// in clear text and survives Clear.
const saltKey = "storeSalt"

// Credentials is the full persisted session.
type Credentials struct {
	AccessToken  string
	RefreshToken string
	AdminProfile json.RawMessage
}

// Store reads and writes session values. It is safe for concurrent use as
// long as the underlying repository is.
type Store struct {
	db     *sql.DB
	repo   kv.Repository
	sealer *cryptox.Sealer
}

// NewSQLiteStore keeps the session in db. Multi-key writes run in a single
// transaction.
func NewSQLiteStore(db *sql.DB) *Store {
	return &Store{db: db, repo: kv.NewSQLiteRepository(db)}
}

// NewStore wraps an arbitrary repository, e.g. kv.NewMemoryRepository.
func NewStore(repo kv.Repository) *Store {
	return &Store{repo: repo}
}

// EnableSealing derives an AES key from passphrase and encrypts every value
// written afterwards. The salt is generated on first use and persisted.
func (s *Store) EnableSealing(ctx context.Context, passphrase []byte) error {
	salt, err := s.repo.Get(ctx, saltKey)
	if err != nil {
		return err
	}
	if salt == nil {
		salt = common.GenerateRandByteArray(16)
		if err := s.repo.Set(ctx, saltKey, salt); err != nil {
			return err
		}
	}

	key := cryptox.DeriveKey(passphrase, salt)
	defer common.WipeByteArray(key)

	sealer, err := cryptox.NewSealer(key)
	if err != nil {
		return fmt.Errorf("init sealer: %w", err)
	}
	s.sealer = sealer
	return nil
}

func (s *Store) AccessToken(ctx context.Context) (string, error) {
	return s.getString(ctx, s.repo, common.AccessTokenKey)
}

func (s *Store) SetAccessToken(ctx context.Context, token string) error {
	return s.put(ctx, s.repo, common.AccessTokenKey, []byte(token))
}

// ClearAccessToken removes the access token only; the refresh token and the
// admin profile are left untouched.
func (s *Store) ClearAccessToken(ctx context.Context) error {
	return s.repo.Delete(ctx, common.AccessTokenKey)
}

func (s *Store) RefreshToken(ctx context.Context) (string, error) {
	return s.getString(ctx, s.repo, common.RefreshTokenKey)
}

func (s *Store) SetRefreshToken(ctx context.Context, token string) error {
	return s.put(ctx, s.repo, common.RefreshTokenKey, []byte(token))
}

func (s *Store) AdminProfile(ctx context.Context) (json.RawMessage, error) {
	v, err := s.get(ctx, s.repo, common.AdminDataKey)
	if err != nil || v == nil {
		return nil, err
	}
	return json.RawMessage(v), nil
}

func (s *Store) SetAdminProfile(ctx context.Context, profile json.RawMessage) error {
	return s.put(ctx, s.repo, common.AdminDataKey, profile)
}

// Save writes all credentials at once. An empty refresh token or profile is
// skipped rather than stored, matching a login reply that omits them.
func (s *Store) Save(ctx context.Context, c Credentials) error {
	return s.atomic(ctx, func(repo kv.Repository) error {
		if err := s.put(ctx, repo, common.AccessTokenKey, []byte(c.AccessToken)); err != nil {
			return err
		}
		if c.RefreshToken != "" {
			if err := s.put(ctx, repo, common.RefreshTokenKey, []byte(c.RefreshToken)); err != nil {
				return err
			}
		}
		if len(c.AdminProfile) > 0 {
			if err := s.put(ctx, repo, common.AdminDataKey, c.AdminProfile); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load returns whatever is currently stored; missing values are empty.
func (s *Store) Load(ctx context.Context) (Credentials, error) {
	var c Credentials
	var err error
	if c.AccessToken, err = s.AccessToken(ctx); err != nil {
		return Credentials{}, err
	}
	if c.RefreshToken, err = s.RefreshToken(ctx); err != nil {
		return Credentials{}, err
	}
	if c.AdminProfile, err = s.AdminProfile(ctx); err != nil {
		return Credentials{}, err
	}
	return c, nil
}

// Clear removes every session value (logout).
func (s *Store) Clear(ctx context.Context) error {
	return s.atomic(ctx, func(repo kv.Repository) error {
		for _, k := range []string{common.AccessTokenKey, common.RefreshTokenKey, common.AdminDataKey} {
			if err := repo.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
}

// Dump lists stored session keys with tokens masked, for diagnostics.
func (s *Store) Dump(ctx context.Context) (map[string]string, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(all))
	for k := range all {
		if k == saltKey {
			continue
		}
		v, err := s.get(ctx, s.repo, k)
		if err != nil {
			return nil, err
		}
		switch k {
		case common.AccessTokenKey, common.RefreshTokenKey:
			out[k] = common.MaskToken(string(v))
		default:
			out[k] = string(v)
		}
	}
	return out, nil
}

func (s *Store) atomic(ctx context.Context, fn func(repo kv.Repository) error) error {
	if s.db == nil {
		return fn(s.repo)
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(kv.NewSQLiteRepository(tx))
	})
}

func (s *Store) getString(ctx context.Context, repo kv.Repository, key string) (string, error) {
	v, err := s.get(ctx, repo, key)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *Store) get(ctx context.Context, repo kv.Repository, key string) ([]byte, error) {
	v, err := repo.Get(ctx, key)
	if err != nil || v == nil {
		return nil, err
	}
	if s.sealer == nil {
		return v, nil
	}
	plain, err := s.sealer.Open(v)
	if err != nil {
		return nil, fmt.Errorf("unseal %s: %w", key, err)
	}
	return plain, nil
}

func (s *Store) put(ctx context.Context, repo kv.Repository, key string, value []byte) error {
	if s.sealer != nil {
		sealed, err := s.sealer.Seal(value)
		if err != nil {
			return fmt.Errorf("seal %s: %w", key, err)
		}
		value = sealed
	}
	return repo.Set(ctx, key, value)
}
