package metadata

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/trustcart/internal/common"
	"github.com/dmitrijs2005/trustcart/internal/dbx"
)

// TokenStore persists the single auth token of the client. It is the
// token source of the HTTP client and the token store of the session.
type TokenStore struct {
	db *sql.DB
}

func NewTokenStore(db *sql.DB) *TokenStore {
	return &TokenStore{db: db}
}

func (s *TokenStore) repo(db dbx.DBTX) Repository {
	return NewSQLiteRepository(db)
}

// Token returns the stored token or "" when none is stored.
func (s *TokenStore) Token(ctx context.Context) (string, error) {
	v, err := s.repo(s.db).Get(ctx, common.TokenMetadataKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// SetToken stores token and, when non-empty, the email used to obtain it,
// in one transaction.
func (s *TokenStore) SetToken(ctx context.Context, token, email string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, common.TokenMetadataKey, []byte(token)); err != nil {
			return err
		}
		if email == "" {
			return nil
		}
		return repo.Set(ctx, common.LastEmailMetadataKey, []byte(email))
	})
}

// ClearToken removes the token. The last email is kept as a login hint.
func (s *TokenStore) ClearToken(ctx context.Context) error {
	return s.repo(s.db).Delete(ctx, common.TokenMetadataKey)
}

func (s *TokenStore) LastEmail(ctx context.Context) (string, error) {
	v, err := s.repo(s.db).Get(ctx, common.LastEmailMetadataKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}
