package db

import (
	"context"

	"github.com/shandysiswandi/authgate/internal/auth/entity"
)

const getCredentialByUsernameSQL = `
SELECT id, username, password_hash, totp_secret, created_at
FROM credentials
WHERE username = $1
`

func (s *DB) GetCredentialByUsername(ctx context.Context, username string) (_ *entity.Credential, err error) {
	ctx, span := s.startSpan(ctx, "GetCredentialByUsername")
	defer func() { s.endSpan(span, err) }()

	var cred entity.Credential
	err = s.conn.QueryRow(ctx, getCredentialByUsernameSQL, username).Scan(
		&cred.ID,
		&cred.Username,
		&cred.PasswordHash,
		&cred.TOTPSecret,
		&cred.CreatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &cred, nil
}
