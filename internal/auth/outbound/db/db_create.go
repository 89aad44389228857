package db

import (
	"context"

	"github.com/shandysiswandi/authgate/internal/auth/entity"
)

const createCredentialSQL = `
INSERT INTO credentials (id, username, password_hash, totp_secret, created_at)
VALUES ($1, $2, $3, $4, $5)
`

// CreateCredential inserts a credential record. The unique index on username
// makes the check-and-insert atomic; a duplicate surfaces as
// goerror.ErrConflict and leaves no partial row behind.
func (s *DB) CreateCredential(ctx context.Context, in entity.Credential) (err error) {
	ctx, span := s.startSpan(ctx, "CreateCredential")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, createCredentialSQL,
		in.ID,
		in.Username,
		in.PasswordHash,
		in.TOTPSecret,
		in.CreatedAt,
	)
	err = s.mapError(err)

	return err
}
