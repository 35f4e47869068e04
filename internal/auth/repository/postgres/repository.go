package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/andrianpratama/member-auth-service/internal/auth/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies it
// in tests.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByMemberNo matches the legacy composite member key, which stores the
// member number as "<branch>/<number>;<status>". Only the first matching row
// is taken.
func (r *PostgresRepository) FindByMemberNo(ctx context.Context, memberNo string) (*domain.Member, error) {
	query := `
		SELECT id, full_name, email, phone, passcode_hash, recovery_code_hash, recovery_code_expires_at
		FROM member_records
		WHERE member_key LIKE '%/' || $1 || ';%'
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, memberNo)

	var (
		m            domain.Member
		email        *string
		phone        *string
		passcodeHash *string
		recoveryHash *string
		recoveryExp  *time.Time
	)
	err := row.Scan(&m.ID, &m.FullName, &email, &phone, &passcodeHash, &recoveryHash, &recoveryExp)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find member record: %w", err)
	}

	m.MemberNo = memberNo
	if email != nil {
		m.Email = *email
	}
	if phone != nil {
		m.Phone = *phone
	}
	if passcodeHash != nil {
		m.PasscodeHash = *passcodeHash
	}
	if recoveryHash != nil {
		m.RecoveryCodeHash = *recoveryHash
	}
	m.RecoveryCodeExpiresAt = recoveryExp

	return &m, nil
}

func (r *PostgresRepository) SaveRecoveryCode(ctx context.Context, recordID, codeHash string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE member_records
		SET recovery_code_hash = $2, recovery_code_expires_at = $3
		WHERE id = $1
	`, recordID, codeHash, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to save recovery code: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ClearRecoveryCode(ctx context.Context, recordID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE member_records
		SET recovery_code_hash = NULL, recovery_code_expires_at = NULL
		WHERE id = $1
	`, recordID)
	if err != nil {
		return fmt.Errorf("failed to clear recovery code: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdatePasscode(ctx context.Context, recordID, passcodeHash string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE member_records
		SET passcode_hash = $2
		WHERE id = $1
	`, recordID, passcodeHash)
	if err != nil {
		return fmt.Errorf("failed to update passcode: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdatePasscodeClearRecovery(ctx context.Context, recordID, passcodeHash string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE member_records
		SET passcode_hash = $2, recovery_code_hash = NULL, recovery_code_expires_at = NULL
		WHERE id = $1
	`, recordID, passcodeHash)
	if err != nil {
		return fmt.Errorf("failed to update passcode: %w", err)
	}
	return nil
}
