package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "name", "email", "avatar_url", "user_type", "password_digest", "created_at"}

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	s, err := NewPostgresStore(mock)
	require.NoError(t, err)
	return s, mock
}

func TestPostgresStore_CreateUser(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	digest := []byte{7, 7, 7}

	mock.ExpectExec(`INSERT INTO "public"\."users"`).
		WithArgs(pgxmock.AnyArg(), "Ann", "Ann@Example.com", "ann@example.com", "", "pro", digest, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	u, err := s.CreateUser(context.Background(), CreateUserInput{
		Name:           "Ann",
		Email:          "Ann@Example.com",
		Type:           UserTypePro,
		PasswordDigest: digest,
		Now:            now,
	})
	require.NoError(t, err)
	assert.Len(t, u.ID, 26)
	assert.Equal(t, UserTypePro, u.Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateUser_Conflict(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO "public"\."users"`).
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_users_email_norm"})

	_, err := s.CreateUser(context.Background(), CreateUserInput{
		Name:           "Ann",
		Email:          "ann@example.com",
		PasswordDigest: []byte{1},
	})
	require.Error(t, err)
	assert.True(t, IsConflict(err))

	var ce ConflictError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "email", ce.Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateUser_InvalidSkipsDatabase(t *testing.T) {
	s, mock := newMockStore(t)

	_, err := s.CreateUser(context.Background(), CreateUserInput{Name: "Ann"})
	assert.True(t, IsInvalidInput(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FindByID(t *testing.T) {
	s, mock := newMockStore(t)
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .+ FROM "public"\."users" WHERE id = \$1`).
		WithArgs("01HV0000000000000000000000").
		WillReturnRows(mock.NewRows(userCols).
			AddRow("01HV0000000000000000000000", "Ann", "ann@example.com", "", "regular", []byte{1, 2}, created))

	u, err := s.FindByID(context.Background(), "01HV0000000000000000000000")
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)
	assert.Equal(t, UserTypeRegular, u.Type)
	assert.Equal(t, []byte{1, 2}, u.PasswordDigest)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FindByEmail_Normalizes(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM "public"\."users" WHERE email_norm = \$1`).
		WithArgs("ann@example.com").
		WillReturnRows(mock.NewRows(userCols))

	_, err := s.FindByEmail(context.Background(), "  ANN@example.com ")
	assert.True(t, IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FindByID_DatabaseError(t *testing.T) {
	s, mock := newMockStore(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery(`SELECT .+ FROM "public"\."users"`).
		WithArgs("01HV0000000000000000000000").
		WillReturnError(boom)

	_, err := s.FindByID(context.Background(), "01HV0000000000000000000000")
	require.ErrorIs(t, err, boom)
	assert.False(t, IsNotFound(err))
}

func TestPostgresStore_MalformedIDIsNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	for _, id := range []string{"  ", "u1", "65f1c0ffee0000000000beef"} {
		_, err := s.FindByID(context.Background(), id)
		assert.True(t, IsNotFound(err), "id %q", id)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithSchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s, err := NewPostgresStore(mock, WithSchema("sixcities"))
	require.NoError(t, err)
	assert.Equal(t, `"sixcities"."users"`, s.users())

	_, err = NewPostgresStore(mock, WithSchema("bad-schema;"))
	assert.Error(t, err)

	_, err = NewPostgresStore(nil)
	assert.Error(t, err)
}
