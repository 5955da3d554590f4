package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upg/backend/internal/domain/identity"
	"github.com/upg/backend/internal/domain/shared"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newMockDB creates a GORM DB backed by a mocked SQL connection
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestNewGormUserRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		db, _, mockDB := newMockDB(t)
		defer mockDB.Close()

		repo := NewGormUserRepository(db)

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormUserRepository_FindByID(t *testing.T) {
	t.Run("finds existing user", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormUserRepository(db)

		userID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "version", "username", "email", "role", "status"}).
			AddRow(userID, 1, "jwanjiru", "jwanjiru@example.org", "mentor", "active")

		mock.ExpectQuery("SELECT \\* FROM `users` WHERE id = \\?.*LIMIT \\?").
			WithArgs(userID, 1).
			WillReturnRows(rows)

		user, err := repo.FindByID(context.Background(), userID)

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, "jwanjiru", user.Username)
		assert.Equal(t, identity.RoleMentor, user.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing user", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormUserRepository(db)

		userID := uuid.New()

		mock.ExpectQuery("SELECT \\* FROM `users` WHERE id = \\?.*LIMIT \\?").
			WithArgs(userID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.FindByID(context.Background(), userID)

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_FindByUsername(t *testing.T) {
	t.Run("lowercases the lookup", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormUserRepository(db)

		userID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "version", "username", "role", "status"}).
			AddRow(userID, 1, "aodhiambo", "field_associate", "active")

		mock.ExpectQuery("SELECT \\* FROM `users` WHERE username = \\?.*LIMIT \\?").
			WithArgs("aodhiambo", 1).
			WillReturnRows(rows)

		user, err := repo.FindByUsername(context.Background(), "AOdhiambo")

		assert.NoError(t, err)
		assert.Equal(t, "aodhiambo", user.Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_ExistsByUsername(t *testing.T) {
	t.Run("reports existing username", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormUserRepository(db)

		rows := sqlmock.NewRows([]string{"count"}).AddRow(1)

		mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE username = \\?").
			WithArgs("jwanjiru").
			WillReturnRows(rows)

		exists, err := repo.ExistsByUsername(context.Background(), "jwanjiru")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports free username", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormUserRepository(db)

		rows := sqlmock.NewRows([]string{"count"}).AddRow(0)

		mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE username = \\?").
			WithArgs("nobody").
			WillReturnRows(rows)

		exists, err := repo.ExistsByUsername(context.Background(), "nobody")

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_LoadVillageAssignments(t *testing.T) {
	t.Run("loads assigned village IDs", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormUserRepository(db)

		userID := uuid.New()
		villageA := uuid.New()
		villageB := uuid.New()

		rows := sqlmock.NewRows([]string{"user_id", "village_id"}).
			AddRow(userID, villageA).
			AddRow(userID, villageB)

		mock.ExpectQuery("SELECT \\* FROM `user_villages` WHERE user_id = \\?").
			WithArgs(userID).
			WillReturnRows(rows)

		user := &identity.User{}
		user.ID = userID

		err := repo.LoadVillageAssignments(context.Background(), user)

		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{villageA, villageB}, user.AssignedVillageIDs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPasswordResetTokenRepository_FindByToken(t *testing.T) {
	t.Run("finds active token", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPasswordResetTokenRepository(db)

		tokenID := uuid.New()
		userID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "user_id", "token", "is_active"}).
			AddRow(tokenID, userID, "abc123", true)

		mock.ExpectQuery("SELECT \\* FROM `password_reset_tokens` WHERE token = \\?.*LIMIT \\?").
			WithArgs("abc123", 1).
			WillReturnRows(rows)

		token, err := repo.FindByToken(context.Background(), "abc123")

		assert.NoError(t, err)
		assert.Equal(t, userID, token.UserID)
		assert.True(t, token.IsActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown token", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPasswordResetTokenRepository(db)

		mock.ExpectQuery("SELECT \\* FROM `password_reset_tokens` WHERE token = \\?.*LIMIT \\?").
			WithArgs("missing", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		token, err := repo.FindByToken(context.Background(), "missing")

		assert.Nil(t, token)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
