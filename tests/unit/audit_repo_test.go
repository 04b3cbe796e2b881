package unit

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prelimpro/prelimpro-backend/internal/audit"
)

func setupAuditRepo(t *testing.T) (*audit.Repo, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := audit.NewRepo(db)
	return repo, mock, db
}

func TestAuditRepo_Record(t *testing.T) {
	repo, mock, db := setupAuditRepo(t)
	defer db.Close()

	t.Run("inserts one entry and assigns id and created_at", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO audit_logs`).
			WithArgs(
				sqlmock.AnyArg(), // id (UUID)
				"user-uuid-1",
				audit.EntityProject,
				"prelim-12345-6789",
				"status_change",
				"draft -> pending",
				sqlmock.AnyArg(), // created_at
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		e := audit.Entry{
			UserID:   "user-uuid-1",
			Entity:   audit.EntityProject,
			EntityID: "prelim-12345-6789",
			Action:   "status_change",
			Details:  "draft -> pending",
		}
		err := repo.Record(context.Background(), &e)
		require.NoError(t, err)
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.CreatedAt.IsZero())

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("keeps a caller-assigned id", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO audit_logs`).
			WithArgs(
				"fixed-id",
				"user-uuid-1",
				audit.EntityNotice,
				"notice-11111-2222",
				"generated",
				"",
				sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		e := audit.Entry{
			ID:       "fixed-id",
			UserID:   "user-uuid-1",
			Entity:   audit.EntityNotice,
			EntityID: "notice-11111-2222",
			Action:   "generated",
		}
		require.NoError(t, repo.Record(context.Background(), &e))
		assert.Equal(t, "fixed-id", e.ID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps insert failures", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO audit_logs`).
			WillReturnError(sql.ErrConnDone)

		e := audit.Entry{UserID: "user-uuid-1", Entity: audit.EntityProject, EntityID: "p", Action: "created"}
		err := repo.Record(context.Background(), &e)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "insert audit entry")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAuditRepo_ListByEntity(t *testing.T) {
	repo, mock, db := setupAuditRepo(t)
	defer db.Close()

	cols := []string{"id", "user_id", "entity", "entity_id", "action", "details", "created_at"}

	t.Run("returns entries newest first", func(t *testing.T) {
		now := time.Now().UTC()
		mock.ExpectQuery(`SELECT id, user_id::text, entity`).
			WithArgs("user-uuid-1", audit.EntityNotice, "notice-11111-2222", 50).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("e2", "user-uuid-1", audit.EntityNotice, "notice-11111-2222", "marked_sent", "tracking=9400", now).
				AddRow("e1", "user-uuid-1", audit.EntityNotice, "notice-11111-2222", "generated", "", now.Add(-time.Hour)))

		entries, err := repo.ListByEntity(context.Background(), "user-uuid-1", audit.EntityNotice, "notice-11111-2222", 0)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "marked_sent", entries[0].Action)
		assert.Equal(t, "generated", entries[1].Action)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("caps the limit at 200", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, user_id::text, entity`).
			WithArgs("user-uuid-1", audit.EntityProject, "p", 50).
			WillReturnRows(sqlmock.NewRows(cols))

		_, err := repo.ListByEntity(context.Background(), "user-uuid-1", audit.EntityProject, "p", 9999)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAuditRepo_ListByUser(t *testing.T) {
	repo, mock, db := setupAuditRepo(t)
	defer db.Close()

	cols := []string{"id", "user_id", "entity", "entity_id", "action", "details", "created_at"}

	t.Run("pages with limit and offset", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, user_id::text, entity`).
			WithArgs("user-uuid-1", 10, 20).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("e1", "user-uuid-1", audit.EntityBilling, "cs_test_1", "plan_activated", "plan=pro", time.Now().UTC()))

		entries, err := repo.ListByUser(context.Background(), "user-uuid-1", 10, 20)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, audit.EntityBilling, entries[0].Entity)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative offset is treated as zero", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, user_id::text, entity`).
			WithArgs("user-uuid-1", 10, 0).
			WillReturnRows(sqlmock.NewRows(cols))

		_, err := repo.ListByUser(context.Background(), "user-uuid-1", 10, -5)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
