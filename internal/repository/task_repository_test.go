package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB wires GORM's postgres dialect onto a sqlmock connection so the
// emitted SQL can be asserted without a live database.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestGormTaskRepository_List_ScopesByOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "tasks" WHERE user_id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE user_id = \$1 ORDER BY created_at DESC`).
		WithArgs(int64(7), int64(10)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "title", "description", "status", "priority", "due_date", "user_id", "created_at", "updated_at"},
		).AddRow(1, "Write spec", "", "pending", "medium", nil, 7, time.Now(), time.Now()))

	tasks, total, err := repo.List(TaskFilter{OwnerID: 7, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, tasks, 1)
	require.Equal(t, "Write spec", tasks[0].Title)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_List_EscapesSearchWildcards(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	// "%" and "_" in the search text must reach the database escaped so they
	// match literally instead of acting as LIKE wildcards.
	pattern := `%50\%\_off%`

	mock.ExpectQuery(`SELECT count\(\*\) FROM "tasks" WHERE user_id = \$1 AND \(LOWER\(title\) LIKE \$2 ESCAPE '\\' OR LOWER\(description\) LIKE \$3 ESCAPE '\\'\)`).
		WithArgs(int64(7), pattern, pattern).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE user_id = \$1 AND \(LOWER\(title\) LIKE \$2 ESCAPE '\\' OR LOWER\(description\) LIKE \$3 ESCAPE '\\'\) ORDER BY created_at DESC`).
		WithArgs(int64(7), pattern, pattern, int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	tasks, total, err := repo.List(TaskFilter{OwnerID: 7, Search: "50%_off", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, tasks)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_Delete_NotOwned(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tasks" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(3), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(3, 9)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
