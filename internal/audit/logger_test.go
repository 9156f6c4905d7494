package audit

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockLogger(t *testing.T) (*Logger, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return New(gdb), mock
}

func TestFilterNormalize(t *testing.T) {
	f := Filter{Page: -1, Limit: 1000}.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, DefaultPageSize, f.Limit)

	f = Filter{Page: 3, Limit: 10}.Normalize()
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 10, f.Limit)
}

func TestLogWritesRow(t *testing.T) {
	l, mock := newMockLogger(t)

	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err := l.Log(Event{
		ProviderID: 1,
		Action:     "appointment_created",
		Entity:     "appointment",
		Metadata:   map[string]any{"patient_id": 10},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListReturnsPage(t *testing.T) {
	l, mock := newMockLogger(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_logs" WHERE provider_id = \$1 AND action = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE provider_id = \$1 AND action = \$2 .*ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "provider_id", "action", "entity", "created_at"}).
			AddRow(5, 1, "appointment_created", "appointment", time.Now()).
			AddRow(4, 1, "appointment_created", "appointment", time.Now()))

	logs, total, err := l.List(context.Background(), 1, Filter{Action: "appointment_created"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, logs, 2)
	assert.Equal(t, uint(5), logs[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListSkipsSelectWhenEmpty(t *testing.T) {
	l, mock := newMockLogger(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	logs, total, err := l.List(context.Background(), 1, Filter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)
	assert.NoError(t, mock.ExpectationsWereMet())
}
