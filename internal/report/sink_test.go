package report

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"parkspot-backend/internal/model"
)

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// Any is a helper for sqlmock to match any argument.
type Any struct{}

// Match satisfies the sqlmock.Argument interface
func (a Any) Match(v driver.Value) bool {
	return true
}

func TestGormSink_Save(t *testing.T) {
	gormDB, mock := newTestDB(t)
	sink := NewGormSink(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "park_reports"`)).
		WithArgs("user-1", 41.0, 29.0, model.ReportTypeParked, "Moda Caddesi", Any{}).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectCommit()

	id, err := sink.Save(context.Background(), model.ParkReport{
		OwnerID:    "user-1",
		Latitude:   41.0,
		Longitude:  29.0,
		ReportType: model.ReportTypeParked,
		StreetName: "Moda Caddesi",
		CreatedAt:  time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormSink_SaveFailure(t *testing.T) {
	gormDB, mock := newTestDB(t)
	sink := NewGormSink(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "park_reports"`)).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := sink.Save(context.Background(), model.ParkReport{OwnerID: "user-1"})
	assert.ErrorIs(t, err, ErrStorage)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormSink_ListRecent(t *testing.T) {
	gormDB, mock := newTestDB(t)
	sink := NewGormSink(gormDB)

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "park_reports" ORDER BY created_at DESC LIMIT $1`)).
		WithArgs(100).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "latitude", "longitude", "report_type", "street_name", "created_at"}).
			AddRow(2, "user-2", 41.1, 29.1, model.ReportTypeWrongLocation, "", now).
			AddRow(1, "user-1", 41.0, 29.0, model.ReportTypeParked, "Moda Caddesi", now.Add(-time.Hour)))

	reports, err := sink.ListRecent(context.Background())
	require.NoError(t, err)

	require.Len(t, reports, 2)
	assert.Equal(t, "user-2", reports[0].OwnerID)
	assert.Equal(t, model.ReportTypeWrongLocation, reports[0].ReportType)

	assert.NoError(t, mock.ExpectationsWereMet())
}
