package checks

import (
	"testing"

	"puzzle-leaderboard/core/database"
	"puzzle-leaderboard/feature/leaderboard/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func setupSQLite(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	return db
}

func TestCheckSchema_NilDB(t *testing.T) {
	report, err := CheckSchema(nil, models.ResultRow{})
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchema_MigratedSQLite(t *testing.T) {
	db := setupSQLite(t)
	require.NoError(t, db.AutoMigrate(&models.ResultRow{}))

	report, err := CheckSchema(db, models.ResultRow{})
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Equal(t, "sqlite", report.Driver)
	assert.Equal(t, "ok", report.Tables["results"].Status)
}

func TestCheckSchema_MissingTable(t *testing.T) {
	report, err := CheckSchema(setupSQLite(t), models.ResultRow{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, "missing", report.Tables["results"].Status)
}

func TestCheckSchema_DriftedTable(t *testing.T) {
	db := setupSQLite(t)
	require.NoError(t, db.Exec("CREATE TABLE results (date TEXT, name TEXT PRIMARY KEY)").Error)

	report, err := CheckSchema(db, models.ResultRow{})
	require.NoError(t, err)
	assert.False(t, report.Matched)

	tbl := report.Tables["results"]
	assert.Equal(t, "error", tbl.Status)
	assert.Equal(t, []string{"time"}, tbl.MissingColumns)
	assert.Len(t, tbl.TypeMismatches, 2)
	assert.Equal(t, []string{"date: expected to be part of the primary key"}, tbl.KeyMismatches)
}

func TestCheckSchema_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
	rows.AddRow("date", "date", "NO", "PRI", nil, "")
	rows.AddRow("name", "varchar(191)", "NO", "PRI", nil, "")
	rows.AddRow("time", "bigint(20)", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `results`").WillReturnRows(rows)

	report, err := CheckSchema(db, models.ResultRow{})
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Equal(t, "mysql", report.Driver)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckSchema_MySQLError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SHOW COLUMNS").WillReturnError(assert.AnError)

	report, err := CheckSchema(db, models.ResultRow{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Len(t, report.Errors, 1)
}
