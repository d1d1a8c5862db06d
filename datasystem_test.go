package datasystem

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/airdatahq/datasystem/app"
)

func newTestDatabase(t *testing.T) (*app.Database, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return &app.Database{DB: sqlx.NewDb(db, "sqlmock"), Logger: logrus.New()}, mock
}

func newTestSystem(t *testing.T) (*DataSystem, sqlmock.Sqlmock) {
	database, mock := newTestDatabase(t)

	ds := &DataSystem{
		App: &app.App{
			Database: database,
			Config:   &app.Config{},
			Logger:   database.Logger,
		},
	}

	ds.Authorizations = NewAuthorizations(ds)
	ds.Readings = NewReadings(ds)

	return ds, mock
}
