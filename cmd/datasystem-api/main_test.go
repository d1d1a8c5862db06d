package main

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/airdatahq/datasystem"
	datasystem_app "github.com/airdatahq/datasystem/app"
)

const (
	checkQuery = "SELECT * FROM authorizations WHERE token = ? AND locked = ? AND flags & ? != 0"

	readToken  = "22222222-2222-2222-2222-222222222221"
	writeToken = "22222222-2222-2222-2222-222222222222"
)

//newTestApi points the package globals at a system backed by a mocked store so
//the handlers and the rpc service run without MySQL
func newTestApi(t *testing.T) sqlmock.Sqlmock {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	database := &datasystem_app.Database{DB: sqlx.NewDb(db, "sqlmock"), Logger: logrus.New()}

	ds := &datasystem.DataSystem{
		App: &datasystem_app.App{
			Database: database,
			Config:   &datasystem_app.Config{},
			Logger:   database.Logger,
		},
	}
	ds.Authorizations = datasystem.NewAuthorizations(ds)
	ds.Readings = datasystem.NewReadings(ds)

	app = ds
	lg = ds.Logger

	return mock
}

func expectAuthorized(mock sqlmock.Sqlmock, token string, flag datasystem.AuthorizeFlag) {
	mock.ExpectQuery(checkQuery).
		WithArgs(token, false, int64(flag)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "token", "locked", "flags", "created"}).
			AddRow(3, token, false, int64(flag), time.Now().UTC()))
}

func expectUnauthorized(mock sqlmock.Sqlmock, token string, flag datasystem.AuthorizeFlag) {
	mock.ExpectQuery(checkQuery).
		WithArgs(token, false, int64(flag)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "token", "locked", "flags", "created"}))
}

func countRows(count int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(count)
}

func readingRows(timestamps ...time.Time) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "timestamp", "device",
		"carbon_dioxide", "humidity", "light", "lpg", "motion", "smoke", "temperature",
		"additional_data", "authorization_id",
	})
	for i, ts := range timestamps {
		temperature := 20.5
		rows.AddRow(i+1, ts, "A9612CF6BB21", nil, nil, nil, nil, nil, nil, temperature, nil, 3)
	}

	return rows
}
