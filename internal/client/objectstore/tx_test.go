package objectstore

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockTx(t *testing.T) (*Tx, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return newTx(db), mock
}

func TestTx_PutError(t *testing.T) {
	tx, mock := newMockTx(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO objects")).
		WithArgs("widget", "1", []byte(`{}`)).
		WillReturnError(errors.New("disk full"))

	err := tx.Put(context.Background(), "widget", "1", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "put widget/1")
	assert.Empty(t, tx.Buckets())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_DeleteTracksTouchedBuckets(t *testing.T) {
	tx, mock := newMockTx(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM objects WHERE bucket = ? AND key = ?")).
		WithArgs("widget", "1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM objects WHERE bucket = ? AND key = ?")).
		WithArgs("gadget", "1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := tx.Delete(context.Background(), "widget", "1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = tx.Delete(context.Background(), "gadget", "1")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, []string{"widget"}, tx.Buckets())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_DeleteRowsAffectedError(t *testing.T) {
	tx, mock := newMockTx(t)
	mock.ExpectExec("DELETE FROM objects").
		WillReturnResult(sqlmock.NewErrorResult(errors.New("no count")))

	_, err := tx.Delete(context.Background(), "widget", "1")
	assert.Error(t, err)
}

func TestTx_ScanError(t *testing.T) {
	tx, mock := newMockTx(t)
	mock.ExpectQuery("SELECT key, data FROM objects").
		WithArgs("widget").
		WillReturnError(errors.New("locked"))

	_, err := GetAll[widget](context.Background(), tx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan widget")
}

func TestTx_DecodeError(t *testing.T) {
	tx, mock := newMockTx(t)
	mock.ExpectQuery("SELECT data FROM objects").
		WithArgs("widget", "1").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte("{broken")))

	_, err := Get[widget](context.Background(), tx, "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode widget/1")
}

func TestTx_Meta(t *testing.T) {
	tx, mock := newMockTx(t)
	mock.ExpectQuery("SELECT value FROM meta").
		WithArgs("schema_version").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	mock.ExpectExec("INSERT INTO meta").
		WithArgs("schema_version", "52").
		WillReturnError(errors.New("readonly"))

	_, ok, err := tx.Meta(context.Background(), "schema_version")
	require.NoError(t, err)
	assert.False(t, ok)

	err = tx.SetMeta(context.Background(), "schema_version", "52")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "set meta[schema_version]")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertAll_StopsAtFirstError(t *testing.T) {
	tx, mock := newMockTx(t)
	mock.ExpectExec("INSERT INTO objects").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO objects").WillReturnError(errors.New("constraint"))

	err := UpsertAll(context.Background(), tx, []widget{{ID: "1"}, {ID: "2"}, {ID: "3"}})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
