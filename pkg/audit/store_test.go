package audit

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/permiso/pkg/permission"
)

func TestStoreSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStoreWithDB(db)

	mock.ExpectExec("INSERT INTO messages").
		WithArgs(
			FacilityAuthPriv,
			int(SeverityNotice),
			sqlmock.AnyArg(), // timestamp
			sqlmock.AnyArg(), // hostname
			"permiso",
			sqlmock.AnyArg(), // procid
			"grant",
			sqlmock.AnyArg(), // sdata json
			sqlmock.AnyArg(), // message
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = store.Save(GrantEvent{
		GrantedBy:   "admin",
		Scope:       "tenant t1 default",
		Permissions: permission.NewSet(permission.KindRead),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreDisabled(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)
	assert.Nil(t, store, "no audit database configured means no store")

	// A nil-db store silently drops events.
	s := &Store{}
	assert.NoError(t, s.Save(RevokeEvent{RevokedBy: "u1"}))
}
