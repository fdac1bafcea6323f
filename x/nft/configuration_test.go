package nft

import (
	"context"
	"testing"

	"github.com/iov-one/weave"
	"github.com/iov-one/weave/app"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/gconf"
	"github.com/iov-one/weave/migration"
	"github.com/iov-one/weave/store"
	"github.com/iov-one/weave/weavetest"
	"github.com/iov-one/weave/weavetest/assert"
)

func TestConfigurationHandler(t *testing.T) {
	owner := weavetest.NewCondition()
	other := weavetest.NewCondition()

	cases := map[string]struct {
		init     Configuration
		auth     weave.Condition
		update   UpdateConfigurationMsg
		wantErr  *errors.Error
		expected Configuration
	}{
		"set all fields": {
			init: Configuration{
				Metadata:         &weave.Metadata{Schema: 1},
				Owner:            owner.Address(),
				MaxClassMetadata: 10,
				MaxTokenMetadata: 20,
			},
			auth: owner,
			update: UpdateConfigurationMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Patch: &Configuration{
					Owner:            other.Address(),
					MaxClassMetadata: 30,
					MaxTokenMetadata: 40,
				},
			},
			expected: Configuration{
				Metadata:         &weave.Metadata{Schema: 1},
				Owner:            other.Address(),
				MaxClassMetadata: 30,
				MaxTokenMetadata: 40,
			},
		},
		"some empty fields": {
			init: Configuration{
				Metadata:         &weave.Metadata{Schema: 1},
				Owner:            owner.Address(),
				MaxClassMetadata: 10,
				MaxTokenMetadata: 20,
			},
			auth: owner,
			update: UpdateConfigurationMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Patch: &Configuration{
					MaxTokenMetadata: 5,
				},
			},
			expected: Configuration{
				Metadata:         &weave.Metadata{Schema: 1},
				Owner:            owner.Address(),
				MaxClassMetadata: 10,
				// only change one field
				MaxTokenMetadata: 5,
			},
		},
		"only the owner can update": {
			init: Configuration{
				Metadata:         &weave.Metadata{Schema: 1},
				Owner:            owner.Address(),
				MaxClassMetadata: 10,
			},
			auth: other,
			update: UpdateConfigurationMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Patch:    &Configuration{MaxClassMetadata: 99},
			},
			wantErr: errors.ErrUnauthorized,
			expected: Configuration{
				Metadata:         &weave.Metadata{Schema: 1},
				Owner:            owner.Address(),
				MaxClassMetadata: 10,
			},
		},
		"configuration without an owner cannot be updated": {
			init: Configuration{
				Metadata:         &weave.Metadata{Schema: 1},
				MaxClassMetadata: 10,
			},
			auth: owner,
			update: UpdateConfigurationMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Patch:    &Configuration{MaxClassMetadata: 99},
			},
			wantErr: errors.ErrUnauthorized,
			expected: Configuration{
				Metadata:         &weave.Metadata{Schema: 1},
				MaxClassMetadata: 10,
			},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			migration.MustInitPkg(db, "nft")

			rt := app.NewRouter()
			RegisterRoutes(rt, &weavetest.Auth{Signer: tc.auth})

			assert.Nil(t, gconf.Save(db, "nft", &tc.init))

			tx := &weavetest.Tx{Msg: &tc.update}
			cache := db.CacheWrap()
			if _, err := rt.Check(context.TODO(), cache, tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			cache.Discard()
			if _, err := rt.Deliver(context.TODO(), db, tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			var final Configuration
			assert.Nil(t, gconf.Load(db, "nft", &final))
			assert.Equal(t, tc.expected, final)
		})
	}
}

func TestUpdatedLimitsApplyToMint(t *testing.T) {
	owner := weavetest.NewCondition()
	db := store.MemStore()
	migration.MustInitPkg(db, "nft")

	conf := Configuration{
		Metadata: &weave.Metadata{Schema: 1},
		Owner:    owner.Address(),
	}
	assert.Nil(t, gconf.Save(db, "nft", &conf))

	ctrl := NewController()
	classID, err := ctrl.CreateClass(db, owner.Address(), nil, nil)
	assert.Nil(t, err)
	_, err = ctrl.Mint(db, owner.Address(), classID, []byte("12345"), nil)
	assert.Nil(t, err)

	rt := app.NewRouter()
	RegisterRoutes(rt, &weavetest.Auth{Signer: owner})
	msg := &UpdateConfigurationMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Patch:    &Configuration{MaxTokenMetadata: 4},
	}
	_, err = rt.Deliver(context.TODO(), db, &weavetest.Tx{Msg: msg})
	assert.Nil(t, err)

	_, err = ctrl.Mint(db, owner.Address(), classID, []byte("12345"), nil)
	assert.IsErr(t, ErrMetadataTooLong, err)
}

func TestUpdateConfigurationMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg     *UpdateConfigurationMsg
		wantErr *errors.Error
	}{
		"valid patch": {
			msg: &UpdateConfigurationMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Patch:    &Configuration{MaxClassMetadata: 1},
			},
		},
		"missing patch": {
			msg:     &UpdateConfigurationMsg{Metadata: &weave.Metadata{Schema: 1}},
			wantErr: errors.ErrEmpty,
		},
		"invalid owner": {
			msg: &UpdateConfigurationMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Patch:    &Configuration{Owner: weave.Address("short")},
			},
			wantErr: errors.ErrInput,
		},
		"missing metadata": {
			msg: &UpdateConfigurationMsg{
				Patch: &Configuration{MaxClassMetadata: 1},
			},
			wantErr: errors.ErrMetadata,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if err := tc.msg.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}
