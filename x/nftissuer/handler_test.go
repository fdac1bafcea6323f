package nftissuer

import (
	"context"
	"testing"

	"github.com/iov-one/nftd/x/nft"
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/app"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/migration"
	"github.com/iov-one/weave/store"
	"github.com/iov-one/weave/weavetest"
	"github.com/iov-one/weave/weavetest/assert"
	"github.com/tendermint/tendermint/libs/common"
)

func TestIssuerFlow(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()

	db := store.MemStore()
	migration.MustInitPkg(db, "nft", "nftissuer")
	ctrl := nft.NewController()

	rt := app.NewRouter()
	auth := &weavetest.CtxAuth{Key: "auth"}
	RegisterRoutes(rt, auth, ctrl)

	deliver := func(t testing.TB, signer weave.Condition, msg weave.Msg) (*weave.DeliverResult, error) {
		t.Helper()
		ctx := auth.SetConditions(context.Background(), signer)
		tx := &weavetest.Tx{Msg: msg}
		cache := db.CacheWrap()
		if _, err := rt.Check(ctx, cache, tx); err != nil {
			cache.Discard()
			return nil, err
		}
		cache.Discard()
		return rt.Deliver(ctx, db, tx)
	}

	_, err := deliver(t, alice, &MintNftMsg{Metadata: &weave.Metadata{Schema: 1}})
	if !errors.ErrNotFound.Is(err) {
		t.Fatalf("mint without a class: want not found, got %v", err)
	}

	res, err := deliver(t, alice, &CreateNftMsg{
		Metadata: &weave.Metadata{Schema: 1},
		CID:      []byte("bafkreifirst"),
		Data:     []byte("first class"),
	})
	assert.Nil(t, err)
	assert.Equal(t, weavetest.SequenceID(1), res.Data)
	assertTag(t, res.Tags, EventKey, EventTokenIssuedBy)
	assertTag(t, res.Tags, AccountKey, hexString(alice.Address()))

	res, err = deliver(t, alice, &CreateNftMsg{
		Metadata: &weave.Metadata{Schema: 1},
		CID:      []byte("bafkreisecond"),
	})
	assert.Nil(t, err)
	classID := res.Data
	assert.Equal(t, weavetest.SequenceID(2), classID)

	var issued IssuedClass
	assert.Nil(t, NewIssuedClassBucket().One(db, alice.Address(), &issued))
	assert.Equal(t, classID, issued.ClassID)
	var meta IssuedMetadata
	assert.Nil(t, NewIssuedMetadataBucket().One(db, alice.Address(), &meta))
	assert.Equal(t, []byte("bafkreisecond"), meta.CID)

	for want := uint64(0); want < 2; want++ {
		res, err = deliver(t, alice, &MintNftMsg{
			Metadata: &weave.Metadata{Schema: 1},
			Data:     []byte("token"),
		})
		assert.Nil(t, err)
		assert.Equal(t, nft.TokenKey(classID, want), res.Data)
		assertTag(t, res.Tags, EventKey, EventTokenMinted)

		token, err := ctrl.Token(db, classID, want)
		assert.Nil(t, err)
		assert.Equal(t, []byte("bafkreisecond"), token.TokenMetadata)
		assert.Equal(t, alice.Address(), token.Owner)
	}

	// Metadata is not consumed by minting.
	assert.Nil(t, NewIssuedMetadataBucket().One(db, alice.Address(), &meta))
	assert.Equal(t, []byte("bafkreisecond"), meta.CID)

	_, err = deliver(t, bob, &BurnNftMsg{
		Metadata: &weave.Metadata{Schema: 1},
		ClassID:  classID,
		TokenID:  0,
	})
	if !nft.ErrNoPermission.Is(err) {
		t.Fatalf("burn by a stranger: want no permission, got %v", err)
	}

	res, err = deliver(t, alice, &TransferNftMsg{
		Metadata:    &weave.Metadata{Schema: 1},
		Destination: bob.Address(),
		ClassID:     classID,
		TokenID:     0,
	})
	assert.Nil(t, err)
	assertTag(t, res.Tags, EventKey, EventTokenTransferred)
	assertTag(t, res.Tags, DestinationKey, hexString(bob.Address()))

	res, err = deliver(t, bob, &BurnNftMsg{
		Metadata: &weave.Metadata{Schema: 1},
		ClassID:  classID,
		TokenID:  0,
	})
	assert.Nil(t, err)
	assertTag(t, res.Tags, EventKey, EventBurnedToken)
	assertTag(t, res.Tags, TokenKey, "0")

	_, err = deliver(t, alice, &BurnNftMsg{
		Metadata: &weave.Metadata{Schema: 1},
		ClassID:  classID,
		TokenID:  0,
	})
	if !nft.ErrTokenNotFound.Is(err) {
		t.Fatalf("burn of a burned token: want not found, got %v", err)
	}

	class, err := ctrl.Class(db, classID)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), class.TotalIssuance)
}

func TestHandlersRequireSigner(t *testing.T) {
	msgs := map[string]weave.Msg{
		"create": &CreateNftMsg{Metadata: &weave.Metadata{Schema: 1}},
		"mint":   &MintNftMsg{Metadata: &weave.Metadata{Schema: 1}},
		"burn": &BurnNftMsg{
			Metadata: &weave.Metadata{Schema: 1},
			ClassID:  weavetest.SequenceID(1),
		},
		"transfer": &TransferNftMsg{
			Metadata:    &weave.Metadata{Schema: 1},
			Destination: weavetest.NewCondition().Address(),
			ClassID:     weavetest.SequenceID(1),
		},
		"destroy": &DestroyClassMsg{
			Metadata: &weave.Metadata{Schema: 1},
			ClassID:  weavetest.SequenceID(1),
		},
	}
	for testName, msg := range msgs {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			migration.MustInitPkg(db, "nft", "nftissuer")

			rt := app.NewRouter()
			RegisterRoutes(rt, &weavetest.Auth{}, nft.NewController())

			tx := &weavetest.Tx{Msg: msg}
			if _, err := rt.Check(context.TODO(), db.CacheWrap(), tx); !errors.ErrUnauthorized.Is(err) {
				t.Fatalf("unexpected check error: %v", err)
			}
			if _, err := rt.Deliver(context.TODO(), db, tx); !errors.ErrUnauthorized.Is(err) {
				t.Fatalf("unexpected deliver error: %v", err)
			}
		})
	}
}

func TestCreateFailureStoresNothing(t *testing.T) {
	alice := weavetest.NewCondition()
	db := store.MemStore()
	migration.MustInitPkg(db, "nft", "nftissuer")

	rt := app.NewRouter()
	ctrl := &failingController{err: errors.Wrap(errors.ErrState, "library failure")}
	RegisterRoutes(rt, &weavetest.Auth{Signer: alice}, ctrl)

	tx := &weavetest.Tx{Msg: &CreateNftMsg{
		Metadata: &weave.Metadata{Schema: 1},
		CID:      []byte("bafkrei"),
	}}
	if _, err := rt.Deliver(context.TODO(), db, tx); !errors.ErrState.Is(err) {
		t.Fatalf("want library error, got %v", err)
	}

	var issued IssuedClass
	err := NewIssuedClassBucket().One(db, alice.Address(), &issued)
	if !errors.ErrNotFound.Is(err) {
		t.Fatalf("issued class must not be stored: %v", err)
	}
}

func TestDestroyClass(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()

	db := store.MemStore()
	migration.MustInitPkg(db, "nft", "nftissuer")
	ctrl := nft.NewController()

	rt := app.NewRouter()
	auth := &weavetest.CtxAuth{Key: "auth"}
	RegisterRoutes(rt, auth, ctrl)

	deliver := func(signer weave.Condition, msg weave.Msg) (*weave.DeliverResult, error) {
		ctx := auth.SetConditions(context.Background(), signer)
		return rt.Deliver(ctx, db, &weavetest.Tx{Msg: msg})
	}

	res, err := deliver(alice, &CreateNftMsg{Metadata: &weave.Metadata{Schema: 1}, CID: []byte("bafkrei")})
	assert.Nil(t, err)
	classID := res.Data
	_, err = deliver(alice, &MintNftMsg{Metadata: &weave.Metadata{Schema: 1}})
	assert.Nil(t, err)

	destroy := &DestroyClassMsg{Metadata: &weave.Metadata{Schema: 1}, ClassID: classID}

	_, err = deliver(bob, destroy)
	assert.IsErr(t, nft.ErrNoPermission, err)

	_, err = deliver(alice, destroy)
	assert.IsErr(t, nft.ErrCannotDestroyClass, err)

	_, err = deliver(alice, &BurnNftMsg{Metadata: &weave.Metadata{Schema: 1}, ClassID: classID, TokenID: 0})
	assert.Nil(t, err)

	res, err = deliver(alice, destroy)
	assert.Nil(t, err)
	assertTag(t, res.Tags, EventKey, EventClassDestroyed)
	assertTag(t, res.Tags, ClassKey, hexString(classID))

	_, err = ctrl.Class(db, classID)
	assert.IsErr(t, nft.ErrClassNotFound, err)

	// The destroyed class is no longer used for minting.
	var issued IssuedClass
	err = NewIssuedClassBucket().One(db, alice.Address(), &issued)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = deliver(alice, &MintNftMsg{Metadata: &weave.Metadata{Schema: 1}})
	assert.IsErr(t, errors.ErrNotFound, err)
}

type failingController struct {
	err error
}

var _ Controller = (*failingController)(nil)

func (c *failingController) CreateClass(weave.KVStore, weave.Address, []byte, []byte) ([]byte, error) {
	return nil, c.err
}

func (c *failingController) Mint(weave.KVStore, weave.Address, []byte, []byte, []byte) (uint64, error) {
	return 0, c.err
}

func (c *failingController) Transfer(weave.KVStore, weave.Address, weave.Address, []byte, uint64) error {
	return c.err
}

func (c *failingController) Burn(weave.KVStore, weave.Address, []byte, uint64) error {
	return c.err
}

func (c *failingController) DestroyClass(weave.KVStore, weave.Address, []byte) error {
	return c.err
}

func assertTag(t testing.TB, tags []common.KVPair, key, value string) {
	t.Helper()
	for _, tag := range tags {
		if string(tag.Key) == key {
			if string(tag.Value) != value {
				t.Fatalf("tag %q: want %q, got %q", key, value, tag.Value)
			}
			return
		}
	}
	t.Fatalf("tag %q not found in %v", key, tags)
}
