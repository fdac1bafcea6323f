package nft

import (
	"testing"

	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/gconf"
	"github.com/iov-one/weave/migration"
	"github.com/iov-one/weave/store"
	"github.com/iov-one/weave/weavetest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestController(t *testing.T) {
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()

	Convey("Given a class created by alice", t, func() {
		db := store.MemStore()
		migration.MustInitPkg(db, "nft")
		ctrl := NewController()

		classID, err := ctrl.CreateClass(db, alice, []byte("bafkreiclass"), []byte("class data"))
		So(err, ShouldBeNil)
		So(classID, ShouldResemble, weavetest.SequenceID(1))

		class, err := ctrl.Class(db, classID)
		So(err, ShouldBeNil)
		So(class.Owner, ShouldResemble, alice)
		So(class.ClassMetadata, ShouldResemble, []byte("bafkreiclass"))
		So(class.TotalIssuance, ShouldEqual, 0)

		Convey("Another class gets the next ID", func() {
			other, err := ctrl.CreateClass(db, bob, nil, nil)
			So(err, ShouldBeNil)
			So(other, ShouldResemble, weavetest.SequenceID(2))

			var owned []Class
			_, err = NewClassBucket().ByIndex(db, "owner", alice, &owned)
			So(err, ShouldBeNil)
			So(owned, ShouldHaveLength, 1)
		})

		Convey("Minting allocates sequential token IDs", func() {
			first, err := ctrl.Mint(db, alice, classID, []byte("bafkreitoken"), nil)
			So(err, ShouldBeNil)
			So(first, ShouldEqual, 0)
			second, err := ctrl.Mint(db, alice, classID, []byte("bafkreitoken"), []byte("x"))
			So(err, ShouldBeNil)
			So(second, ShouldEqual, 1)

			class, err := ctrl.Class(db, classID)
			So(err, ShouldBeNil)
			So(class.TotalIssuance, ShouldEqual, 2)
			So(class.NextTokenID, ShouldEqual, 2)

			token, err := ctrl.Token(db, classID, second)
			So(err, ShouldBeNil)
			So(token.Owner, ShouldResemble, alice)
			So(token.TokenMetadata, ShouldResemble, []byte("bafkreitoken"))
			So(token.Data, ShouldResemble, []byte("x"))

			Convey("Burning a token releases its issuance but not its ID", func() {
				So(ctrl.Burn(db, alice, classID, first), ShouldBeNil)

				_, err := ctrl.Token(db, classID, first)
				So(ErrTokenNotFound.Is(err), ShouldBeTrue)

				class, err := ctrl.Class(db, classID)
				So(err, ShouldBeNil)
				So(class.TotalIssuance, ShouldEqual, 1)

				next, err := ctrl.Mint(db, alice, classID, nil, nil)
				So(err, ShouldBeNil)
				So(next, ShouldEqual, 2)
			})

			Convey("Only the token owner can burn", func() {
				err := ctrl.Burn(db, bob, classID, first)
				So(ErrNoPermission.Is(err), ShouldBeTrue)
			})

			Convey("Burning a missing token fails", func() {
				err := ctrl.Burn(db, alice, classID, 99)
				So(ErrTokenNotFound.Is(err), ShouldBeTrue)
			})

			Convey("Transfer changes the owner", func() {
				So(ctrl.Transfer(db, alice, bob, classID, first), ShouldBeNil)

				token, err := ctrl.Token(db, classID, first)
				So(err, ShouldBeNil)
				So(token.Owner, ShouldResemble, bob)

				var owned []Token
				_, err = NewTokenBucket().ByIndex(db, "owner", bob, &owned)
				So(err, ShouldBeNil)
				So(owned, ShouldHaveLength, 1)
				So(owned[0].TokenID, ShouldEqual, first)

				Convey("and the previous owner loses control", func() {
					err := ctrl.Transfer(db, alice, bob, classID, first)
					So(ErrNoPermission.Is(err), ShouldBeTrue)
					err = ctrl.Burn(db, alice, classID, first)
					So(ErrNoPermission.Is(err), ShouldBeTrue)
				})
			})

			Convey("Transfer to self is a no-op", func() {
				So(ctrl.Transfer(db, alice, alice, classID, first), ShouldBeNil)
				token, err := ctrl.Token(db, classID, first)
				So(err, ShouldBeNil)
				So(token.Owner, ShouldResemble, alice)
			})

			Convey("Transfer requires a valid destination", func() {
				err := ctrl.Transfer(db, alice, weave.Address("short"), classID, first)
				So(errors.ErrInput.Is(err), ShouldBeTrue)
			})

			Convey("A class with tokens cannot be destroyed", func() {
				err := ctrl.DestroyClass(db, alice, classID)
				So(ErrCannotDestroyClass.Is(err), ShouldBeTrue)

				Convey("until all of them are burned", func() {
					So(ctrl.Burn(db, alice, classID, first), ShouldBeNil)
					So(ctrl.Burn(db, alice, classID, second), ShouldBeNil)
					So(ctrl.DestroyClass(db, alice, classID), ShouldBeNil)

					_, err := ctrl.Class(db, classID)
					So(ErrClassNotFound.Is(err), ShouldBeTrue)
				})
			})
		})

		Convey("Only the class owner can destroy it", func() {
			err := ctrl.DestroyClass(db, bob, classID)
			So(ErrNoPermission.Is(err), ShouldBeTrue)
		})

		Convey("Minting into an unknown class fails", func() {
			_, err := ctrl.Mint(db, alice, weavetest.SequenceID(42), nil, nil)
			So(ErrClassNotFound.Is(err), ShouldBeTrue)
		})

		Convey("Metadata limits are enforced when configured", func() {
			conf := &Configuration{
				Metadata:         &weave.Metadata{Schema: 1},
				MaxClassMetadata: 4,
				MaxTokenMetadata: 2,
			}
			So(gconf.Save(db, "nft", conf), ShouldBeNil)

			_, err := ctrl.CreateClass(db, alice, []byte("12345"), nil)
			So(ErrMetadataTooLong.Is(err), ShouldBeTrue)
			_, err = ctrl.CreateClass(db, alice, []byte("1234"), nil)
			So(err, ShouldBeNil)

			_, err = ctrl.Mint(db, alice, classID, []byte("123"), nil)
			So(ErrMetadataTooLong.Is(err), ShouldBeTrue)
			_, err = ctrl.Mint(db, alice, classID, []byte("12"), nil)
			So(err, ShouldBeNil)
		})
	})
}

func TestTokenKey(t *testing.T) {
	classID := weavetest.SequenceID(7)
	key := TokenKey(classID, 258)
	want := append(append([]byte{}, classID...), 0, 0, 0, 0, 0, 0, 1, 2)
	if string(key) != string(want) {
		t.Fatalf("want %x, got %x", want, key)
	}
}
