package nft

import (
	"math"

	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/orm"
)

// Controller manages classes and tokens. Callers are expected to authenticate
// the addresses they pass in.
type Controller interface {
	// CreateClass creates a new class owned by given address and returns
	// its ID.
	CreateClass(db weave.KVStore, owner weave.Address, metadata, data []byte) ([]byte, error)

	// Mint creates a new token of given class, owned by given address. It
	// returns the ID of the new token.
	Mint(db weave.KVStore, owner weave.Address, classID []byte, metadata, data []byte) (uint64, error)

	// Transfer moves the ownership of a token. Transfer to self is a no-op.
	Transfer(db weave.KVStore, from, to weave.Address, classID []byte, tokenID uint64) error

	// Burn removes a token. Only the token owner can burn it.
	Burn(db weave.KVStore, owner weave.Address, classID []byte, tokenID uint64) error

	// DestroyClass removes a class that has no tokens left. Only the class
	// owner can destroy it.
	DestroyClass(db weave.KVStore, owner weave.Address, classID []byte) error

	// Class returns the class with given ID.
	Class(db weave.ReadOnlyKVStore, classID []byte) (*Class, error)

	// Token returns the token with given class and token ID.
	Token(db weave.ReadOnlyKVStore, classID []byte, tokenID uint64) (*Token, error)
}

// NewController returns a bucket backed controller.
func NewController() *BucketController {
	return &BucketController{
		classes: NewClassBucket(),
		tokens:  NewTokenBucket(),
	}
}

// BucketController is the Controller implementation that keeps its state in
// orm buckets.
type BucketController struct {
	classes orm.ModelBucket
	tokens  orm.ModelBucket
}

var _ Controller = (*BucketController)(nil)

func (c *BucketController) CreateClass(db weave.KVStore, owner weave.Address, metadata, data []byte) ([]byte, error) {
	conf, err := loadConfiguration(db)
	if err != nil {
		return nil, err
	}
	if err := conf.checkClassMetadata(metadata); err != nil {
		return nil, err
	}
	class := &Class{
		Metadata:      &weave.Metadata{Schema: 1},
		Owner:         owner,
		ClassMetadata: metadata,
		Data:          data,
	}
	id, err := c.classes.Put(db, nil, class)
	if err != nil {
		return nil, errors.Wrap(err, "cannot store class")
	}
	return id, nil
}

func (c *BucketController) Mint(db weave.KVStore, owner weave.Address, classID []byte, metadata, data []byte) (uint64, error) {
	conf, err := loadConfiguration(db)
	if err != nil {
		return 0, err
	}
	if err := conf.checkTokenMetadata(metadata); err != nil {
		return 0, err
	}
	class, err := c.Class(db, classID)
	if err != nil {
		return 0, err
	}
	if class.NextTokenID == math.MaxUint64 {
		return 0, errors.Wrap(errors.ErrOverflow, "no token IDs available")
	}

	tokenID := class.NextTokenID
	token := &Token{
		Metadata:      &weave.Metadata{Schema: 1},
		ClassID:       classID,
		TokenID:       tokenID,
		Owner:         owner,
		TokenMetadata: metadata,
		Data:          data,
	}
	if _, err := c.tokens.Put(db, token.Key(), token); err != nil {
		return 0, errors.Wrap(err, "cannot store token")
	}

	class.NextTokenID++
	class.TotalIssuance++
	if _, err := c.classes.Put(db, classID, class); err != nil {
		return 0, errors.Wrap(err, "cannot store class")
	}
	return tokenID, nil
}

func (c *BucketController) Transfer(db weave.KVStore, from, to weave.Address, classID []byte, tokenID uint64) error {
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	token, err := c.Token(db, classID, tokenID)
	if err != nil {
		return err
	}
	if !token.Owner.Equals(from) {
		return errors.Wrap(ErrNoPermission, "not the token owner")
	}
	if from.Equals(to) {
		return nil
	}
	token.Owner = to
	if _, err := c.tokens.Put(db, token.Key(), token); err != nil {
		return errors.Wrap(err, "cannot store token")
	}
	return nil
}

func (c *BucketController) Burn(db weave.KVStore, owner weave.Address, classID []byte, tokenID uint64) error {
	token, err := c.Token(db, classID, tokenID)
	if err != nil {
		return err
	}
	if !token.Owner.Equals(owner) {
		return errors.Wrap(ErrNoPermission, "not the token owner")
	}
	class, err := c.Class(db, classID)
	if err != nil {
		return err
	}
	if class.TotalIssuance == 0 {
		return errors.Wrap(errors.ErrOverflow, "class issuance underflow")
	}
	class.TotalIssuance--
	if _, err := c.classes.Put(db, classID, class); err != nil {
		return errors.Wrap(err, "cannot store class")
	}
	if err := c.tokens.Delete(db, token.Key()); err != nil {
		return errors.Wrap(err, "cannot delete token")
	}
	return nil
}

func (c *BucketController) DestroyClass(db weave.KVStore, owner weave.Address, classID []byte) error {
	class, err := c.Class(db, classID)
	if err != nil {
		return err
	}
	if !class.Owner.Equals(owner) {
		return errors.Wrap(ErrNoPermission, "not the class owner")
	}
	if class.TotalIssuance != 0 {
		return errors.Wrapf(ErrCannotDestroyClass, "%d tokens issued", class.TotalIssuance)
	}
	if err := c.classes.Delete(db, classID); err != nil {
		return errors.Wrap(err, "cannot delete class")
	}
	return nil
}

func (c *BucketController) Class(db weave.ReadOnlyKVStore, classID []byte) (*Class, error) {
	var class Class
	switch err := c.classes.One(db, classID, &class); {
	case err == nil:
		return &class, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrClassNotFound, "class %x", classID)
	default:
		return nil, errors.Wrap(err, "cannot load class")
	}
}

func (c *BucketController) Token(db weave.ReadOnlyKVStore, classID []byte, tokenID uint64) (*Token, error) {
	var token Token
	switch err := c.tokens.One(db, TokenKey(classID, tokenID), &token); {
	case err == nil:
		return &token, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrTokenNotFound, "token %d of class %x", tokenID, classID)
	default:
		return nil, errors.Wrap(err, "cannot load token")
	}
}
