package nft

import (
	"encoding/binary"

	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/migration"
	"github.com/iov-one/weave/orm"
)

func init() {
	migration.MustRegister(1, &Class{}, migration.NoModification)
	migration.MustRegister(1, &Token{}, migration.NoModification)
}

var _ orm.Model = (*Class)(nil)

// Validate ensures the class is valid.
func (c *Class) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	if c.TotalIssuance > c.NextTokenID {
		errs = errors.AppendField(errs, "TotalIssuance",
			errors.Wrap(errors.ErrState, "more tokens than ever minted"))
	}
	return errs
}

// Copy returns a deep copy of this class.
func (c *Class) Copy() orm.CloneableData {
	return &Class{
		Metadata:      c.Metadata.Copy(),
		Owner:         c.Owner.Clone(),
		ClassMetadata: copyBytes(c.ClassMetadata),
		Data:          copyBytes(c.Data),
		TotalIssuance: c.TotalIssuance,
		NextTokenID:   c.NextTokenID,
	}
}

var _ orm.Model = (*Token)(nil)

// Validate ensures the token is valid.
func (t *Token) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", t.Metadata.Validate())
	errs = errors.AppendField(errs, "ClassID", orm.ValidateSequence(t.ClassID))
	errs = errors.AppendField(errs, "Owner", t.Owner.Validate())
	return errs
}

// Copy returns a deep copy of this token.
func (t *Token) Copy() orm.CloneableData {
	return &Token{
		Metadata:      t.Metadata.Copy(),
		ClassID:       copyBytes(t.ClassID),
		TokenID:       t.TokenID,
		Owner:         t.Owner.Clone(),
		TokenMetadata: copyBytes(t.TokenMetadata),
		Data:          copyBytes(t.Data),
	}
}

// Key returns the primary key of this token.
func (t *Token) Key() []byte {
	return TokenKey(t.ClassID, t.TokenID)
}

// TokenKey returns the primary key of a token. It is the class ID followed by
// the big endian encoded token ID, so that all tokens of a class are stored
// next to each other in minting order.
func TokenKey(classID []byte, tokenID uint64) []byte {
	key := make([]byte, len(classID)+8)
	copy(key, classID)
	binary.BigEndian.PutUint64(key[len(classID):], tokenID)
	return key
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}

var classSeq = orm.NewSequence("nftclass", "id")

// NewClassBucket returns a bucket for storing classes. Class IDs are
// allocated from a sequence.
func NewClassBucket() orm.ModelBucket {
	b := orm.NewModelBucket("nftclass", &Class{},
		orm.WithIDSequence(classSeq),
		orm.WithIndex("owner", classOwnerIndex, false),
	)
	return migration.NewModelBucket("nft", b)
}

func classOwnerIndex(obj orm.Object) ([]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	c, ok := obj.Value().(*Class)
	if !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "can only take index of Class, got %T", obj.Value())
	}
	return c.Owner, nil
}

// NewTokenBucket returns a bucket for storing tokens, indexed by owner and
// by class.
func NewTokenBucket() orm.ModelBucket {
	b := orm.NewModelBucket("nfttoken", &Token{},
		orm.WithIndex("owner", tokenOwnerIndex, false),
		orm.WithIndex("class", tokenClassIndex, false),
	)
	return migration.NewModelBucket("nft", b)
}

func asToken(obj orm.Object) (*Token, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	t, ok := obj.Value().(*Token)
	if !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "can only take index of Token, got %T", obj.Value())
	}
	return t, nil
}

func tokenOwnerIndex(obj orm.Object) ([]byte, error) {
	t, err := asToken(obj)
	if err != nil {
		return nil, err
	}
	return t.Owner, nil
}

func tokenClassIndex(obj orm.Object) ([]byte, error) {
	t, err := asToken(obj)
	if err != nil {
		return nil, err
	}
	return t.ClassID, nil
}

// RegisterQuery exposes classes and tokens under "/nft/classes" and
// "/nft/tokens". Indexes are available as subpaths, for example
// "/nft/tokens/owner".
func RegisterQuery(qr weave.QueryRouter) {
	NewClassBucket().Register("nft/classes", qr)
	NewTokenBucket().Register("nft/tokens", qr)
}
