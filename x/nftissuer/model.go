package nftissuer

import (
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/migration"
	"github.com/iov-one/weave/orm"
)

func init() {
	migration.MustRegister(1, &IssuedClass{}, migration.NoModification)
	migration.MustRegister(1, &IssuedMetadata{}, migration.NoModification)
}

var _ orm.Model = (*IssuedClass)(nil)

func (m *IssuedClass) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "ClassID", orm.ValidateSequence(m.ClassID))
	return errs
}

func (m *IssuedClass) Copy() orm.CloneableData {
	return &IssuedClass{
		Metadata: m.Metadata.Copy(),
		ClassID:  append([]byte(nil), m.ClassID...),
	}
}

// NewIssuedClassBucket returns a bucket that maps an account address to the
// class it created most recently.
func NewIssuedClassBucket() orm.ModelBucket {
	b := orm.NewModelBucket("issclass", &IssuedClass{})
	return migration.NewModelBucket("nftissuer", b)
}

var _ orm.Model = (*IssuedMetadata)(nil)

// Validate accepts an empty content identifier. Metadata is opaque and its
// shape is not enforced.
func (m *IssuedMetadata) Validate() error {
	return errors.AppendField(nil, "Metadata", m.Metadata.Validate())
}

func (m *IssuedMetadata) Copy() orm.CloneableData {
	return &IssuedMetadata{
		Metadata: m.Metadata.Copy(),
		CID:      append([]byte(nil), m.CID...),
	}
}

// NewIssuedMetadataBucket returns a bucket that maps an account address to
// the content identifier it supplied most recently.
func NewIssuedMetadataBucket() orm.ModelBucket {
	b := orm.NewModelBucket("issmeta", &IssuedMetadata{})
	return migration.NewModelBucket("nftissuer", b)
}

// RegisterQuery exposes the per account state under "/nftissuer/classes" and
// "/nftissuer/metadata". Both are keyed by the account address.
func RegisterQuery(qr weave.QueryRouter) {
	NewIssuedClassBucket().Register("nftissuer/classes", qr)
	NewIssuedMetadataBucket().Register("nftissuer/metadata", qr)
}
