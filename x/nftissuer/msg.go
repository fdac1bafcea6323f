package nftissuer

import (
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/migration"
	"github.com/iov-one/weave/orm"
)

func init() {
	migration.MustRegister(1, &CreateNftMsg{}, migration.NoModification)
	migration.MustRegister(1, &MintNftMsg{}, migration.NoModification)
	migration.MustRegister(1, &BurnNftMsg{}, migration.NoModification)
	migration.MustRegister(1, &TransferNftMsg{}, migration.NoModification)
	migration.MustRegister(1, &DestroyClassMsg{}, migration.NoModification)
}

var _ weave.Msg = (*CreateNftMsg)(nil)

func (CreateNftMsg) Path() string {
	return "nftissuer/create_nft"
}

// Validate does not restrict the content identifier. Length limits are
// enforced by the nft configuration.
func (m *CreateNftMsg) Validate() error {
	return errors.AppendField(nil, "Metadata", m.Metadata.Validate())
}

var _ weave.Msg = (*MintNftMsg)(nil)

func (MintNftMsg) Path() string {
	return "nftissuer/mint_nft"
}

func (m *MintNftMsg) Validate() error {
	return errors.AppendField(nil, "Metadata", m.Metadata.Validate())
}

var _ weave.Msg = (*BurnNftMsg)(nil)

func (BurnNftMsg) Path() string {
	return "nftissuer/burn_nft"
}

func (m *BurnNftMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "ClassID", orm.ValidateSequence(m.ClassID))
	return errs
}

var _ weave.Msg = (*TransferNftMsg)(nil)

func (TransferNftMsg) Path() string {
	return "nftissuer/transfer_nft"
}

func (m *TransferNftMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	errs = errors.AppendField(errs, "ClassID", orm.ValidateSequence(m.ClassID))
	return errs
}

var _ weave.Msg = (*DestroyClassMsg)(nil)

func (DestroyClassMsg) Path() string {
	return "nftissuer/destroy_class"
}

func (m *DestroyClassMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "ClassID", orm.ValidateSequence(m.ClassID))
	return errs
}
