package nftissuer

import (
	"bytes"

	"github.com/iov-one/nftd/x/nft"
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/migration"
	"github.com/iov-one/weave/orm"
	"github.com/iov-one/weave/x"
)

const (
	baseCost  int64 = 1000
	writeCost int64 = 100

	// Each operation pays the base cost and a single write.
	operationCost = baseCost + writeCost
)

// Controller is the part of the nft library this extension forwards to.
type Controller interface {
	CreateClass(db weave.KVStore, owner weave.Address, metadata, data []byte) ([]byte, error)
	Mint(db weave.KVStore, owner weave.Address, classID []byte, metadata, data []byte) (uint64, error)
	Transfer(db weave.KVStore, from, to weave.Address, classID []byte, tokenID uint64) error
	Burn(db weave.KVStore, owner weave.Address, classID []byte, tokenID uint64) error
	DestroyClass(db weave.KVStore, owner weave.Address, classID []byte) error
}

var _ Controller = (nft.Controller)(nil)

// RegisterRoutes registers handlers for all messages of this package.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, ctrl Controller) {
	r = migration.SchemaMigratingRegistry("nftissuer", r)

	classes := NewIssuedClassBucket()
	metadata := NewIssuedMetadataBucket()
	r.Handle(&CreateNftMsg{}, &createNftHandler{auth: auth, ctrl: ctrl, classes: classes, metadata: metadata})
	r.Handle(&MintNftMsg{}, &mintNftHandler{auth: auth, ctrl: ctrl, classes: classes, metadata: metadata})
	r.Handle(&BurnNftMsg{}, &burnNftHandler{auth: auth, ctrl: ctrl})
	r.Handle(&TransferNftMsg{}, &transferNftHandler{auth: auth, ctrl: ctrl})
	r.Handle(&DestroyClassMsg{}, &destroyClassHandler{auth: auth, ctrl: ctrl, classes: classes})
}

// signer returns the address of the main signer of the transaction.
func signer(ctx weave.Context, auth x.Authenticator) (weave.Address, error) {
	cond := x.MainSigner(ctx, auth)
	if cond == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "message must be signed")
	}
	return cond.Address(), nil
}

type createNftHandler struct {
	auth     x.Authenticator
	ctrl     Controller
	classes  orm.ModelBucket
	metadata orm.ModelBucket
}

func (h *createNftHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: operationCost}, nil
}

// Deliver creates a new class and makes it, together with the given content
// identifier, the one used by the following mints of the signer. Previously
// stored values are overwritten.
func (h *createNftHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	classID, err := h.ctrl.CreateClass(db, owner, msg.CID, msg.Data)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create class")
	}

	issued := IssuedClass{
		Metadata: &weave.Metadata{Schema: 1},
		ClassID:  classID,
	}
	if _, err := h.classes.Put(db, owner, &issued); err != nil {
		return nil, errors.Wrap(err, "cannot store issued class")
	}
	meta := IssuedMetadata{
		Metadata: &weave.Metadata{Schema: 1},
		CID:      msg.CID,
	}
	if _, err := h.metadata.Put(db, owner, &meta); err != nil {
		return nil, errors.Wrap(err, "cannot store issued metadata")
	}

	weave.GetLogger(ctx).Debug("nft class issued", "owner", owner, "class", classID)
	return &weave.DeliverResult{
		Data: classID,
		Tags: tokenIssuedBy(owner, classID),
	}, nil
}

func (h *createNftHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*CreateNftMsg, weave.Address, error) {
	var msg CreateNftMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner, err := signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, owner, nil
}

type mintNftHandler struct {
	auth     x.Authenticator
	ctrl     Controller
	classes  orm.ModelBucket
	metadata orm.ModelBucket
}

func (h *mintNftHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: operationCost}, nil
}

// Deliver mints a token of the class most recently created by the signer.
// The stored content identifier is used as the token metadata and is kept
// for further mints.
func (h *mintNftHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	req, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	tokenID, err := h.ctrl.Mint(db, req.owner, req.classID, req.cid, req.msg.Data)
	if err != nil {
		return nil, errors.Wrap(err, "cannot mint token")
	}

	weave.GetLogger(ctx).Debug("nft token minted", "owner", req.owner, "class", req.classID, "token", tokenID)
	return &weave.DeliverResult{
		Data: nft.TokenKey(req.classID, tokenID),
		Tags: tokenMinted(req.owner, req.classID, tokenID),
	}, nil
}

type mintRequest struct {
	msg     *MintNftMsg
	owner   weave.Address
	classID []byte
	cid     []byte
}

func (h *mintNftHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*mintRequest, error) {
	var msg MintNftMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	owner, err := signer(ctx, h.auth)
	if err != nil {
		return nil, err
	}

	var issued IssuedClass
	if err := h.classes.One(db, owner, &issued); err != nil {
		return nil, errors.Wrap(err, "no issued class")
	}
	var meta IssuedMetadata
	if err := h.metadata.One(db, owner, &meta); err != nil {
		return nil, errors.Wrap(err, "no issued metadata")
	}
	return &mintRequest{
		msg:     &msg,
		owner:   owner,
		classID: issued.ClassID,
		cid:     meta.CID,
	}, nil
}

type burnNftHandler struct {
	auth x.Authenticator
	ctrl Controller
}

func (h *burnNftHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: operationCost}, nil
}

func (h *burnNftHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Burn(db, owner, msg.ClassID, msg.TokenID); err != nil {
		return nil, errors.Wrap(err, "cannot burn token")
	}

	weave.GetLogger(ctx).Debug("nft token burned", "owner", owner, "class", msg.ClassID, "token", msg.TokenID)
	return &weave.DeliverResult{
		Tags: burnedToken(owner, msg.ClassID, msg.TokenID),
	}, nil
}

func (h *burnNftHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*BurnNftMsg, weave.Address, error) {
	var msg BurnNftMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner, err := signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, owner, nil
}

type transferNftHandler struct {
	auth x.Authenticator
	ctrl Controller
}

func (h *transferNftHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: operationCost}, nil
}

func (h *transferNftHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Transfer(db, owner, msg.Destination, msg.ClassID, msg.TokenID); err != nil {
		return nil, errors.Wrap(err, "cannot transfer token")
	}

	weave.GetLogger(ctx).Debug("nft token transferred", "owner", owner, "destination", msg.Destination, "class", msg.ClassID, "token", msg.TokenID)
	return &weave.DeliverResult{
		Tags: tokenTransferred(owner, msg.Destination, msg.ClassID, msg.TokenID),
	}, nil
}

func (h *transferNftHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*TransferNftMsg, weave.Address, error) {
	var msg TransferNftMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner, err := signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, owner, nil
}

type destroyClassHandler struct {
	auth    x.Authenticator
	ctrl    Controller
	classes orm.ModelBucket
}

func (h *destroyClassHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: operationCost}, nil
}

// Deliver destroys the class. When it is the class the signer mints into,
// the pointer to it is removed as well, so that minting requires a new class.
func (h *destroyClassHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.DestroyClass(db, owner, msg.ClassID); err != nil {
		return nil, errors.Wrap(err, "cannot destroy class")
	}

	var issued IssuedClass
	switch err := h.classes.One(db, owner, &issued); {
	case err == nil:
		if bytes.Equal(issued.ClassID, msg.ClassID) {
			if err := h.classes.Delete(db, owner); err != nil {
				return nil, errors.Wrap(err, "cannot delete issued class")
			}
		}
	case errors.ErrNotFound.Is(err):
		// Classes created at genesis are not issued ones.
	default:
		return nil, errors.Wrap(err, "cannot load issued class")
	}

	weave.GetLogger(ctx).Debug("nft class destroyed", "owner", owner, "class", msg.ClassID)
	return &weave.DeliverResult{
		Tags: classDestroyed(owner, msg.ClassID),
	}, nil
}

func (h *destroyClassHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*DestroyClassMsg, weave.Address, error) {
	var msg DestroyClassMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner, err := signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, owner, nil
}
