package nft

import (
	"github.com/iov-one/weave/errors"
)

// x/nft reserves 1200 ~ 1209.

var (
	ErrClassNotFound      = errors.Register(1200, "nft class not found")
	ErrTokenNotFound      = errors.Register(1201, "nft token not found")
	ErrNoPermission       = errors.Register(1202, "no permission")
	ErrCannotDestroyClass = errors.Register(1203, "cannot destroy class")
	ErrMetadataTooLong    = errors.Register(1204, "metadata too long")
)
