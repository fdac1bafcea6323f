package nft

import (
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/gconf"
)

const confPkg = "nft"

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	// Owner field is optional.
	if len(c.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	}
	return errs
}

// loadConfiguration returns the stored configuration. When none was saved, an
// empty configuration without any limits is returned.
func loadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, confPkg, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{Metadata: &weave.Metadata{Schema: 1}}, nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}

func (c *Configuration) checkClassMetadata(metadata []byte) error {
	if c.MaxClassMetadata != 0 && len(metadata) > int(c.MaxClassMetadata) {
		return errors.Wrapf(ErrMetadataTooLong, "class metadata is %d bytes, limit is %d", len(metadata), c.MaxClassMetadata)
	}
	return nil
}

func (c *Configuration) checkTokenMetadata(metadata []byte) error {
	if c.MaxTokenMetadata != 0 && len(metadata) > int(c.MaxTokenMetadata) {
		return errors.Wrapf(ErrMetadataTooLong, "token metadata is %d bytes, limit is %d", len(metadata), c.MaxTokenMetadata)
	}
	return nil
}
