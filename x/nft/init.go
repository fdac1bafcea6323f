package nft

import (
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/gconf"
)

// Initializer fulfils the Initializer interface to load classes, tokens and
// configuration from the genesis file.
type Initializer struct{}

var _ weave.Initializer = (*Initializer)(nil)

// FromGenesis stores the configuration found under "conf.nft" if any, then
// creates every class listed under "nft.classes" together with its tokens.
// Classes receive sequential IDs in the order they are listed.
func (*Initializer) FromGenesis(opts weave.Options, params weave.GenesisParams, kv weave.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(kv, opts, confPkg, &conf); err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "init config")
	}

	type genesisToken struct {
		Owner    weave.Address `json:"owner"`
		Metadata string        `json:"metadata"`
		Data     string        `json:"data"`
	}
	type genesisClass struct {
		Owner    weave.Address  `json:"owner"`
		Metadata string         `json:"metadata"`
		Data     string         `json:"data"`
		Tokens   []genesisToken `json:"tokens"`
	}
	var state struct {
		Classes []genesisClass `json:"classes"`
	}
	if err := opts.ReadOptions("nft", &state); err != nil {
		return errors.Wrap(err, "cannot load nft state")
	}

	ctrl := NewController()
	for i, c := range state.Classes {
		if err := c.Owner.Validate(); err != nil {
			return errors.Wrapf(err, "class #%d owner", i)
		}
		classID, err := ctrl.CreateClass(kv, c.Owner, []byte(c.Metadata), []byte(c.Data))
		if err != nil {
			return errors.Wrapf(err, "cannot create class #%d", i)
		}
		for j, t := range c.Tokens {
			if err := t.Owner.Validate(); err != nil {
				return errors.Wrapf(err, "class #%d token #%d owner", i, j)
			}
			if _, err := ctrl.Mint(kv, t.Owner, classID, []byte(t.Metadata), []byte(t.Data)); err != nil {
				return errors.Wrapf(err, "cannot mint class #%d token #%d", i, j)
			}
		}
	}
	return nil
}
