package app

import (
	"io/ioutil"

	cid "github.com/ipfs/go-cid"
	multihash "github.com/multiformats/go-multihash"
	"github.com/pkg/errors"
)

// ContentID returns the version 1 content identifier of given data, using
// the raw codec and a sha2-256 digest. The string form of the identifier is
// what accounts submit as the metadata of their classes and tokens.
func ContentID(data []byte) (cid.Cid, error) {
	hash, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, errors.Wrap(err, "cannot hash content")
	}
	return cid.NewCidV1(cid.Raw, hash), nil
}

// FileContentID returns the content identifier of the file at given path.
func FileContentID(path string) (cid.Cid, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return cid.Undef, errors.Wrapf(err, "cannot read %s", path)
	}
	return ContentID(data)
}
