package app

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/nftd/x/nft"
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/app"
	"github.com/iov-one/weave/commands/server"
	"github.com/iov-one/weave/crypto"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/migration"
	"github.com/iov-one/weave/x/cash"
	abci "github.com/tendermint/tendermint/abci/types"
)

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode. The account also owns an empty nft class.
//
// Optional arguments are the ticker of the genesis coins and the address of
// the account.
func GenInitOptions(args []string) (json.RawMessage, error) {
	ticker := "NFT"
	if len(args) > 0 {
		ticker = args[0]
	}

	var addr string
	if len(args) > 1 {
		addr = args[1]
	} else {
		// if no address provided, auto-generate one
		bz, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addr = bz.String()
	}

	type (
		dict  map[string]interface{}
		array []interface{}
	)
	collector, err := hex.DecodeString("3b11c732b8fc1f09beb34031302fe2ab347c5c14")
	if err != nil {
		return nil, errors.Wrap(err, "cannot hex decode collector address")
	}
	return json.Marshal(dict{
		"cash": array{
			dict{
				"address": addr,
				"coins": array{
					dict{
						"whole":  123456789,
						"ticker": ticker,
					},
				},
			},
		},
		"conf": dict{
			"cash": dict{
				"metadata":          dict{"schema": 1},
				"collector_address": weave.Address(collector).String(),
			},
			"nft": dict{
				"metadata":           dict{"schema": 1},
				"max_class_metadata": 256,
				"max_token_metadata": 256,
				"owner":              addr,
			},
			"migration": dict{
				"admin": addr,
			},
		},
		"nft": dict{
			"classes": array{
				dict{
					"owner":    addr,
					"metadata": "genesis",
				},
			},
		},
		"initialize_schema": []dict{
			{"pkg": "cash", "ver": 1},
			{"pkg": "sigs", "ver": 1},
			{"pkg": "utils", "ver": 1},
			{"pkg": "migration", "ver": 1},
			{"pkg": "nft", "ver": 1},
			{"pkg": "nftissuer", "ver": 1},
		},
	})
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(options *server.Options) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if options.Home != "" {
		dbPath = filepath.Join(options.Home, "abci.db")
	}

	stack := Stack(options.MinFee)
	application, err := Application("nftd", stack, TxDecoder, dbPath, options.Debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(Initializers())

	// set the logger and return
	application.WithLogger(options.Logger)
	return application, nil
}

// Initializers returns the genesis loaders of all packages that keep state.
// The migration initializer must run first so that the schema of the other
// packages is known when they store their genesis entities.
func Initializers() weave.Initializer {
	return app.ChainInitializers(
		&migration.Initializer{},
		&cash.Initializer{},
		&nft.Initializer{},
	)
}

// GenerateCoinKey returns the address of a newly generated public key and
// prints the private key, so that it can be used to access the coins given
// to that address.
func GenerateCoinKey() (weave.Address, error) {
	privKey := crypto.GenPrivKeyEd25519()
	raw, err := privKey.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "cannot serialize private key")
	}
	fmt.Printf("private key: %X\n", raw)
	return privKey.PublicKey().Address(), nil
}
