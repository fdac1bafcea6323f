package app

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/nftd/x/nft"
	"github.com/iov-one/nftd/x/nftissuer"
	"github.com/iov-one/weave"
	weaveApp "github.com/iov-one/weave/app"
	"github.com/iov-one/weave/coin"
	"github.com/iov-one/weave/crypto"
	"github.com/iov-one/weave/weavetest"
	"github.com/iov-one/weave/x/sigs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const chainID = "nftd-test"

type testApp struct {
	t      *testing.T
	app    weaveApp.BaseApp
	height int64
}

func newTestApp(t *testing.T, owner weave.Address) *testApp {
	t.Helper()

	raw, err := GenInitOptions([]string{"ETH", owner.String()})
	require.NoError(t, err)

	myApp, err := Application("nftd-test", Stack(coin.Coin{}), TxDecoder, "", true)
	require.NoError(t, err)
	myApp.WithInit(Initializers())
	myApp.WithLogger(log.NewNopLogger())

	myApp.InitChain(abci.RequestInitChain{AppStateBytes: raw, ChainId: chainID})
	ta := &testApp{t: t, app: myApp}
	ta.commit()
	return ta
}

func (ta *testApp) beginBlock() {
	ta.height++
	header := abci.Header{Height: ta.height, Time: time.Now()}
	ta.app.BeginBlock(abci.RequestBeginBlock{Header: header})
}

func (ta *testApp) commit() {
	if ta.height == 0 {
		ta.beginBlock()
	}
	ta.app.EndBlock(abci.RequestEndBlock{})
	cres := ta.app.Commit()
	require.NotEmpty(ta.t, cres.Data)
}

// deliver signs and submits a transaction carrying given message in its own
// block. It returns the deliver response, that is only committed when the
// check succeeded.
func (ta *testApp) deliver(signer *crypto.PrivateKey, seq int64, sum isTx_Sum) abci.ResponseDeliverTx {
	ta.t.Helper()

	tx := &Tx{Sum: sum}
	sig, err := sigs.SignTx(signer, tx, chainID, seq)
	require.NoError(ta.t, err)
	tx.Signatures = []*sigs.StdSignature{sig}
	bz, err := tx.Marshal()
	require.NoError(ta.t, err)

	ta.beginBlock()
	chres := ta.app.CheckTx(bz)
	if chres.Code != 0 {
		ta.commit()
		return abci.ResponseDeliverTx{Code: chres.Code, Log: chres.Log}
	}
	dres := ta.app.DeliverTx(bz)
	ta.commit()
	return dres
}

func (ta *testApp) query(path string, key []byte, obj weave.Persistent) {
	ta.t.Helper()
	res := ta.app.Query(abci.RequestQuery{Path: path, Data: key})
	require.Equal(ta.t, uint32(0), res.Code, res.Log)
	require.NotEmpty(ta.t, res.Value)
	require.NoError(ta.t, weaveApp.UnmarshalOneResult(res.Value, obj))
}

func TestIssuanceRoundTrip(t *testing.T) {
	alice := crypto.GenPrivKeyEd25519()
	bob := crypto.GenPrivKeyEd25519()
	ta := newTestApp(t, alice.PublicKey().Address())

	// The genesis class of alice is not an issued one. A failed check does
	// not bump the sequence.
	dres := ta.deliver(alice, 0, &Tx_NftissuerMintNftMsg{&nftissuer.MintNftMsg{
		Metadata: &weave.Metadata{Schema: 1},
	}})
	assert.NotEqual(t, uint32(0), dres.Code)

	cid, err := ContentID([]byte("my first nft"))
	require.NoError(t, err)

	dres = ta.deliver(alice, 0, &Tx_NftissuerCreateNftMsg{&nftissuer.CreateNftMsg{
		Metadata: &weave.Metadata{Schema: 1},
		CID:      []byte(cid.String()),
		Data:     []byte("collection"),
	}})
	require.Equal(t, uint32(0), dres.Code, dres.Log)
	classID := dres.Data
	assert.Equal(t, weavetest.SequenceID(2), classID)
	assert.Equal(t, "nftissuer/create_nft", tagValue(dres.Tags, "action"))
	assert.Equal(t, nftissuer.EventTokenIssuedBy, tagValue(dres.Tags, nftissuer.EventKey))

	var issued nftissuer.IssuedClass
	ta.query("/nftissuer/classes", alice.PublicKey().Address(), &issued)
	assert.Equal(t, classID, issued.ClassID)

	dres = ta.deliver(alice, 1, &Tx_NftissuerMintNftMsg{&nftissuer.MintNftMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Data:     []byte("token"),
	}})
	require.Equal(t, uint32(0), dres.Code, dres.Log)
	assert.Equal(t, nft.TokenKey(classID, 0), dres.Data)

	var token nft.Token
	ta.query("/nft/tokens", nft.TokenKey(classID, 0), &token)
	assert.Equal(t, []byte(cid.String()), token.TokenMetadata)
	assert.Equal(t, alice.PublicKey().Address(), token.Owner)

	dres = ta.deliver(alice, 2, &Tx_NftissuerTransferNftMsg{&nftissuer.TransferNftMsg{
		Metadata:    &weave.Metadata{Schema: 1},
		Destination: bob.PublicKey().Address(),
		ClassID:     classID,
		TokenID:     0,
	}})
	require.Equal(t, uint32(0), dres.Code, dres.Log)

	ta.query("/nft/tokens", nft.TokenKey(classID, 0), &token)
	assert.Equal(t, bob.PublicKey().Address(), token.Owner)

	// alice lost the token, bob can burn it.
	dres = ta.deliver(alice, 3, &Tx_NftissuerBurnNftMsg{&nftissuer.BurnNftMsg{
		Metadata: &weave.Metadata{Schema: 1},
		ClassID:  classID,
	}})
	assert.NotEqual(t, uint32(0), dres.Code)

	dres = ta.deliver(bob, 0, &Tx_NftissuerBurnNftMsg{&nftissuer.BurnNftMsg{
		Metadata: &weave.Metadata{Schema: 1},
		ClassID:  classID,
	}})
	require.Equal(t, uint32(0), dres.Code, dres.Log)
	assert.Equal(t, nftissuer.EventBurnedToken, tagValue(dres.Tags, nftissuer.EventKey))

	var class nft.Class
	ta.query("/nft/classes", classID, &class)
	assert.Equal(t, uint64(0), class.TotalIssuance)
	assert.Equal(t, uint64(1), class.NextTokenID)
}

func TestUpdateNftConfiguration(t *testing.T) {
	alice := crypto.GenPrivKeyEd25519()
	bob := crypto.GenPrivKeyEd25519()
	ta := newTestApp(t, alice.PublicKey().Address())

	update := &Tx_NftUpdateConfigurationMsg{&nft.UpdateConfigurationMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Patch:    &nft.Configuration{MaxTokenMetadata: 10},
	}}

	// Only the configuration owner set at genesis can change it.
	dres := ta.deliver(bob, 0, update)
	assert.NotEqual(t, uint32(0), dres.Code)

	dres = ta.deliver(alice, 0, update)
	require.Equal(t, uint32(0), dres.Code, dres.Log)
	assert.Equal(t, "nft/update_configuration", tagValue(dres.Tags, "action"))

	cid, err := ContentID([]byte("too long for a token"))
	require.NoError(t, err)

	// The class limit is unchanged, the token one now rejects the identifier.
	dres = ta.deliver(alice, 1, &Tx_NftissuerCreateNftMsg{&nftissuer.CreateNftMsg{
		Metadata: &weave.Metadata{Schema: 1},
		CID:      []byte(cid.String()),
	}})
	require.Equal(t, uint32(0), dres.Code, dres.Log)

	dres = ta.deliver(alice, 2, &Tx_NftissuerMintNftMsg{&nftissuer.MintNftMsg{
		Metadata: &weave.Metadata{Schema: 1},
	}})
	assert.NotEqual(t, uint32(0), dres.Code)
}

func TestDestroyClassRoundTrip(t *testing.T) {
	alice := crypto.GenPrivKeyEd25519()
	bob := crypto.GenPrivKeyEd25519()
	ta := newTestApp(t, alice.PublicKey().Address())

	cid, err := ContentID([]byte("short lived"))
	require.NoError(t, err)
	dres := ta.deliver(alice, 0, &Tx_NftissuerCreateNftMsg{&nftissuer.CreateNftMsg{
		Metadata: &weave.Metadata{Schema: 1},
		CID:      []byte(cid.String()),
	}})
	require.Equal(t, uint32(0), dres.Code, dres.Log)
	classID := dres.Data

	destroy := func(id []byte) isTx_Sum {
		return &Tx_NftissuerDestroyClassMsg{&nftissuer.DestroyClassMsg{
			Metadata: &weave.Metadata{Schema: 1},
			ClassID:  id,
		}}
	}

	dres = ta.deliver(bob, 0, destroy(classID))
	assert.NotEqual(t, uint32(0), dres.Code)

	dres = ta.deliver(alice, 1, destroy(classID))
	require.Equal(t, uint32(0), dres.Code, dres.Log)
	assert.Equal(t, nftissuer.EventClassDestroyed, tagValue(dres.Tags, nftissuer.EventKey))

	// The class is gone and alice has nothing to mint into. The failed
	// delivery still consumes a sequence, the failed check does not.
	dres = ta.deliver(alice, 2, destroy(classID))
	assert.NotEqual(t, uint32(0), dres.Code)
	dres = ta.deliver(alice, 3, &Tx_NftissuerMintNftMsg{&nftissuer.MintNftMsg{
		Metadata: &weave.Metadata{Schema: 1},
	}})
	assert.NotEqual(t, uint32(0), dres.Code)

	// The genesis class was never issued through nftissuer.
	dres = ta.deliver(alice, 3, destroy(weavetest.SequenceID(1)))
	require.Equal(t, uint32(0), dres.Code, dres.Log)
}

func TestGenesisClass(t *testing.T) {
	alice := crypto.GenPrivKeyEd25519()
	ta := newTestApp(t, alice.PublicKey().Address())

	var class nft.Class
	ta.query("/nft/classes", weavetest.SequenceID(1), &class)
	assert.Equal(t, alice.PublicKey().Address(), class.Owner)
	assert.Equal(t, []byte("genesis"), class.ClassMetadata)
}

func TestTxSignBytesIgnoreSignatures(t *testing.T) {
	priv := crypto.GenPrivKeyEd25519()
	tx := &Tx{Sum: &Tx_NftissuerMintNftMsg{&nftissuer.MintNftMsg{
		Metadata: &weave.Metadata{Schema: 1},
	}}}
	before, err := tx.GetSignBytes()
	require.NoError(t, err)

	sig, err := sigs.SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}

	after, err := tx.GetSignBytes()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Len(t, tx.Signatures, 1)

	bz, err := tx.Marshal()
	require.NoError(t, err)
	decoded, err := TxDecoder(bz)
	require.NoError(t, err)
	msg, err := decoded.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, "nftissuer/mint_nft", msg.Path())
}

func TestGenInitOptions(t *testing.T) {
	addr := weavetest.NewCondition().Address()
	raw, err := GenInitOptions([]string{"FOO", addr.String()})
	require.NoError(t, err)

	var genesis struct {
		Cash []struct {
			Address string `json:"address"`
		} `json:"cash"`
		Conf   map[string]json.RawMessage `json:"conf"`
		Schema []struct {
			Pkg string `json:"pkg"`
		} `json:"initialize_schema"`
	}
	require.NoError(t, json.Unmarshal(raw, &genesis))
	require.Len(t, genesis.Cash, 1)
	assert.Equal(t, addr.String(), genesis.Cash[0].Address)
	assert.Contains(t, string(raw), `"ticker":"FOO"`)
	for _, pkg := range []string{"cash", "nft", "migration"} {
		assert.Contains(t, genesis.Conf, pkg)
	}
	var nftConf nft.Configuration
	require.NoError(t, json.Unmarshal(genesis.Conf["nft"], &nftConf))
	assert.Equal(t, addr, nftConf.Owner)

	var pkgs []string
	for _, s := range genesis.Schema {
		pkgs = append(pkgs, s.Pkg)
	}
	assert.Subset(t, pkgs, []string{"nft", "nftissuer"})
}

func tagValue(tags []common.KVPair, key string) string {
	for _, t := range tags {
		if string(t.Key) == key {
			return string(t.Value)
		}
	}
	return ""
}
