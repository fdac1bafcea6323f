package app

import (
	"github.com/iov-one/nftd/x/nft"
	"github.com/iov-one/nftd/x/nftissuer"
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/coin"
	"github.com/iov-one/weave/commands"
	"github.com/iov-one/weave/crypto"
	"github.com/iov-one/weave/weavetest"
	"github.com/iov-one/weave/x/cash"
	"github.com/iov-one/weave/x/sigs"
)

// Examples generates some example structs to dump out with testgen
func Examples() []commands.Example {
	wallet := &cash.Set{
		Metadata: &weave.Metadata{Schema: 1},
		Coins: []*coin.Coin{
			{Whole: 50000, Ticker: "ETH"},
			{Whole: 150, Fractional: 567000, Ticker: "BTC"},
		},
	}

	priv := crypto.GenPrivKeyEd25519()
	pub := priv.PublicKey()
	user := &sigs.UserData{
		Metadata: &weave.Metadata{Schema: 1},
		Pubkey:   pub,
		Sequence: 17,
	}

	cid, err := ContentID([]byte("example token content"))
	if err != nil {
		panic(err)
	}
	classID := weavetest.SequenceID(1)

	class := &nft.Class{
		Metadata:      &weave.Metadata{Schema: 1},
		Owner:         pub.Address(),
		ClassMetadata: []byte(cid.String()),
		TotalIssuance: 1,
		NextTokenID:   1,
	}
	token := &nft.Token{
		Metadata:      &weave.Metadata{Schema: 1},
		ClassID:       classID,
		TokenID:       0,
		Owner:         pub.Address(),
		TokenMetadata: []byte(cid.String()),
	}

	createMsg := &nftissuer.CreateNftMsg{
		Metadata: &weave.Metadata{Schema: 1},
		CID:      []byte(cid.String()),
		Data:     []byte("example class"),
	}
	mintMsg := &nftissuer.MintNftMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Data:     []byte("example token"),
	}
	dst := crypto.GenPrivKeyEd25519().PublicKey().Address()
	transferMsg := &nftissuer.TransferNftMsg{
		Metadata:    &weave.Metadata{Schema: 1},
		Destination: dst,
		ClassID:     classID,
		TokenID:     0,
	}
	burnMsg := &nftissuer.BurnNftMsg{
		Metadata: &weave.Metadata{Schema: 1},
		ClassID:  classID,
		TokenID:  0,
	}

	destroyMsg := &nftissuer.DestroyClassMsg{
		Metadata: &weave.Metadata{Schema: 1},
		ClassID:  classID,
	}
	confMsg := &nft.UpdateConfigurationMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Patch: &nft.Configuration{
			MaxTokenMetadata: 512,
		},
	}

	amt := coin.NewCoin(250, 0, "ETH")
	sendMsg := &cash.SendMsg{
		Metadata:    &weave.Metadata{Schema: 1},
		Amount:      &amt,
		Destination: dst,
		Source:      pub.Address(),
		Memo:        "Test payment",
	}

	unsigned := Tx{
		Sum: &Tx_NftissuerCreateNftMsg{createMsg},
	}
	tx := unsigned
	sig, err := sigs.SignTx(priv, &tx, "test-123", 17)
	if err != nil {
		panic(err)
	}
	tx.Signatures = []*sigs.StdSignature{sig}

	return []commands.Example{
		{Filename: "wallet", Obj: wallet},
		{Filename: "priv_key", Obj: priv},
		{Filename: "pub_key", Obj: pub},
		{Filename: "user", Obj: user},
		{Filename: "nft_class", Obj: class},
		{Filename: "nft_token", Obj: token},
		{Filename: "create_nft_msg", Obj: createMsg},
		{Filename: "mint_nft_msg", Obj: mintMsg},
		{Filename: "transfer_nft_msg", Obj: transferMsg},
		{Filename: "burn_nft_msg", Obj: burnMsg},
		{Filename: "destroy_class_msg", Obj: destroyMsg},
		{Filename: "update_nft_configuration_msg", Obj: confMsg},
		{Filename: "send_msg", Obj: sendMsg},
		{Filename: "unsigned_tx", Obj: &unsigned},
		{Filename: "signed_tx", Obj: &tx},
	}
}
