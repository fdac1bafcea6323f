package nftissuer

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/iov-one/weave"
	"github.com/tendermint/tendermint/libs/common"
)

// Event names, published under the EventKey tag.
const (
	EventTokenIssuedBy    = "TokenIssuedBy"
	EventTokenMinted      = "TokenMinted"
	EventBurnedToken      = "BurnedToken"
	EventTokenTransferred = "TokenTransferred"
	EventClassDestroyed   = "ClassDestroyed"
)

// Tag keys attached to the result of every successfully delivered message.
// Addresses and class IDs are upper case hex, token IDs are decimal.
const (
	EventKey       = "nftissuer.event"
	AccountKey     = "nftissuer.account"
	ClassKey       = "nftissuer.class"
	TokenKey       = "nftissuer.token"
	DestinationKey = "nftissuer.destination"
)

func tokenIssuedBy(account weave.Address, classID []byte) []common.KVPair {
	return []common.KVPair{
		tag(EventKey, EventTokenIssuedBy),
		tag(AccountKey, hexString(account)),
		tag(ClassKey, hexString(classID)),
	}
}

func tokenMinted(account weave.Address, classID []byte, tokenID uint64) []common.KVPair {
	return []common.KVPair{
		tag(EventKey, EventTokenMinted),
		tag(AccountKey, hexString(account)),
		tag(ClassKey, hexString(classID)),
		tag(TokenKey, strconv.FormatUint(tokenID, 10)),
	}
}

func burnedToken(account weave.Address, classID []byte, tokenID uint64) []common.KVPair {
	return []common.KVPair{
		tag(EventKey, EventBurnedToken),
		tag(AccountKey, hexString(account)),
		tag(ClassKey, hexString(classID)),
		tag(TokenKey, strconv.FormatUint(tokenID, 10)),
	}
}

func tokenTransferred(account, destination weave.Address, classID []byte, tokenID uint64) []common.KVPair {
	return []common.KVPair{
		tag(EventKey, EventTokenTransferred),
		tag(AccountKey, hexString(account)),
		tag(DestinationKey, hexString(destination)),
		tag(ClassKey, hexString(classID)),
		tag(TokenKey, strconv.FormatUint(tokenID, 10)),
	}
}

func classDestroyed(account weave.Address, classID []byte) []common.KVPair {
	return []common.KVPair{
		tag(EventKey, EventClassDestroyed),
		tag(AccountKey, hexString(account)),
		tag(ClassKey, hexString(classID)),
	}
}

func tag(key, value string) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: []byte(value)}
}

func hexString(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}
