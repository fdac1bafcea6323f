/*
Package nftissuer lets accounts issue content addressed non fungible tokens.

Every account has at most one issued class and one content identifier. Creating
a new class overwrites both. Minting always uses the most recently created
class and content identifier of the signer. Class and token management is
delegated to the nft package.
*/
package nftissuer
