/*
Package nft implements a library of non fungible token classes.

A class is created by an owner and carries opaque metadata, usually a content
identifier. Tokens are minted into a class and numbered sequentially within
it. Each token has a single owner that can transfer or burn it. A class can be
destroyed by its owner once all of its tokens are burned.

The only message handled by this package updates its configuration. Other
extensions use the Controller to manage classes and tokens on behalf of their
callers.
*/
package nft
