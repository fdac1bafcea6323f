package nft

import (
	"testing"

	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/weavetest"
)

func TestClassValidate(t *testing.T) {
	alice := weavetest.NewCondition()
	cases := map[string]struct {
		Class   Class
		WantErr *errors.Error
	}{
		"valid model": {
			Class: Class{
				Metadata:      &weave.Metadata{Schema: 1},
				Owner:         alice.Address(),
				ClassMetadata: []byte("bafkrei"),
				TotalIssuance: 1,
				NextTokenID:   3,
			},
			WantErr: nil,
		},
		"missing metadata": {
			Class: Class{
				Owner: alice.Address(),
			},
			WantErr: errors.ErrMetadata,
		},
		"not an address": {
			Class: Class{
				Metadata: &weave.Metadata{Schema: 1},
				Owner:    []byte("not an address"),
			},
			WantErr: errors.ErrInput,
		},
		"issuance above minted": {
			Class: Class{
				Metadata:      &weave.Metadata{Schema: 1},
				Owner:         alice.Address(),
				TotalIssuance: 2,
				NextTokenID:   1,
			},
			WantErr: errors.ErrState,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.Class.Validate(); !tc.WantErr.Is(err) {
				t.Fatalf("unexpected validation error: %s", err)
			}
		})
	}
}

func TestTokenValidate(t *testing.T) {
	alice := weavetest.NewCondition()
	cases := map[string]struct {
		Token   Token
		WantErr *errors.Error
	}{
		"valid model": {
			Token: Token{
				Metadata: &weave.Metadata{Schema: 1},
				ClassID:  weavetest.SequenceID(1),
				TokenID:  4,
				Owner:    alice.Address(),
			},
			WantErr: nil,
		},
		"missing metadata": {
			Token: Token{
				ClassID: weavetest.SequenceID(1),
				Owner:   alice.Address(),
			},
			WantErr: errors.ErrMetadata,
		},
		"missing class": {
			Token: Token{
				Metadata: &weave.Metadata{Schema: 1},
				Owner:    alice.Address(),
			},
			WantErr: errors.ErrEmpty,
		},
		"invalid class": {
			Token: Token{
				Metadata: &weave.Metadata{Schema: 1},
				ClassID:  []byte("123"),
				Owner:    alice.Address(),
			},
			WantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.Token.Validate(); !tc.WantErr.Is(err) {
				t.Fatalf("unexpected validation error: %s", err)
			}
		})
	}
}

func TestCopyIsDeep(t *testing.T) {
	token := &Token{
		Metadata:      &weave.Metadata{Schema: 1},
		ClassID:       weavetest.SequenceID(1),
		Owner:         weavetest.NewCondition().Address(),
		TokenMetadata: []byte("meta"),
	}
	cpy := token.Copy().(*Token)
	cpy.TokenMetadata[0] = 'X'
	cpy.Owner[0]++
	if string(token.TokenMetadata) != "meta" {
		t.Fatalf("metadata modified: %q", token.TokenMetadata)
	}
	if token.Owner.Equals(cpy.Owner) {
		t.Fatal("owner shares memory with the copy")
	}
}
