package chain

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// Signer is the private key plus its derived address.
type Signer struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewSigner parses a hex ECDSA private key (with / without 0x).
func NewSigner(pkHex string) (*Signer, error) {
	h := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(pkHex), "0x"))
	if len(h) == 0 {
		return nil, errors.New("empty private key")
	}
	prv, err := gethcrypto.HexToECDSA(h)
	if err != nil {
		return nil, fmt.Errorf("bad private key: %w", err)
	}
	return &Signer{key: prv, address: gethcrypto.PubkeyToAddress(prv.PublicKey)}, nil
}

// Address of the signer.
func (s *Signer) Address() common.Address { return s.address }

// Transactor builds *bind.TransactOpts for chainID. Nonce, gas limit and
// fee caps stay unset so bind fills them per transaction.
func (s *Signer) Transactor(chainID *big.Int) (*bind.TransactOpts, error) {
	return bind.NewKeyedTransactorWithChainID(s.key, chainID)
}
