// Package erc20 is a contract binding for the standard token interface
// (balanceOf, transfer, decimals, symbol) in the shape abigen produces.
package erc20

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// ABIJSON is the subset of the EIP-20 ABI used by the loop.
const ABIJSON = `[
{"constant":true,"inputs":[{"name":"account","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
{"anonymous":false,"inputs":[{"indexed":true,"name":"from","type":"address"},{"indexed":true,"name":"to","type":"address"},{"indexed":false,"name":"value","type":"uint256"}],"name":"Transfer","type":"event"}
]`

// Function selectors.
var (
	SelBalanceOf = common.FromHex("0x70a08231")
	SelTransfer  = common.FromHex("0xa9059cbb")
	SelDecimals  = common.FromHex("0x313ce567")
	SelSymbol    = common.FromHex("0x95d89b41")

	// TransferTopic is keccak256("Transfer(address,address,uint256)").
	TransferTopic = gethcrypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))
)

var parsedABI abi.ABI

func init() {
	var err error
	parsedABI, err = abi.JSON(strings.NewReader(ABIJSON))
	if err != nil {
		panic("erc20: bad ABI: " + err.Error())
	}
}

// ABI returns the parsed token ABI.
func ABI() abi.ABI { return parsedABI }

// ERC20 is a binding to a deployed token contract.
type ERC20 struct {
	address  common.Address
	contract *bind.BoundContract
}

// New binds the token at address to backend.
func New(address common.Address, backend bind.ContractBackend) *ERC20 {
	return &ERC20{
		address:  address,
		contract: bind.NewBoundContract(address, parsedABI, backend, backend, backend),
	}
}

// Address of the bound contract.
func (t *ERC20) Address() common.Address { return t.address }

// BalanceOf calls balanceOf(account).
func (t *ERC20) BalanceOf(opts *bind.CallOpts, account common.Address) (*big.Int, error) {
	var out []interface{}
	if err := t.contract.Call(opts, &out, "balanceOf", account); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// Decimals calls decimals().
func (t *ERC20) Decimals(opts *bind.CallOpts) (uint8, error) {
	var out []interface{}
	if err := t.contract.Call(opts, &out, "decimals"); err != nil {
		return 0, err
	}
	return *abi.ConvertType(out[0], new(uint8)).(*uint8), nil
}

// Symbol calls symbol().
func (t *ERC20) Symbol(opts *bind.CallOpts) (string, error) {
	var out []interface{}
	if err := t.contract.Call(opts, &out, "symbol"); err != nil {
		return "", err
	}
	return *abi.ConvertType(out[0], new(string)).(*string), nil
}

// Transfer sends transfer(to, value). Gas limit and nonce are filled in by
// bind when opts leaves them unset.
func (t *ERC20) Transfer(opts *bind.TransactOpts, to common.Address, value *big.Int) (*types.Transaction, error) {
	return t.contract.Transact(opts, "transfer", to, value)
}

// EncodeTransfer builds transfer(to, amount) calldata.
func EncodeTransfer(to common.Address, amount *big.Int) []byte {
	arg1 := common.LeftPadBytes(to.Bytes(), 32)
	arg2 := common.LeftPadBytes(amount.Bytes(), 32)
	out := make([]byte, 0, 4+64)
	out = append(out, SelTransfer...)
	return append(out, append(arg1, arg2...)...)
}

// ParseTransfer decodes a Transfer event log emitted by this contract.
// ok is false for logs that are not Transfer events.
func ParseTransfer(l *types.Log) (from, to common.Address, value *big.Int, ok bool) {
	if len(l.Topics) != 3 || l.Topics[0] != TransferTopic {
		return common.Address{}, common.Address{}, nil, false
	}
	from = common.BytesToAddress(l.Topics[1].Bytes())
	to = common.BytesToAddress(l.Topics[2].Bytes())
	return from, to, new(big.Int).SetBytes(l.Data), true
}
