// Package vault contains RPC wrappers for Mio Token Vault contract.
package vault

import (
	"errors"
	"fmt"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
)

// LockedEvent represents "Locked" event emitted by the contract.
type LockedEvent struct {
	Beneficiary util.Uint160
	Amount *big.Int
}

// ReleasedEvent represents "Released" event emitted by the contract.
type ReleasedEvent struct {
	Beneficiary util.Uint160
	Amount *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// GetLockedBalance invokes `getLockedBalance` method of contract.
func (c *ContractReader) GetLockedBalance(beneficiary util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "getLockedBalance", beneficiary))
}

// IsReleased invokes `isReleased` method of contract.
func (c *ContractReader) IsReleased() (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isReleased"))
}

// Owner invokes `owner` method of contract.
func (c *ContractReader) Owner() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "owner"))
}

// ReleaseTime invokes `releaseTime` method of contract.
func (c *ContractReader) ReleaseTime() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "releaseTime"))
}

// Token invokes `token` method of contract.
func (c *ContractReader) Token() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "token"))
}

// TotalLocked invokes `totalLocked` method of contract.
func (c *ContractReader) TotalLocked() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalLocked"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// AddBalance creates a transaction invoking `addBalance` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) AddBalance(from util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "addBalance", from, amount)
}

// AddBalanceTransaction creates a transaction invoking `addBalance` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AddBalanceTransaction(from util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "addBalance", from, amount)
}

// AddBalanceUnsigned creates a transaction invoking `addBalance` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AddBalanceUnsigned(from util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "addBalance", nil, from, amount)
}

// AddBalanceFor creates a transaction invoking `addBalanceFor` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) AddBalanceFor(from util.Uint160, beneficiary util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "addBalanceFor", from, beneficiary, amount)
}

// AddBalanceForTransaction creates a transaction invoking `addBalanceFor` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AddBalanceForTransaction(from util.Uint160, beneficiary util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "addBalanceFor", from, beneficiary, amount)
}

// AddBalanceForUnsigned creates a transaction invoking `addBalanceFor` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AddBalanceForUnsigned(from util.Uint160, beneficiary util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "addBalanceFor", nil, from, beneficiary, amount)
}

// BatchRelease creates a transaction invoking `batchRelease` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) BatchRelease(beneficiaries []util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "batchRelease", uint160Params(beneficiaries))
}

// BatchReleaseTransaction creates a transaction invoking `batchRelease` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) BatchReleaseTransaction(beneficiaries []util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "batchRelease", uint160Params(beneficiaries))
}

// BatchReleaseUnsigned creates a transaction invoking `batchRelease` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) BatchReleaseUnsigned(beneficiaries []util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "batchRelease", nil, uint160Params(beneficiaries))
}

// Release creates a transaction invoking `release` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Release(beneficiary util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "release", beneficiary)
}

// ReleaseTransaction creates a transaction invoking `release` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ReleaseTransaction(beneficiary util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "release", beneficiary)
}

// ReleaseUnsigned creates a transaction invoking `release` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ReleaseUnsigned(beneficiary util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "release", nil, beneficiary)
}

// ReleaseFor creates a transaction invoking `releaseFor` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ReleaseFor(beneficiary util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "releaseFor", beneficiary)
}

// ReleaseForTransaction creates a transaction invoking `releaseFor` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ReleaseForTransaction(beneficiary util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "releaseFor", beneficiary)
}

// ReleaseForUnsigned creates a transaction invoking `releaseFor` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ReleaseForUnsigned(beneficiary util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "releaseFor", nil, beneficiary)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(nefFile []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, nefFile, manifest, data)
}

// LockedEventsFromApplicationLog retrieves a set of all emitted events
// with "Locked" name from the provided [result.ApplicationLog].
func LockedEventsFromApplicationLog(log *result.ApplicationLog) ([]*LockedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*LockedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Locked" {
				continue
			}
			event := new(LockedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize LockedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to LockedEvent or
// returns an error if it's not possible to do to so.
func (e *LockedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Beneficiary, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Beneficiary: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// ReleasedEventsFromApplicationLog retrieves a set of all emitted events
// with "Released" name from the provided [result.ApplicationLog].
func ReleasedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ReleasedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ReleasedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Released" {
				continue
			}
			event := new(ReleasedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ReleasedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ReleasedEvent or
// returns an error if it's not possible to do to so.
func (e *ReleasedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Beneficiary, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Beneficiary: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}
