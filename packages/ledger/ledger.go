// Package ledger implements the token state machine of one chain of the bridge
// pair: a balance table with asymmetric burn/mint authorization and a durable,
// sequence-numbered burn log that the relay coordinator consumes.
package ledger

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/identity"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/kvstore/mapdb"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/types"

	"github.com/trestlelabs/trestle/packages/clock"
)

// store realm prefixes of a Ledger.
const (
	prefixBalances byte = iota
	prefixBurnLog
	prefixProvenance
	prefixCounters
)

// keys of the counters realm.
var (
	supplyKey   = []byte("supply")
	sequenceKey = []byte("sequence")
	nonceKey    = []byte("nonce")
)

// region Ledger ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Ledger is the token state machine of one chain of the bridge pair. Burning is
// self-service and feeds the burn log; minting is restricted to the configured
// authority and consumes a unique Provenance, which makes mint submissions
// idempotent across relay retries.
type Ledger struct {
	// Events is a dictionary for the events emitted by the Ledger.
	Events *Events

	id        LedgerID
	authority identity.ID
	options   *Options

	balances       map[identity.ID]uint64
	totalSupply    uint64
	sequence       uint64
	authorityNonce uint64
	provenance     map[Provenance]types.Empty

	balancesStore   kvstore.KVStore
	burnLogStore    kvstore.KVStore
	provenanceStore kvstore.KVStore
	countersStore   kvstore.KVStore

	mutex sync.RWMutex
}

// New creates a new Ledger identified by id, granting mint rights to the given
// authority. State found in the backing store is reloaded; otherwise the
// optional genesis allocation is applied.
func New(id LedgerID, authority identity.ID, opts ...Option) (*Ledger, error) {
	if id != LedgerA && id != LedgerB {
		return nil, errors.Errorf("%w: %d", ErrUnknownLedger, id)
	}

	options := &Options{
		Store: mapdb.NewMapDB(),
	}
	for _, option := range opts {
		option(options)
	}

	l := &Ledger{
		Events:     newEvents(),
		id:         id,
		authority:  authority,
		options:    options,
		balances:   make(map[identity.ID]uint64),
		provenance: make(map[Provenance]types.Empty),
	}

	var err error
	if l.balancesStore, err = options.Store.WithRealm([]byte{prefixBalances}); err != nil {
		return nil, errors.Errorf("failed to open balances realm: %w", err)
	}
	if l.burnLogStore, err = options.Store.WithRealm([]byte{prefixBurnLog}); err != nil {
		return nil, errors.Errorf("failed to open burn log realm: %w", err)
	}
	if l.provenanceStore, err = options.Store.WithRealm([]byte{prefixProvenance}); err != nil {
		return nil, errors.Errorf("failed to open provenance realm: %w", err)
	}
	if l.countersStore, err = options.Store.WithRealm([]byte{prefixCounters}); err != nil {
		return nil, errors.Errorf("failed to open counters realm: %w", err)
	}

	if err = l.load(); err != nil {
		return nil, err
	}

	return l, nil
}

// ID returns the identifier of the ledger.
func (l *Ledger) ID() LedgerID {
	return l.id
}

// Authority returns the identity that is permitted to mint on the ledger.
func (l *Ledger) Authority() identity.ID {
	return l.authority
}

// Balance returns the current balance of the given account.
func (l *Ledger) Balance(account identity.ID) uint64 {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.balances[account]
}

// TotalSupply returns the sum of all account balances of the ledger.
func (l *Ledger) TotalSupply() uint64 {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.totalSupply
}

// LatestSequence returns the sequence number of the most recent burn, or 0 if
// nothing was burned yet.
func (l *Ledger) LatestSequence() uint64 {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.sequence
}

// AuthorityNonce returns the next nonce a mint of the authority must carry.
func (l *Ledger) AuthorityNonce() uint64 {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.authorityNonce
}

// Burn destroys amount of the caller's balance and appends the corresponding
// BurnRecord to the burn log. It is the sole trigger for a cross-ledger
// transfer: the assigned sequence number is what the relay coordinator keys
// its work on.
func (l *Ledger) Burn(caller identity.ID, amount uint64) (*BurnRecord, error) {
	if amount == 0 {
		return nil, ErrInvalidAmount
	}

	l.mutex.Lock()
	balance := l.balances[caller]
	if balance < amount {
		l.mutex.Unlock()
		return nil, errors.Errorf("burn of %d exceeds balance %d of account %s: %w", amount, balance, caller, ErrInsufficientBalance)
	}

	l.balances[caller] = balance - amount
	l.totalSupply -= amount
	l.sequence++

	record := &BurnRecord{
		Sequence:  l.sequence,
		Account:   caller,
		Amount:    amount,
		Timestamp: clock.SyncedTime(),
	}

	l.persistBalance(caller)
	l.persistCounters()
	l.persistBurnRecord(record)
	l.mutex.Unlock()

	l.Events.Burned.Trigger(&BurnedEvent{Ledger: l.id, Record: record})

	return record, nil
}

// Mint credits amount to the given account under the authority's identity. The
// nonce must be the authority's next expected one and the provenance must not
// have been consumed by an earlier mint, so replayed submissions of the same
// bridge transfer are rejected with ErrAlreadyMinted instead of inflating the
// supply.
func (l *Ledger) Mint(caller identity.ID, nonce uint64, to identity.ID, amount uint64, provenance Provenance) (*MintReceipt, error) {
	if amount == 0 {
		return nil, ErrInvalidAmount
	}

	l.mutex.Lock()
	if caller != l.authority {
		l.mutex.Unlock()
		return nil, errors.Errorf("mint by %s: %w", caller, ErrUnauthorized)
	}
	if provenance.Source != l.id.Opposite() {
		l.mutex.Unlock()
		return nil, errors.Errorf("provenance source %s is not the opposite ledger of %s: %w", provenance.Source, l.id, ErrUnknownLedger)
	}
	if nonce != l.authorityNonce {
		l.mutex.Unlock()
		return nil, errors.Errorf("expected nonce %d, got %d: %w", l.authorityNonce, nonce, ErrNonceConflict)
	}
	if _, minted := l.provenance[provenance]; minted {
		l.mutex.Unlock()
		return nil, errors.Errorf("%s: %w", provenance, ErrAlreadyMinted)
	}

	l.balances[to] += amount
	l.totalSupply += amount
	l.authorityNonce++
	l.provenance[provenance] = types.Void

	receipt := &MintReceipt{
		ID:         newReceiptID(l.id, nonce, to, amount, provenance),
		Ledger:     l.id,
		Nonce:      nonce,
		To:         to,
		Amount:     amount,
		Provenance: provenance,
		Timestamp:  clock.SyncedTime(),
	}

	l.persistBalance(to)
	l.persistCounters()
	l.persistProvenance(provenance)
	l.mutex.Unlock()

	l.Events.Minted.Trigger(&MintedEvent{Ledger: l.id, Receipt: receipt})

	return receipt, nil
}

// Transfer moves amount from one account to another. Transfers do not
// participate in the bridging invariant: the total supply is unchanged.
func (l *Ledger) Transfer(from identity.ID, to identity.ID, amount uint64) error {
	if amount == 0 {
		return ErrInvalidAmount
	}

	l.mutex.Lock()
	balance := l.balances[from]
	if balance < amount {
		l.mutex.Unlock()
		return errors.Errorf("transfer of %d exceeds balance %d of account %s: %w", amount, balance, from, ErrInsufficientBalance)
	}

	l.balances[from] = balance - amount
	l.balances[to] += amount

	l.persistBalance(from)
	l.persistBalance(to)
	l.mutex.Unlock()

	l.Events.Transferred.Trigger(&TransferredEvent{Ledger: l.id, From: from, To: to, Amount: amount})

	return nil
}

// BurnsSince reads the persisted burn log starting at the given sequence
// number (inclusive). It is the backfill interface of the ledger: a relay that
// lost its subscription replays the records it missed from here.
func (l *Ledger) BurnsSince(fromSequence uint64) (records []*BurnRecord, err error) {
	if fromSequence == 0 {
		fromSequence = 1
	}

	latest := l.LatestSequence()
	for sequence := fromSequence; sequence <= latest; sequence++ {
		value, valueErr := l.burnLogStore.Get(uint64Bytes(sequence))
		if valueErr != nil {
			return nil, errors.Errorf("failed to load burn record %d of ledger %s: %w", sequence, l.id, valueErr)
		}
		record, recordErr := BurnRecordFromBytes(value)
		if recordErr != nil {
			return nil, errors.Errorf("failed to parse burn record %d of ledger %s: %w", sequence, l.id, recordErr)
		}
		records = append(records, record)
	}

	return records, nil
}

// Shutdown flushes the backing store of the ledger.
func (l *Ledger) Shutdown() error {
	return l.options.Store.Flush()
}

// load restores the ledger state from the backing store, or applies the
// genesis allocation when the store is fresh.
func (l *Ledger) load() error {
	initialized, err := l.countersStore.Has(supplyKey)
	if err != nil {
		return errors.Errorf("failed to probe counters realm: %w", err)
	}

	if !initialized {
		if l.options.GenesisAmount > 0 {
			l.balances[l.options.GenesisAccount] = l.options.GenesisAmount
			l.totalSupply = l.options.GenesisAmount
			l.persistBalance(l.options.GenesisAccount)
		}
		l.persistCounters()
		return nil
	}

	if l.totalSupply, err = l.loadCounter(supplyKey); err != nil {
		return err
	}
	if l.sequence, err = l.loadCounter(sequenceKey); err != nil {
		return err
	}
	if l.authorityNonce, err = l.loadCounter(nonceKey); err != nil {
		return err
	}

	var innerErr error
	if err = l.balancesStore.Iterate([]byte{}, func(key kvstore.Key, value kvstore.Value) bool {
		var account identity.ID
		copy(account[:], key)
		balance, balanceErr := uint64FromBytes(value)
		if balanceErr != nil {
			innerErr = errors.Errorf("failed to parse balance of account %s: %w", account, balanceErr)
			return false
		}
		l.balances[account] = balance
		return true
	}); err != nil {
		return errors.Errorf("failed to iterate balances realm: %w", err)
	}
	if innerErr != nil {
		return innerErr
	}

	if err = l.provenanceStore.Iterate([]byte{}, func(key kvstore.Key, _ kvstore.Value) bool {
		provenance, provenanceErr := ProvenanceFromMarshalUtil(marshalutil.New([]byte(key)))
		if provenanceErr != nil {
			innerErr = errors.Errorf("failed to parse provenance entry: %w", provenanceErr)
			return false
		}
		l.provenance[provenance] = types.Void
		return true
	}); err != nil {
		return errors.Errorf("failed to iterate provenance realm: %w", err)
	}
	if innerErr != nil {
		return innerErr
	}

	return nil
}

func (l *Ledger) loadCounter(key []byte) (uint64, error) {
	value, err := l.countersStore.Get(key)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, errors.Errorf("failed to load counter %s: %w", string(key), err)
	}
	return uint64FromBytes(value)
}

// the persist helpers panic on store errors, as a failing store leaves no sane
// way to continue operating the state machine.
func (l *Ledger) persistBalance(account identity.ID) {
	if err := l.balancesStore.Set(account.Bytes(), uint64Bytes(l.balances[account])); err != nil {
		panic(errors.Errorf("failed to persist balance of account %s: %w", account, err))
	}
}

func (l *Ledger) persistCounters() {
	if err := l.countersStore.Set(supplyKey, uint64Bytes(l.totalSupply)); err != nil {
		panic(errors.Errorf("failed to persist total supply: %w", err))
	}
	if err := l.countersStore.Set(sequenceKey, uint64Bytes(l.sequence)); err != nil {
		panic(errors.Errorf("failed to persist sequence counter: %w", err))
	}
	if err := l.countersStore.Set(nonceKey, uint64Bytes(l.authorityNonce)); err != nil {
		panic(errors.Errorf("failed to persist authority nonce: %w", err))
	}
}

func (l *Ledger) persistBurnRecord(record *BurnRecord) {
	if err := l.burnLogStore.Set(uint64Bytes(record.Sequence), record.Bytes()); err != nil {
		panic(errors.Errorf("failed to persist burn record %d: %w", record.Sequence, err))
	}
}

func (l *Ledger) persistProvenance(provenance Provenance) {
	if err := l.provenanceStore.Set(provenance.Bytes(), []byte{}); err != nil {
		panic(errors.Errorf("failed to persist provenance %s: %w", provenance, err))
	}
}

func uint64Bytes(value uint64) []byte {
	return marshalutil.New(marshalutil.Uint64Size).WriteUint64(value).Bytes()
}

func uint64FromBytes(bytes []byte) (uint64, error) {
	return marshalutil.New(bytes).ReadUint64()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
