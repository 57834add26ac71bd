package relay

import (
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/types"

	"github.com/trestlelabs/trestle/packages/ledger"
)

var (
	prefixJournalPending    = []byte{0}
	prefixJournalConfirmed  = []byte{1}
	prefixJournalWatermarks = []byte{2}
)

// Journal is the durable record of every bridge transfer the relay has taken responsibility for.
// An intent is journaled as pending before its mint is submitted and moved to confirmed once the
// destination ledger has included it, so after a crash the relay resumes exactly the submissions
// that are still owed.
//
// Per source ledger the Journal maintains a watermark: the highest sequence number up to which
// every burn is journaled without gaps. Since burn sequence numbers are contiguous, the watermark
// is the resume point for backfills.
type Journal struct {
	pendingStore   kvstore.KVStore
	confirmedStore kvstore.KVStore
	watermarkStore kvstore.KVStore

	watermarks     map[ledger.LedgerID]uint64
	ahead          map[ledger.Provenance]types.Empty
	pending        map[ledger.Provenance]types.Empty
	confirmedCount int

	mutex sync.RWMutex
}

// NewJournal opens the journal on top of the given store and restores its in-memory indexes.
func NewJournal(store kvstore.KVStore) (journal *Journal, err error) {
	journal = &Journal{
		watermarks: make(map[ledger.LedgerID]uint64),
		ahead:      make(map[ledger.Provenance]types.Empty),
		pending:    make(map[ledger.Provenance]types.Empty),
	}

	if journal.pendingStore, err = store.WithRealm(prefixJournalPending); err != nil {
		return nil, errors.Errorf("failed to open pending realm: %w", err)
	}
	if journal.confirmedStore, err = store.WithRealm(prefixJournalConfirmed); err != nil {
		return nil, errors.Errorf("failed to open confirmed realm: %w", err)
	}
	if journal.watermarkStore, err = store.WithRealm(prefixJournalWatermarks); err != nil {
		return nil, errors.Errorf("failed to open watermark realm: %w", err)
	}

	if err = journal.load(); err != nil {
		return nil, errors.Errorf("failed to load journal: %w", err)
	}

	return journal, nil
}

// Append journals the given intent as pending. It reports whether the intent was new; an intent
// whose provenance is already journaled is left untouched.
func (j *Journal) Append(intent *MintIntent) (added bool, err error) {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	if j.isKnown(intent.Provenance) {
		return false, nil
	}

	if err = j.pendingStore.Set(intent.Provenance.Bytes(), intent.Bytes()); err != nil {
		return false, errors.Errorf("failed to journal intent %s: %w", intent.Provenance, err)
	}
	j.pending[intent.Provenance] = types.Void
	j.admit(intent.Provenance)

	return true, nil
}

// Confirm moves the intent with the receipt's provenance from pending to confirmed. Confirming an
// already confirmed intent is a no-op.
func (j *Journal) Confirm(receipt *ledger.MintReceipt) (err error) {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	provenance := receipt.Provenance
	if !j.isKnown(provenance) {
		return errors.Errorf("failed to confirm %s: %w", provenance, ErrNotJournaled)
	}
	if _, isPending := j.pending[provenance]; !isPending {
		return nil
	}

	if err = j.confirmedStore.Set(provenance.Bytes(), receipt.Bytes()); err != nil {
		return errors.Errorf("failed to confirm %s: %w", provenance, err)
	}
	if err = j.pendingStore.Delete(provenance.Bytes()); err != nil {
		return errors.Errorf("failed to unjournal pending %s: %w", provenance, err)
	}
	delete(j.pending, provenance)
	j.confirmedCount++

	return nil
}

// IsKnown reports whether a bridge transfer with the given provenance was ever journaled.
func (j *Journal) IsKnown(provenance ledger.Provenance) bool {
	j.mutex.RLock()
	defer j.mutex.RUnlock()

	return j.isKnown(provenance)
}

// IsPending reports whether the bridge transfer with the given provenance still awaits its mint.
func (j *Journal) IsPending(provenance ledger.Provenance) bool {
	j.mutex.RLock()
	defer j.mutex.RUnlock()

	_, isPending := j.pending[provenance]
	return isPending
}

// Receipt returns the receipt of a confirmed bridge transfer.
func (j *Journal) Receipt(provenance ledger.Provenance) (receipt *ledger.MintReceipt, err error) {
	value, err := j.confirmedStore.Get(provenance.Bytes())
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, errors.Errorf("no receipt for %s: %w", provenance, ErrNotJournaled)
		}
		return nil, errors.Errorf("failed to read receipt for %s: %w", provenance, err)
	}

	return ledger.MintReceiptFromMarshalUtil(marshalutil.New(value))
}

// Watermark returns the sequence number up to which every burn of the given source ledger is
// journaled without gaps.
func (j *Journal) Watermark(source ledger.LedgerID) uint64 {
	j.mutex.RLock()
	defer j.mutex.RUnlock()

	return j.watermarks[source]
}

// Pending returns the pending intents that originate from the given source ledger, in ascending
// sequence order.
func (j *Journal) Pending(source ledger.LedgerID) (intents []*MintIntent, err error) {
	var innerErr error
	if err = j.pendingStore.Iterate([]byte{}, func(key kvstore.Key, value kvstore.Value) bool {
		intent, intentErr := MintIntentFromBytes(value)
		if intentErr != nil {
			innerErr = intentErr
			return false
		}
		if intent.Provenance.Source == source {
			intents = append(intents, intent)
		}
		return true
	}); err != nil {
		return nil, errors.Errorf("failed to iterate pending realm: %w", err)
	}
	if innerErr != nil {
		return nil, errors.Errorf("failed to parse journaled intent: %w", innerErr)
	}

	sort.Slice(intents, func(i, k int) bool {
		return intents[i].Provenance.Sequence < intents[k].Provenance.Sequence
	})

	return intents, nil
}

// NumPending returns the number of journaled intents that still await their mint.
func (j *Journal) NumPending() int {
	j.mutex.RLock()
	defer j.mutex.RUnlock()

	return len(j.pending)
}

// NumConfirmed returns the number of journaled intents whose mint was confirmed.
func (j *Journal) NumConfirmed() int {
	j.mutex.RLock()
	defer j.mutex.RUnlock()

	return j.confirmedCount
}

// isKnown checks the indexes without locking.
func (j *Journal) isKnown(provenance ledger.Provenance) bool {
	if provenance.Sequence <= j.watermarks[provenance.Source] {
		return true
	}
	_, isAhead := j.ahead[provenance]
	return isAhead
}

// admit registers a freshly journaled provenance and advances the watermark over every run of
// contiguous sequence numbers it completes.
func (j *Journal) admit(provenance ledger.Provenance) {
	if provenance.Sequence != j.watermarks[provenance.Source]+1 {
		j.ahead[provenance] = types.Void
		return
	}

	watermark := provenance.Sequence
	for {
		next := ledger.Provenance{Source: provenance.Source, Sequence: watermark + 1}
		if _, isAhead := j.ahead[next]; !isAhead {
			break
		}
		delete(j.ahead, next)
		watermark = next.Sequence
	}
	j.watermarks[provenance.Source] = watermark

	if err := j.watermarkStore.Set(provenance.Source.Bytes(), uint64Bytes(watermark)); err != nil {
		panic(err)
	}
}

// load restores the watermarks and in-memory indexes from the backing store.
func (j *Journal) load() (err error) {
	for _, source := range []ledger.LedgerID{ledger.LedgerA, ledger.LedgerB} {
		value, watermarkErr := j.watermarkStore.Get(source.Bytes())
		if watermarkErr != nil {
			if errors.Is(watermarkErr, kvstore.ErrKeyNotFound) {
				continue
			}
			return errors.Errorf("failed to load watermark of %s: %w", source, watermarkErr)
		}
		if j.watermarks[source], err = uint64FromBytes(value); err != nil {
			return errors.Errorf("failed to parse watermark of %s: %w", source, err)
		}
	}

	var innerErr error
	if err = j.pendingStore.Iterate([]byte{}, func(key kvstore.Key, value kvstore.Value) bool {
		provenance, provenanceErr := ledger.ProvenanceFromMarshalUtil(marshalutil.New([]byte(key)))
		if provenanceErr != nil {
			innerErr = provenanceErr
			return false
		}
		j.pending[provenance] = types.Void
		if provenance.Sequence > j.watermarks[provenance.Source] {
			j.ahead[provenance] = types.Void
		}
		return true
	}); err != nil {
		return errors.Errorf("failed to iterate pending realm: %w", err)
	}
	if innerErr != nil {
		return errors.Errorf("failed to parse pending realm: %w", innerErr)
	}

	if err = j.confirmedStore.Iterate([]byte{}, func(key kvstore.Key, value kvstore.Value) bool {
		provenance, provenanceErr := ledger.ProvenanceFromMarshalUtil(marshalutil.New([]byte(key)))
		if provenanceErr != nil {
			innerErr = provenanceErr
			return false
		}
		j.confirmedCount++
		if provenance.Sequence > j.watermarks[provenance.Source] {
			j.ahead[provenance] = types.Void
		}
		return true
	}); err != nil {
		return errors.Errorf("failed to iterate confirmed realm: %w", err)
	}
	if innerErr != nil {
		return errors.Errorf("failed to parse confirmed realm: %w", innerErr)
	}

	// journal entries above a just-restored watermark may complete runs the watermark missed
	for provenance := range j.ahead {
		if provenance.Sequence == j.watermarks[provenance.Source]+1 {
			delete(j.ahead, provenance)
			j.admit(provenance)
		}
	}

	return nil
}

func uint64Bytes(value uint64) []byte {
	return marshalutil.New(marshalutil.Uint64Size).WriteUint64(value).Bytes()
}

func uint64FromBytes(bytes []byte) (uint64, error) {
	return marshalutil.New(bytes).ReadUint64()
}
