package ledger

import (
	"sync"
)

// region Registry /////////////////////////////////////////////////////////////////////////////////////////////////////

// Registry resolves the ledgers hosted by the running process. It is the entry
// point for components that address a ledger by its LedgerID, like the web API
// routes and the relay connectors.
type Registry struct {
	ledgers map[LedgerID]*Ledger
	mutex   sync.RWMutex
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		ledgers: make(map[LedgerID]*Ledger),
	}
}

// Register adds the given ledger to the registry, replacing a previously
// registered ledger with the same LedgerID.
func (r *Registry) Register(l *Ledger) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.ledgers[l.ID()] = l
}

// Ledger returns the hosted ledger with the given LedgerID.
func (r *Registry) Ledger(id LedgerID) (l *Ledger, exists bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	l, exists = r.ledgers[id]
	return
}

// Ledgers returns the hosted ledgers in the order of their LedgerIDs.
func (r *Registry) Ledgers() (ledgers []*Ledger) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, id := range []LedgerID{LedgerA, LedgerB} {
		if l, exists := r.ledgers[id]; exists {
			ledgers = append(ledgers, l)
		}
	}
	return
}

// Shutdown flushes every hosted ledger.
func (r *Registry) Shutdown() (err error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, l := range r.ledgers {
		if shutdownErr := l.Shutdown(); shutdownErr != nil && err == nil {
			err = shutdownErr
		}
	}
	return
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
