package memory

import portsrepo "github.com/SscSPs/bookkeeping_engine/internal/core/ports/repositories"

// NewRepositoryProvider wires a fresh in-memory store and locker into every port.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	store := NewStore()
	return portsrepo.RepositoryProvider{
		TxManager: store,
		Journals:  store,
		Locker:    NewLocker(),
	}
}
