package transaction

import "sync"

// accountLocks serializes the check-and-mutate sequence per account id, so
// two in-flight debits cannot both validate against the same stale balance.
// Entries are kept for the life of the process; one mutex per seen account.
type accountLocks struct {
	mu sync.Mutex
	m  map[int64]*sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{m: make(map[int64]*sync.Mutex)}
}

// lock acquires the mutex for the account and returns its unlock func.
func (l *accountLocks) lock(accountID int64) func() {
	l.mu.Lock()
	am, ok := l.m[accountID]
	if !ok {
		am = &sync.Mutex{}
		l.m[accountID] = am
	}
	l.mu.Unlock()

	am.Lock()
	return am.Unlock
}
