package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UserListCacheHits   uint64
	UserListCacheMisses uint64
	UserCacheHits       uint64
	UserCacheMisses     uint64
	UsersCreated        uint64
	UsersUpdated        uint64
	UsersDeleted        uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	userListCacheHits   uint64
	userListCacheMisses uint64
	userCacheHits       uint64
	userCacheMisses     uint64
	usersCreated        uint64
	usersUpdated        uint64
	usersDeleted        uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UserListCacheHits:   atomic.LoadUint64(&m.userListCacheHits),
		UserListCacheMisses: atomic.LoadUint64(&m.userListCacheMisses),
		UserCacheHits:       atomic.LoadUint64(&m.userCacheHits),
		UserCacheMisses:     atomic.LoadUint64(&m.userCacheMisses),
		UsersCreated:        atomic.LoadUint64(&m.usersCreated),
		UsersUpdated:        atomic.LoadUint64(&m.usersUpdated),
		UsersDeleted:        atomic.LoadUint64(&m.usersDeleted),
	}
}

// IncUserListCacheHit increments the collection cache hit counter.
func (m *InMemoryRecorder) IncUserListCacheHit() {
	atomic.AddUint64(&m.userListCacheHits, 1)
}

// IncUserListCacheMiss increments the collection cache miss counter.
func (m *InMemoryRecorder) IncUserListCacheMiss() {
	atomic.AddUint64(&m.userListCacheMisses, 1)
}

// IncUserCacheHit increments the per-item cache hit counter.
func (m *InMemoryRecorder) IncUserCacheHit() {
	atomic.AddUint64(&m.userCacheHits, 1)
}

// IncUserCacheMiss increments the per-item cache miss counter.
func (m *InMemoryRecorder) IncUserCacheMiss() {
	atomic.AddUint64(&m.userCacheMisses, 1)
}

// IncUserCreated increments the created counter.
func (m *InMemoryRecorder) IncUserCreated() {
	atomic.AddUint64(&m.usersCreated, 1)
}

// IncUserUpdated increments the updated counter.
func (m *InMemoryRecorder) IncUserUpdated() {
	atomic.AddUint64(&m.usersUpdated, 1)
}

// IncUserDeleted increments the deleted counter.
func (m *InMemoryRecorder) IncUserDeleted() {
	atomic.AddUint64(&m.usersDeleted, 1)
}
