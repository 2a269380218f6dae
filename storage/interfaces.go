package storage

import "github.com/syndtr/goleveldb/leveldb"

type ResourceType byte

// Key space of the host runtime storage. Liveness entries are keyed by
// session index plus validator index under the ReceivedHeartbeat prefix.
const ReceivedHeartbeat = ResourceType(0x0)
const CurrentSession = ResourceType(0x1)

type Storage interface {
	Put(rtype ResourceType, key []byte, value []byte) error
	Get(rtype ResourceType, key []byte) (value []byte, err error)
	Contains(rtype ResourceType, key []byte) bool
	Delete(rtype ResourceType, key []byte) error
	Keys(rtype ResourceType, keyPrefix []byte) (keys [][]byte)
	Stats() *leveldb.DBStats
	Close()
}
