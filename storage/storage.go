package storage

import (
	"encoding/binary"
	"path"

	"github.com/op/go-logging"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
	lstorage "github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var log = logging.MustGetLogger("storage")

const StorageName = "liveness"

type StorageImpl struct {
	db   *leveldb.DB
	path string
}

// NewStorage opens a leveldb database at p, or an in-memory one when p is
// empty (used by tests).
func NewStorage(p string, opts *opt.Options) (Storage, error) {
	var nopts opt.Options
	if opts != nil {
		nopts = *opts
	}

	var err error
	var db *leveldb.DB

	if p == "" {
		db, err = leveldb.Open(lstorage.NewMemStorage(), &nopts)
	} else {
		p = path.Join(p, StorageName)
		db, err = leveldb.OpenFile(p, &nopts)
		log.Debugf("Created storage at %v", p)
		if errors.IsCorrupted(err) && !nopts.GetReadOnly() {
			db, err = leveldb.RecoverFile(p, &nopts)
		}
	}

	if err != nil {
		return nil, err
	}

	return &StorageImpl{
		db:   db,
		path: p,
	}, nil
}

func (s *StorageImpl) Put(rtype ResourceType, key []byte, value []byte) error {
	return s.db.Put(typedKey(rtype, key), value, &opt.WriteOptions{})
}

func (s *StorageImpl) Get(rtype ResourceType, key []byte) (value []byte, err error) {
	return s.db.Get(typedKey(rtype, key), &opt.ReadOptions{})
}

func (s *StorageImpl) Contains(rtype ResourceType, key []byte) bool {
	b, _ := s.db.Has(typedKey(rtype, key), &opt.ReadOptions{})
	return b
}

func (s *StorageImpl) Delete(rtype ResourceType, key []byte) error {
	return s.db.Delete(typedKey(rtype, key), &opt.WriteOptions{})
}

func (s *StorageImpl) Keys(rtype ResourceType, keyPrefix []byte) (keys [][]byte) {
	iter := s.db.NewIterator(util.BytesPrefix(typedKey(rtype, keyPrefix)), nil)

	for iter.Next() {
		key := iter.Key()
		// strip the resource prefix, callers deal in bare keys
		keyCopy := make([]byte, len(key)-1)
		copy(keyCopy, key[1:])
		keys = append(keys, keyCopy)
	}

	iter.Release()

	return keys
}

func (s *StorageImpl) Stats() *leveldb.DBStats {
	stats := &leveldb.DBStats{}
	if err := s.db.Stats(stats); err != nil {
		log.Error(err)
		return nil
	}
	return stats
}

func (s *StorageImpl) Close() {
	if err := s.db.Close(); err != nil {
		log.Error(err)
	}
}

func typedKey(rtype ResourceType, key []byte) []byte {
	k := make([]byte, 0, len(key)+1)
	k = append(k, byte(rtype))
	return append(k, key...)
}

func Uint32ToBytes(val uint32) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, val)
	return buf
}

func BytesToUint32(value []byte) uint32 {
	return binary.BigEndian.Uint32(value)
}
