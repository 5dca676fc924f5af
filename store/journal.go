// Package store persists the replayable part of the launchpad's state: the
// ordered deposit log of each pool instance and the deployment records. A
// restarted node replays the journal to rebuild its commitment trees and
// nullifier registries; token balances and vesting state are reconstructed
// above this layer.
package store

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
	leveldbstorage "github.com/syndtr/goleveldb/leveldb/storage"
)

// Journal wraps LevelDB for append-style persistence. LevelDB handles its
// own synchronization.
type Journal struct {
	db *leveldb.DB
}

// NewJournal opens or creates a LevelDB database at the given path. An empty
// path opens in-memory storage.
func NewJournal(path string) (*Journal, error) {
	var db *leveldb.DB
	var err error

	if path == "" {
		db, err = leveldb.Open(leveldbstorage.NewMemStorage(), nil)
	} else {
		db, err = leveldb.OpenFile(path, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open journal at %q: %w", path, err)
	}
	return &Journal{db: db}, nil
}

// NewMemoryJournal creates an in-memory Journal for testing.
func NewMemoryJournal() (*Journal, error) {
	return NewJournal("")
}

func (j *Journal) Close() error {
	return j.db.Close()
}

func depositKey(instance uint32, leafIndex uint32) []byte {
	key := make([]byte, 0, 10)
	key = append(key, 'd', '/')
	key = binary.BigEndian.AppendUint32(key, instance)
	key = binary.BigEndian.AppendUint32(key, leafIndex)
	return key
}

// PutDeposit records the commitment inserted at leafIndex of the given pool
// instance.
func (j *Journal) PutDeposit(instance uint32, leafIndex uint32, commitment common.Hash) error {
	return j.db.Put(depositKey(instance, leafIndex), commitment[:], nil)
}

// Deposits returns the commitments of a pool instance in leaf order.
func (j *Journal) Deposits(instance uint32) ([]common.Hash, error) {
	prefix := depositKey(instance, 0)[:6]
	iter := j.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()

	var out []common.Hash
	for iter.Next() {
		out = append(out, common.BytesToHash(iter.Value()))
	}
	return out, iter.Error()
}

// DeploymentRecord is what a node needs to re-arm the deployment gate after
// a restart.
type DeploymentRecord struct {
	NullifierHash common.Hash
	Token         common.Address
	Name          string
	Symbol        string
}

func deploymentKey(nullifierHash common.Hash) []byte {
	return append([]byte("t/"), nullifierHash[:]...)
}

func (j *Journal) PutDeployment(rec *DeploymentRecord) error {
	enc, err := rlp.EncodeToBytes(rec)
	if err != nil {
		return err
	}
	return j.db.Put(deploymentKey(rec.NullifierHash), enc, nil)
}

// Deployments returns every recorded deployment, ordered by nullifier hash.
func (j *Journal) Deployments() ([]*DeploymentRecord, error) {
	iter := j.db.NewIterator(util.BytesPrefix([]byte("t/")), nil)
	defer iter.Release()

	var out []*DeploymentRecord
	for iter.Next() {
		rec := new(DeploymentRecord)
		if err := rlp.DecodeBytes(iter.Value(), rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, iter.Error()
}
