// Package merkle implements the append-only commitment accumulator backing a
// shielded pool: an incremental MiMC merkle tree that keeps a bounded history
// of its roots, so withdrawal proofs built against a slightly stale tree are
// still accepted.
package merkle

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ghostpad/ghostpad/utils"
)

// RootHistorySize bounds how stale a proven root may be. Roots older than the
// last RootHistorySize insertions are forgotten.
const RootHistorySize = 30

var (
	ErrCapacity = errors.New("merkle tree is full, no more leaves can be added")
)

// Tree is an incremental merkle accumulator of fixed depth. Only the path of
// the most recent insertion is kept (filledSubtrees); empty branches are
// represented by memoized all-zero subtree hashes.
type Tree struct {
	levels         int
	nextIndex      uint32
	filledSubtrees []common.Hash
	zeros          []common.Hash

	roots            [RootHistorySize]common.Hash
	currentRootIndex int
}

func NewTree(levels int) (*Tree, error) {
	if levels <= 0 || levels >= 32 {
		return nil, fmt.Errorf("tree levels must be in (0, 32), got %d", levels)
	}

	t := &Tree{
		levels:         levels,
		filledSubtrees: make([]common.Hash, levels),
		zeros:          make([]common.Hash, levels),
	}

	z := utils.ZeroValue
	for i := 0; i < levels; i++ {
		t.zeros[i] = z
		t.filledSubtrees[i] = z
		z = utils.HashLeftRight(z, z)
	}
	t.roots[0] = z // root of the fully empty tree

	return t, nil
}

// Insert appends leaf at the next free index and returns that index.
func (t *Tree) Insert(leaf common.Hash) (uint32, error) {
	if t.nextIndex == uint32(1)<<t.levels {
		return 0, ErrCapacity
	}

	currentIndex := t.nextIndex
	currentHash := leaf
	for i := 0; i < t.levels; i++ {
		var left, right common.Hash
		if currentIndex%2 == 0 {
			left, right = currentHash, t.zeros[i]
			t.filledSubtrees[i] = currentHash
		} else {
			left, right = t.filledSubtrees[i], currentHash
		}
		currentHash = utils.HashLeftRight(left, right)
		currentIndex /= 2
	}

	t.currentRootIndex = (t.currentRootIndex + 1) % RootHistorySize
	t.roots[t.currentRootIndex] = currentHash

	index := t.nextIndex
	t.nextIndex++
	return index, nil
}

// LastRoot returns the root after the most recent insertion.
func (t *Tree) LastRoot() common.Hash {
	return t.roots[t.currentRootIndex]
}

// IsKnownRoot reports whether root is one of the last RootHistorySize roots.
// The zero root is never known.
func (t *Tree) IsKnownRoot(root common.Hash) bool {
	if root == (common.Hash{}) {
		return false
	}
	i := t.currentRootIndex
	for {
		if t.roots[i] == root {
			return true
		}
		if i == 0 {
			i = RootHistorySize
		}
		i--
		if i == t.currentRootIndex {
			return false
		}
	}
}

func (t *Tree) Levels() int {
	return t.levels
}

func (t *Tree) NextIndex() uint32 {
	return t.nextIndex
}

// Zeros returns the memoized all-zero subtree hash at the given level.
func (t *Tree) Zeros(level int) common.Hash {
	return t.zeros[level]
}
