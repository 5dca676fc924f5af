package merkle

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/ghostpad/ghostpad/utils"
)

func leaf(b byte) common.Hash {
	return common.BytesToHash(utils.MiMCHash([]byte{b}))
}

func Test_NewTree(t *testing.T) {
	_, err := NewTree(0)
	require.Error(t, err)
	_, err = NewTree(32)
	require.Error(t, err)

	tr, err := NewTree(20)
	require.NoError(t, err)
	require.Equal(t, 20, tr.Levels())
	require.Equal(t, uint32(0), tr.NextIndex())
	require.Equal(t, utils.ZeroValue, tr.Zeros(0))

	// The empty root is the zero hash cascaded to the top.
	want := utils.ZeroValue
	for i := 0; i < 20; i++ {
		want = utils.HashLeftRight(want, want)
	}
	require.Equal(t, want, tr.LastRoot())
}

func Test_Insert(t *testing.T) {
	tr, err := NewTree(20)
	require.NoError(t, err)

	emptyRoot := tr.LastRoot()
	var roots []common.Hash
	for i := byte(0); i < 4; i++ {
		idx, err := tr.Insert(leaf(i))
		require.NoError(t, err)
		require.Equal(t, uint32(i), idx)
		roots = append(roots, tr.LastRoot())
	}
	require.Equal(t, uint32(4), tr.NextIndex())

	// Every historical root stays resolvable inside the window.
	require.True(t, tr.IsKnownRoot(emptyRoot))
	for _, r := range roots {
		require.True(t, tr.IsKnownRoot(r))
	}
	require.False(t, tr.IsKnownRoot(common.Hash{}))
	require.False(t, tr.IsKnownRoot(leaf(0xff)))
}

func Test_InsertMatchesManualTree(t *testing.T) {
	// Rebuild a depth-3 tree by hand and compare roots after each insert.
	depth := 3
	tr, err := NewTree(depth)
	require.NoError(t, err)

	leaves := make([]common.Hash, 1<<depth)
	for i := range leaves {
		leaves[i] = tr.Zeros(0)
	}

	rootOf := func() common.Hash {
		level := append([]common.Hash(nil), leaves...)
		for len(level) > 1 {
			next := make([]common.Hash, len(level)/2)
			for i := range next {
				next[i] = utils.HashLeftRight(level[2*i], level[2*i+1])
			}
			level = next
		}
		return level[0]
	}

	for i := 0; i < 1<<depth; i++ {
		_, err := tr.Insert(leaf(byte(i + 1)))
		require.NoError(t, err)
		leaves[i] = leaf(byte(i + 1))
		require.Equal(t, rootOf(), tr.LastRoot(), "root mismatch after insert %d", i)
	}

	_, err = tr.Insert(leaf(0xaa))
	require.ErrorIs(t, err, ErrCapacity)
}

func Test_RootHistoryWindow(t *testing.T) {
	tr, err := NewTree(10)
	require.NoError(t, err)

	_, err = tr.Insert(leaf(1))
	require.NoError(t, err)
	oldRoot := tr.LastRoot()

	// RootHistorySize further inserts push the old root out of the window.
	for i := 0; i < RootHistorySize; i++ {
		_, err := tr.Insert(leaf(byte(2 + i)))
		require.NoError(t, err)
		if i < RootHistorySize-1 {
			require.True(t, tr.IsKnownRoot(oldRoot), "root evicted too early at insert %d", i)
		}
	}
	require.False(t, tr.IsKnownRoot(oldRoot))
	require.True(t, tr.IsKnownRoot(tr.LastRoot()))
}
