package store

import (
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func Test_Deposits(t *testing.T) {
	j, err := NewMemoryJournal()
	require.NoError(t, err)
	defer j.Close()

	// Interleave two instances; each log stays separate and leaf-ordered.
	for i := uint32(0); i < 5; i++ {
		require.NoError(t, j.PutDeposit(0, i, common.BytesToHash([]byte{0x10, byte(i)})))
		require.NoError(t, j.PutDeposit(1, i, common.BytesToHash([]byte{0x20, byte(i)})))
	}

	got, err := j.Deposits(0)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, c := range got {
		require.Equal(t, common.BytesToHash([]byte{0x10, byte(i)}), c)
	}

	got, err = j.Deposits(1)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, c := range got {
		require.Equal(t, common.BytesToHash([]byte{0x20, byte(i)}), c)
	}

	got, err = j.Deposits(2)
	require.NoError(t, err)
	require.Empty(t, got)
}

func Test_Deployments(t *testing.T) {
	j, err := NewMemoryJournal()
	require.NoError(t, err)
	defer j.Close()

	recs := []*DeploymentRecord{
		{NullifierHash: common.HexToHash("0x01"), Token: common.HexToAddress("0xaa"), Name: "Alpha", Symbol: "ALP"},
		{NullifierHash: common.HexToHash("0x02"), Token: common.HexToAddress("0xbb"), Name: "Beta", Symbol: "BET"},
	}
	for _, rec := range recs {
		require.NoError(t, j.PutDeployment(rec))
	}

	got, err := j.Deployments()
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, recs[0], got[0])
	require.Equal(t, recs[1], got[1])
}

func Test_JournalReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal")

	j, err := NewJournal(path)
	require.NoError(t, err)
	require.NoError(t, j.PutDeposit(0, 0, common.HexToHash("0xc0ffee")))
	require.NoError(t, j.PutDeployment(&DeploymentRecord{
		NullifierHash: common.HexToHash("0x01"),
		Token:         common.HexToAddress("0xaa"),
		Name:          "Alpha",
		Symbol:        "ALP",
	}))
	require.NoError(t, j.Close())

	// The journal survives a restart.
	j, err = NewJournal(path)
	require.NoError(t, err)
	defer j.Close()

	deposits, err := j.Deposits(0)
	require.NoError(t, err)
	require.Equal(t, []common.Hash{common.HexToHash("0xc0ffee")}, deposits)

	deployments, err := j.Deployments()
	require.NoError(t, err)
	require.Len(t, deployments, 1)
	require.Equal(t, "Alpha", deployments[0].Name)
}
