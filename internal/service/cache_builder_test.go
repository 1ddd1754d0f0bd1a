package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"payment-resolver/internal/core/ports/mocks"
	"payment-resolver/pkg/bip70"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type cacheBuilderTestDeps struct {
	builder *CacheBuilder
	node    *mocks.MockBlockchainNode
	cache   *mocks.MockAddressCache
}

func setupCacheBuilder(t *testing.T, workers, batch int) *cacheBuilderTestDeps {
	ctrl := gomock.NewController(t)
	d := &cacheBuilderTestDeps{
		node:  mocks.NewMockBlockchainNode(ctrl),
		cache: mocks.NewMockAddressCache(ctrl),
	}
	d.builder = NewCacheBuilder(d.node, d.cache, testParams, workers, batch, zerolog.Nop())
	return d
}

func scriptHashAddress(t *testing.T, seed byte) string {
	t.Helper()
	addr, err := btcutil.NewAddressScriptHashFromHash(bytes.Repeat([]byte{seed}, 20), testParams)
	require.NoError(t, err)
	return addr.EncodeAddress()
}

func testBlock(t *testing.T, addrs ...string) *wire.MsgBlock {
	t.Helper()
	tx := wire.NewMsgTx(wire.TxVersion)
	for _, a := range addrs {
		tx.AddTxOut(wire.NewTxOut(1000, bip70.DestinationScript(a, testParams)))
	}
	nullData, err := txscript.NullDataScript([]byte("memo"))
	require.NoError(t, err)
	tx.AddTxOut(wire.NewTxOut(0, nullData))
	return &wire.MsgBlock{Transactions: []*wire.MsgTx{tx}}
}

func TestCacheBuilder_UpToDate(t *testing.T) {
	d := setupCacheBuilder(t, 2, 10)

	d.cache.EXPECT().CurrentSyncHeight(gomock.Any()).Return(int64(100), nil)
	d.node.EXPECT().GetBlockCount(gomock.Any()).Return(int64(100), nil)

	height, err := d.builder.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(100), height)
}

func TestCacheBuilder_RecordsStandardOutputs(t *testing.T) {
	d := setupCacheBuilder(t, 2, 2)
	p2pkh := staticAddress(t, 0x01)
	p2sh := scriptHashAddress(t, 0x02)
	other := staticAddress(t, 0x03)

	d.cache.EXPECT().CurrentSyncHeight(gomock.Any()).Return(int64(10), nil)
	d.node.EXPECT().GetBlockCount(gomock.Any()).Return(int64(13), nil)
	d.node.EXPECT().GetBlock(gomock.Any(), int64(11)).Return(testBlock(t, p2pkh, p2sh), nil)
	d.node.EXPECT().GetBlock(gomock.Any(), int64(12)).Return(testBlock(t), nil)
	d.node.EXPECT().GetBlock(gomock.Any(), int64(13)).Return(testBlock(t, other), nil)

	d.cache.EXPECT().MarkUsed(gomock.Any(), p2pkh, int64(11)).Return(nil)
	d.cache.EXPECT().MarkUsed(gomock.Any(), p2sh, int64(11)).Return(nil)
	d.cache.EXPECT().MarkUsed(gomock.Any(), other, int64(13)).Return(nil)

	gomock.InOrder(
		d.cache.EXPECT().SetSyncHeight(gomock.Any(), int64(12)).Return(nil),
		d.cache.EXPECT().SetSyncHeight(gomock.Any(), int64(13)).Return(nil),
	)

	height, err := d.builder.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(13), height)
}

func TestCacheBuilder_StopsAtFirstGap(t *testing.T) {
	d := setupCacheBuilder(t, 1, 3)
	addr := staticAddress(t, 0x04)

	d.cache.EXPECT().CurrentSyncHeight(gomock.Any()).Return(int64(0), nil)
	d.node.EXPECT().GetBlockCount(gomock.Any()).Return(int64(3), nil)
	d.node.EXPECT().GetBlock(gomock.Any(), int64(1)).Return(testBlock(t, addr), nil)
	d.node.EXPECT().GetBlock(gomock.Any(), int64(2)).Return(nil, errors.New("rpc timeout"))
	d.node.EXPECT().GetBlock(gomock.Any(), int64(3)).Return(testBlock(t), nil).AnyTimes()
	d.cache.EXPECT().MarkUsed(gomock.Any(), addr, int64(1)).Return(nil)
	d.cache.EXPECT().SetSyncHeight(gomock.Any(), int64(1)).Return(nil)

	height, err := d.builder.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "block 2")
	assert.Equal(t, int64(1), height)
}

func TestCacheBuilder_NothingCommittedOnFirstFailure(t *testing.T) {
	d := setupCacheBuilder(t, 1, 5)

	d.cache.EXPECT().CurrentSyncHeight(gomock.Any()).Return(int64(7), nil)
	d.node.EXPECT().GetBlockCount(gomock.Any()).Return(int64(8), nil)
	d.node.EXPECT().GetBlock(gomock.Any(), int64(8)).Return(nil, errors.New("boom"))

	height, err := d.builder.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, int64(7), height)
}

func TestCacheBuilder_NodeUnavailable(t *testing.T) {
	d := setupCacheBuilder(t, 0, 0)

	d.cache.EXPECT().CurrentSyncHeight(gomock.Any()).Return(int64(5), nil)
	d.node.EXPECT().GetBlockCount(gomock.Any()).Return(int64(0), errors.New("connection refused"))

	_, err := d.builder.Run(context.Background())
	assert.ErrorContains(t, err, "get block count")
}
