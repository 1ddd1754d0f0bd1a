package integration

import (
	"context"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/wire"
)

// fakeNode is an in-memory BlockchainNode. Blocks are added by height and
// submitted transactions are recorded.
type fakeNode struct {
	mu        sync.Mutex
	tip       int64
	blocks    map[int64]*wire.MsgBlock
	submitted []*wire.MsgTx
}

func newFakeNode() *fakeNode {
	return &fakeNode{blocks: make(map[int64]*wire.MsgBlock)}
}

// addBlock appends a block holding txs at the next height and returns it.
func (n *fakeNode) addBlock(txs ...*wire.MsgTx) int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.tip++
	n.blocks[n.tip] = &wire.MsgBlock{Transactions: txs}
	return n.tip
}

func (n *fakeNode) GetBlockCount(_ context.Context) (int64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.tip, nil
}

func (n *fakeNode) GetBlock(_ context.Context, height int64) (*wire.MsgBlock, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	b, ok := n.blocks[height]
	if !ok {
		return nil, fmt.Errorf("block %d not found", height)
	}
	return b, nil
}

func (n *fakeNode) SendRawTransaction(_ context.Context, tx *wire.MsgTx) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.submitted = append(n.submitted, tx)
	return tx.TxHash().String(), nil
}

func (n *fakeNode) submittedCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.submitted)
}
