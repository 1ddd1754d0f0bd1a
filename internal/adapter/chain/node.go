package chain

import (
	"context"
	"fmt"

	"payment-resolver/config"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/btcsuite/btcd/wire"
	"github.com/rs/zerolog"
)

// rpcClient is the subset of *rpcclient.Client the node adapter calls.
type rpcClient interface {
	GetBlockCount() (int64, error)
	GetBlockHash(height int64) (*chainhash.Hash, error)
	GetBlock(hash *chainhash.Hash) (*wire.MsgBlock, error)
	SendRawTransaction(tx *wire.MsgTx, allowHighFees bool) (*chainhash.Hash, error)
	Shutdown()
}

// Node implements ports.BlockchainNode over bitcoind JSON-RPC.
type Node struct {
	client rpcClient
	log    zerolog.Logger
}

// NewNode connects to the configured node in HTTP POST mode.
func NewNode(cfg config.ChainConfig, log zerolog.Logger) (*Node, error) {
	client, err := rpcclient.New(&rpcclient.ConnConfig{
		Host:         cfg.RPCHost,
		User:         cfg.RPCUser,
		Pass:         cfg.RPCPass,
		DisableTLS:   cfg.DisableTLS,
		HTTPPostMode: true,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("creating rpc client: %w", err)
	}

	log.Info().
		Str("host", cfg.RPCHost).
		Str("network", cfg.Network).
		Msg("Bitcoin RPC client configured")

	return &Node{client: client, log: log}, nil
}

// GetBlockCount returns the height of the best chain.
func (n *Node) GetBlockCount(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count, err := n.client.GetBlockCount()
	if err != nil {
		return 0, fmt.Errorf("getblockcount: %w", err)
	}
	return count, nil
}

// GetBlock fetches the block at height.
func (n *Node) GetBlock(ctx context.Context, height int64) (*wire.MsgBlock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hash, err := n.client.GetBlockHash(height)
	if err != nil {
		return nil, fmt.Errorf("getblockhash %d: %w", height, err)
	}
	block, err := n.client.GetBlock(hash)
	if err != nil {
		return nil, fmt.Errorf("getblock %s: %w", hash, err)
	}
	return block, nil
}

// SendRawTransaction broadcasts tx and returns its hash.
func (n *Node) SendRawTransaction(ctx context.Context, tx *wire.MsgTx) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	hash, err := n.client.SendRawTransaction(tx, false)
	if err != nil {
		return "", fmt.Errorf("sendrawtransaction: %w", err)
	}
	n.log.Info().Str("tx_hash", hash.String()).Msg("transaction submitted")
	return hash.String(), nil
}

// Ping checks the node answers RPC.
func (n *Node) Ping(ctx context.Context) error {
	_, err := n.GetBlockCount(ctx)
	return err
}

// Name returns the dependency name.
func (n *Node) Name() string {
	return "bitcoind"
}

// Close shuts the RPC client down.
func (n *Node) Close() {
	n.client.Shutdown()
}
