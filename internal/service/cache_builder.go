package service

import (
	"context"
	"fmt"

	"payment-resolver/internal/core/ports"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// CacheBuilder scans new blocks and records every P2PKH and P2SH output
// address in the address cache.
type CacheBuilder struct {
	node    ports.BlockchainNode
	cache   ports.AddressCache
	params  *chaincfg.Params
	workers int
	batch   int
	log     zerolog.Logger
}

// NewCacheBuilder creates a CacheBuilder. workers bounds concurrent block
// fetches, batch is the number of heights committed at a time.
func NewCacheBuilder(
	node ports.BlockchainNode,
	cache ports.AddressCache,
	params *chaincfg.Params,
	workers, batch int,
	log zerolog.Logger,
) *CacheBuilder {
	if workers <= 0 {
		workers = 1
	}
	if batch <= 0 {
		batch = 1
	}
	return &CacheBuilder{
		node:    node,
		cache:   cache,
		params:  params,
		workers: workers,
		batch:   batch,
		log:     log,
	}
}

// Run scans from the stored sync height up to the node tip. It returns the
// height the cache is synced to when it stops.
func (b *CacheBuilder) Run(ctx context.Context) (int64, error) {
	last, err := b.cache.CurrentSyncHeight(ctx)
	if err != nil {
		return 0, fmt.Errorf("read sync height: %w", err)
	}
	tip, err := b.node.GetBlockCount(ctx)
	if err != nil {
		return last, fmt.Errorf("get block count: %w", err)
	}
	if last >= tip {
		b.log.Info().Int64("height", last).Msg("address cache up to date")
		return last, nil
	}

	b.log.Info().Int64("from", last+1).Int64("to", tip).Msg("building address cache")

	for start := last + 1; start <= tip; start += int64(b.batch) {
		end := min(start+int64(b.batch)-1, tip)

		synced, err := b.scanBatch(ctx, start, end)
		if synced > last {
			if serr := b.cache.SetSyncHeight(ctx, synced); serr != nil {
				return last, fmt.Errorf("set sync height: %w", serr)
			}
			last = synced
		}
		if err != nil {
			return last, err
		}
		b.log.Debug().Int64("height", last).Msg("address cache batch committed")
	}

	b.log.Info().Int64("height", last).Msg("address cache build complete")
	return last, nil
}

// scanBatch processes heights start..end and returns the highest height h
// such that every height up to h was recorded.
func (b *CacheBuilder) scanBatch(ctx context.Context, start, end int64) (int64, error) {
	done := make([]bool, end-start+1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for h := start; h <= end; h++ {
		g.Go(func() error {
			if err := b.scanBlock(gctx, h); err != nil {
				return fmt.Errorf("block %d: %w", h, err)
			}
			done[h-start] = true
			return nil
		})
	}
	err := g.Wait()

	synced := start - 1
	for _, ok := range done {
		if !ok {
			break
		}
		synced++
	}
	return synced, err
}

func (b *CacheBuilder) scanBlock(ctx context.Context, height int64) error {
	block, err := b.node.GetBlock(ctx, height)
	if err != nil {
		return err
	}
	for _, addr := range b.outputAddresses(block) {
		if err := b.cache.MarkUsed(ctx, addr, height); err != nil {
			return err
		}
	}
	return nil
}

func (b *CacheBuilder) outputAddresses(block *wire.MsgBlock) []string {
	var out []string
	for _, tx := range block.Transactions {
		for _, txOut := range tx.TxOut {
			class, addrs, _, err := txscript.ExtractPkScriptAddrs(txOut.PkScript, b.params)
			if err != nil || len(addrs) != 1 {
				continue
			}
			if class != txscript.PubKeyHashTy && class != txscript.ScriptHashTy {
				continue
			}
			out = append(out, addrs[0].EncodeAddress())
		}
	}
	return out
}
