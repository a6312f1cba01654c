// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/Fantom-foundation/legacy-import/common"
	"github.com/Fantom-foundation/legacy-import/common/interrupt"
	"github.com/Fantom-foundation/legacy-import/database/mpt"
	"github.com/Fantom-foundation/legacy-import/database/store"
	"github.com/Fantom-foundation/legacy-import/dump"
	"github.com/Fantom-foundation/legacy-import/export"
	"github.com/Fantom-foundation/legacy-import/types"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/exp/maps"
)

// ErrMissingGenesis is reported if blocks are imported into a store without
// a genesis block.
const ErrMissingGenesis = common.ConstError("genesis block not found, import the genesis first")

// errIgnored marks records that are skipped without being an error.
const errIgnored = common.ConstError("record ignored")

// Report summarizes an import. Records that could not be decoded or
// normalized are skipped; their errors are collected in Errors.
type Report struct {
	Imported int
	Skipped  int
	// Mismatches counts accounts whose exported storage root differs from
	// the computed one.
	Mismatches int
	Errors     *multierror.Error
}

func (r *Report) skip(err error) {
	r.Skipped++
	r.Errors = multierror.Append(r.Errors, err)
}

// Err returns the collected errors of skipped records, nil if there are none.
func (r *Report) Err() error {
	return r.Errors.ErrorOrNil()
}

func (r *Report) String() string {
	return fmt.Sprintf("%d imported, %d skipped", r.Imported, r.Skipped)
}

// Importer writes normalized records of a legacy chain into a store.
type Importer struct {
	store  store.Store
	log    *Log
	window int
}

// New creates an importer writing into the given store. Progress is reported
// every window records. The store may be nil if only headers are checked or
// state roots are computed.
func New(s store.Store, log *Log, window int) *Importer {
	if window <= 0 {
		window = 100_000
	}
	return &Importer{store: s, log: log, window: window}
}

// GenesisOptions customize the genesis import.
type GenesisOptions struct {
	// SealStateRoot makes the genesis header carry the computed state root
	// of the allocation instead of the empty root.
	SealStateRoot bool
}

// ImportGenesis writes the chain configuration, the allocation and the
// genesis header. It returns the header of the genesis block.
func (i *Importer) ImportGenesis(ctx context.Context, genesis *export.Genesis, opts GenesisOptions) (types.Header, error) {
	config := genesis.Config.Map()
	names := maps.Keys(config)
	sort.Strings(names)
	for _, name := range names {
		if err := i.store.PutConfig(name, config[name]); err != nil {
			return types.Header{}, err
		}
	}

	accounts := genesisAccounts(genesis)
	addresses := maps.Keys(accounts)
	sortAddresses(addresses)
	for _, address := range addresses {
		if err := interrupt.Check(ctx); err != nil {
			return types.Header{}, err
		}
		account := accounts[address]
		if err := i.putAccount(address, &account); err != nil {
			return types.Header{}, fmt.Errorf("failed to import genesis account %v: %w", address, err)
		}
	}
	i.log.Printf("Imported %d genesis accounts", len(addresses))

	root := common.EmptyRootHash
	if opts.SealStateRoot {
		var err error
		if root, err = i.ComputeStateRoot(ctx, accounts); err != nil {
			return types.Header{}, err
		}
	}
	header, err := export.GenesisHeader(genesis, root)
	if err != nil {
		return types.Header{}, err
	}
	if err := i.store.PutHeader(&header); err != nil {
		return types.Header{}, err
	}
	if err := i.store.Flush(); err != nil {
		return types.Header{}, err
	}
	i.log.Printf("Imported genesis block %v", header.Hash())
	return header, nil
}

// ImportBlocks writes all blocks of the given stream. The genesis block must
// have been imported before; block 0 of the stream is ignored so that the
// imported genesis header stays canonical.
func (i *Importer) ImportBlocks(ctx context.Context, blocks *dump.Stream[*export.SourceBlock]) (Report, error) {
	if _, err := i.store.GetCanonicalHash(0); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Report{}, ErrMissingGenesis
		}
		return Report{}, err
	}
	return importStream(ctx, i, blocks, "blocks", func(block *export.SourceBlock) error {
		if block.Header.Number == 0 {
			i.log.Printf("Keeping imported genesis, ignoring block 0 of the dump")
			return errIgnored
		}
		normalized := export.NormalizeBlock(block)
		return i.store.PutBlock(&normalized)
	})
}

// ImportHeaders decodes and normalizes all headers of the given stream
// without writing them.
func (i *Importer) ImportHeaders(ctx context.Context, headers *dump.Stream[*export.SourceHeader]) (Report, error) {
	var last uint64
	report, err := importStream(ctx, i, headers, "headers", func(header *export.SourceHeader) error {
		last = export.NormalizeHeader(header).Number
		return nil
	})
	if err == nil && report.Imported > 0 {
		i.log.Printf("Last decoded header: %d", last)
	}
	return report, err
}

// ImportReceipts writes all receipts of the given stream.
func (i *Importer) ImportReceipts(ctx context.Context, receipts *dump.Stream[*export.SourceReceipt]) (Report, error) {
	return importStream(ctx, i, receipts, "receipts", func(receipt *export.SourceReceipt) error {
		normalized := export.NormalizeReceipt(receipt)
		return i.store.PutReceipt(&normalized)
	})
}

// ImportState writes all accounts of a JSON state dump. Entries that can
// not be parsed or whose code hash is inconsistent are skipped.
func (i *Importer) ImportState(ctx context.Context, in io.Reader) (Report, error) {
	var report Report
	progress := i.log.NewProgressTracker("Imported %d accounts, %.2f accounts/s", i.window)
	err := dump.ReadState(in, func(entry dump.Result[dump.StateEntry]) error {
		if err := interrupt.Check(ctx); err != nil {
			return err
		}
		account, err := normalizeEntry(entry)
		if err != nil {
			i.log.Warn(err, "Skipping account")
			report.skip(err)
			return nil
		}
		if err := i.putAccount(entry.Value.Address, &account); err != nil {
			return err
		}
		report.Imported++
		progress.Step(1)
		return nil
	})
	if err != nil {
		return report, err
	}
	if err := i.store.Flush(); err != nil {
		return report, err
	}
	i.log.Printf("State import finished: %v", &report)
	return report, nil
}

// ComputeStateRoot computes the root of the state trie of the given accounts.
func (i *Importer) ComputeStateRoot(ctx context.Context, accounts map[common.Address]types.Account) (common.Hash, error) {
	resolved, err := mpt.ResolveAccounts(ctx, accounts)
	if err != nil {
		return common.Hash{}, err
	}
	root, err := mpt.StateRoot(resolved)
	if err != nil {
		return common.Hash{}, err
	}
	i.log.Printf("State root of %d accounts: %v", len(resolved), root)
	return root, nil
}

// GenesisStateRoot computes the state root of a genesis allocation.
func (i *Importer) GenesisStateRoot(ctx context.Context, genesis *export.Genesis) (common.Hash, error) {
	return i.ComputeStateRoot(ctx, genesisAccounts(genesis))
}

// DumpStateRoot computes the state root of a JSON state dump. Entries that
// are skipped by ImportState are not part of the root. Storage roots
// reported by the exporter are compared with the computed ones; differences
// are logged and counted.
func (i *Importer) DumpStateRoot(ctx context.Context, in io.Reader) (common.Hash, Report, error) {
	var report Report
	accounts := map[common.Address]types.Account{}
	reported := map[common.Address]common.Hash{}
	err := dump.ReadState(in, func(entry dump.Result[dump.StateEntry]) error {
		account, err := normalizeEntry(entry)
		if err != nil {
			i.log.Warn(err, "Skipping account")
			report.skip(err)
			return nil
		}
		accounts[entry.Value.Address] = account
		if root := entry.Value.Account.Root; root != nil {
			reported[entry.Value.Address] = *root
		}
		report.Imported++
		return nil
	})
	if err != nil {
		return common.Hash{}, report, err
	}

	resolved, err := mpt.ResolveAccounts(ctx, accounts)
	if err != nil {
		return common.Hash{}, report, err
	}
	for idx := range resolved {
		account := &resolved[idx]
		want, found := reported[account.Address()]
		if found && want != account.StorageRoot() {
			report.Mismatches++
			i.log.Warn(
				fmt.Errorf("exported %v, computed %v", want, account.StorageRoot()),
				fmt.Sprintf("Storage root mismatch for %v", account.Address()),
			)
		}
	}
	root, err := mpt.StateRoot(resolved)
	if err != nil {
		return common.Hash{}, report, err
	}
	i.log.Printf("State root of %d accounts: %v", len(resolved), root)
	return root, report, nil
}

func (i *Importer) putAccount(address common.Address, account *types.Account) error {
	if account.HasCode() {
		if _, err := i.store.PutCode(account.Code); err != nil {
			return err
		}
	}
	if err := i.store.PutAccount(address, account); err != nil {
		return err
	}
	keys := maps.Keys(account.Storage)
	sort.Slice(keys, func(a, b int) bool {
		return bytes.Compare(keys[a][:], keys[b][:]) < 0
	})
	for _, key := range keys {
		if err := i.store.PutStorage(address, key, account.Storage[key]); err != nil {
			return err
		}
	}
	return nil
}

// importStream consumes a record stream, passing every decoded record to
// the given consumer. Records that failed to decode are skipped; a broken
// stream or a failing consumer ends the import.
func importStream[T any](ctx context.Context, i *Importer, stream *dump.Stream[T], name string, consume func(T) error) (Report, error) {
	var report Report
	progress := i.log.NewProgressTracker("Imported %d "+name+", %.2f "+name+"/s", i.window)
	for {
		if err := interrupt.Check(ctx); err != nil {
			return report, err
		}
		res, ok := stream.Next()
		if !ok {
			break
		}
		if res.Err != nil {
			i.log.Warn(res.Err, "Skipping record")
			report.skip(res.Err)
			continue
		}
		if err := consume(res.Value); err != nil {
			if errors.Is(err, errIgnored) {
				report.Skipped++
				continue
			}
			return report, fmt.Errorf("failed to import record %d: %w", res.Index, err)
		}
		report.Imported++
		progress.Step(1)
	}
	if err := stream.Err(); err != nil {
		return report, err
	}
	if i.store != nil {
		if err := i.store.Flush(); err != nil {
			return report, err
		}
	}
	i.log.Printf("Import of %s finished: %v", name, &report)
	return report, nil
}

func normalizeEntry(entry dump.Result[dump.StateEntry]) (types.Account, error) {
	if entry.Err != nil {
		return types.Account{}, entry.Err
	}
	account, err := export.NormalizeStateAccount(entry.Value.Account)
	if err != nil {
		return types.Account{}, fmt.Errorf("account %v: %w", entry.Value.Address, err)
	}
	return account, nil
}

func genesisAccounts(genesis *export.Genesis) map[common.Address]types.Account {
	res := make(map[common.Address]types.Account, len(genesis.Alloc))
	for address, account := range genesis.Alloc {
		account := account
		res[address] = export.NormalizeGenesisAccount(&account)
	}
	return res
}

func sortAddresses(addresses []common.Address) {
	sort.Slice(addresses, func(a, b int) bool {
		return bytes.Compare(addresses[a][:], addresses[b][:]) < 0
	})
}
