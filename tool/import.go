// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"errors"
	"fmt"

	"github.com/Fantom-foundation/legacy-import/common/interrupt"
	"github.com/Fantom-foundation/legacy-import/database/store"
	"github.com/Fantom-foundation/legacy-import/dump"
	"github.com/Fantom-foundation/legacy-import/importer"
	"github.com/urfave/cli/v2"
)

var (
	databaseFlag = cli.StringFlag{
		Name:     "database",
		Usage:    "directory of the target database",
		EnvVars:  []string{"IMPORT_DATABASE"},
		Required: true,
	}
	batchSizeFlag = cli.IntFlag{
		Name:  "batch-size",
		Usage: "number of buffered writes after which a batch is written to the database",
		Value: store.DefaultConfig.BatchSize,
	}
	progressFlag = cli.IntFlag{
		Name:  "progress",
		Usage: "number of imported records between progress reports",
		Value: 100_000,
	}
	sealFlag = cli.BoolFlag{
		Name:  "seal",
		Usage: "use the computed state root of the allocation in the genesis header instead of the empty root",
	}
)

var GenesisCmd = cli.Command{
	Action:    addPerformanceDiagnoses(doGenesisImport),
	Name:      "genesis",
	Usage:     "imports the chain configuration, allocation and genesis block of a genesis file",
	ArgsUsage: "<genesis-file>",
	Flags: []cli.Flag{
		&databaseFlag,
		&batchSizeFlag,
		&sealFlag,
	},
}

var BlocksCmd = cli.Command{
	Action:    addPerformanceDiagnoses(doBlocksImport),
	Name:      "blocks",
	Usage:     "imports the blocks of a block dump, requires an imported genesis",
	ArgsUsage: "<block-dump>",
	Flags: []cli.Flag{
		&databaseFlag,
		&batchSizeFlag,
		&progressFlag,
	},
}

var HeadersCmd = cli.Command{
	Action:    addPerformanceDiagnoses(doHeadersCheck),
	Name:      "headers",
	Usage:     "decodes the headers of a header dump without importing them",
	ArgsUsage: "<header-dump>",
	Flags: []cli.Flag{
		&progressFlag,
	},
}

var ReceiptsCmd = cli.Command{
	Action:    addPerformanceDiagnoses(doReceiptsImport),
	Name:      "receipts",
	Usage:     "imports the receipts of a receipt dump",
	ArgsUsage: "<receipt-dump>",
	Flags: []cli.Flag{
		&databaseFlag,
		&batchSizeFlag,
		&progressFlag,
	},
}

var StateCmd = cli.Command{
	Action:    addPerformanceDiagnoses(doStateImport),
	Name:      "state",
	Usage:     "imports the accounts of a JSON state dump",
	ArgsUsage: "<state-dump>",
	Flags: []cli.Flag{
		&databaseFlag,
		&batchSizeFlag,
		&progressFlag,
	},
}

func doGenesisImport(context *cli.Context) error {
	src, err := getSource(context)
	if err != nil {
		return err
	}
	genesis, err := dump.LoadGenesis(src)
	if err != nil {
		return err
	}
	return withImporter(context, func(imp *importer.Importer) error {
		opts := importer.GenesisOptions{SealStateRoot: context.Bool(sealFlag.Name)}
		header, err := imp.ImportGenesis(context.Context, genesis, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(context.App.Writer, "Genesis block: %v\n", header.Hash())
		return nil
	})
}

func doBlocksImport(context *cli.Context) error {
	src, err := getSource(context)
	if err != nil {
		return err
	}
	return withImporter(context, func(imp *importer.Importer) error {
		blocks, err := dump.OpenBlocks(src)
		if err != nil {
			return err
		}
		report, err := imp.ImportBlocks(context.Context, blocks)
		return finish(context, report, errors.Join(err, blocks.Close()))
	})
}

func doHeadersCheck(context *cli.Context) error {
	src, err := getSource(context)
	if err != nil {
		return err
	}
	log, err := newLog(context)
	if err != nil {
		return err
	}
	headers, err := dump.OpenHeaders(src)
	if err != nil {
		return err
	}
	imp := importer.New(nil, log, context.Int(progressFlag.Name))
	report, err := imp.ImportHeaders(context.Context, headers)
	return finish(context, report, errors.Join(err, headers.Close()))
}

func doReceiptsImport(context *cli.Context) error {
	src, err := getSource(context)
	if err != nil {
		return err
	}
	return withImporter(context, func(imp *importer.Importer) error {
		receipts, err := dump.OpenReceipts(src)
		if err != nil {
			return err
		}
		report, err := imp.ImportReceipts(context.Context, receipts)
		return finish(context, report, errors.Join(err, receipts.Close()))
	})
}

func doStateImport(context *cli.Context) error {
	src, err := getSource(context)
	if err != nil {
		return err
	}
	return withImporter(context, func(imp *importer.Importer) error {
		in, err := dump.Open(src)
		if err != nil {
			return err
		}
		report, err := imp.ImportState(context.Context, in)
		return finish(context, report, errors.Join(err, in.Close()))
	})
}

func getSource(context *cli.Context) (string, error) {
	if context.Args().Len() != 1 {
		return "", fmt.Errorf("missing source file parameter")
	}
	return context.Args().Get(0), nil
}

// withImporter opens the target database and runs the given import on it.
// An interrupt stops the import; records read so far are still written.
func withImporter(context *cli.Context, run func(*importer.Importer) error) error {
	log, err := newLog(context)
	if err != nil {
		return err
	}
	config := store.DefaultConfig
	config.BatchSize = context.Int(batchSizeFlag.Name)
	db, err := store.OpenLevelDbStore(context.String(databaseFlag.Name), config)
	if err != nil {
		return err
	}
	context.Context = interrupt.Register(context.Context)
	log.Print("import started")
	defer log.Print("import done")
	imp := importer.New(db, log, context.Int(progressFlag.Name))
	return errors.Join(
		run(imp),
		db.Close(),
	)
}

// finish prints the summary of an import.
func finish(context *cli.Context, report importer.Report, err error) error {
	fmt.Fprintf(context.App.Writer, "%v\n", &report)
	return err
}
