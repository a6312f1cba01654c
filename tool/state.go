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
	"os"

	"github.com/Fantom-foundation/legacy-import/common"
	"github.com/Fantom-foundation/legacy-import/dump"
	"github.com/Fantom-foundation/legacy-import/importer"
	"github.com/urfave/cli/v2"
)

var (
	genesisFlag = cli.BoolFlag{
		Name:  "genesis",
		Usage: "the source is a genesis file instead of a state dump",
	}
	expectFlag = cli.StringFlag{
		Name:  "expect",
		Usage: "expected state root, the command fails if the computed root differs",
	}
	countFlag = cli.IntFlag{
		Name:  "count",
		Usage: "number of accounts to extract",
		Value: 10,
	}
)

var RootCmd = cli.Command{
	Action:    addPerformanceDiagnoses(doRoot),
	Name:      "root",
	Usage:     "computes the state root of a state dump or genesis allocation",
	ArgsUsage: "<state-dump>",
	Flags: []cli.Flag{
		&genesisFlag,
		&expectFlag,
	},
}

var ExtractCmd = cli.Command{
	Action:    doExtract,
	Name:      "extract",
	Usage:     "copies the first accounts of a state dump into a new dump",
	ArgsUsage: "<state-dump> <target-file>",
	Flags: []cli.Flag{
		&countFlag,
	},
}

const errRootMismatch = common.ConstError("state root mismatch")

func doRoot(context *cli.Context) error {
	src, err := getSource(context)
	if err != nil {
		return err
	}
	log, err := newLog(context)
	if err != nil {
		return err
	}
	imp := importer.New(nil, log, 0)

	var root common.Hash
	if context.Bool(genesisFlag.Name) {
		genesis, err := dump.LoadGenesis(src)
		if err != nil {
			return err
		}
		if root, err = imp.GenesisStateRoot(context.Context, genesis); err != nil {
			return err
		}
	} else {
		in, err := dump.Open(src)
		if err != nil {
			return err
		}
		var report importer.Report
		root, report, err = imp.DumpStateRoot(context.Context, in)
		if err := errors.Join(err, in.Close()); err != nil {
			return err
		}
		if report.Skipped > 0 || report.Mismatches > 0 {
			log.Printf("%d accounts skipped, %d storage root mismatches", report.Skipped, report.Mismatches)
		}
	}
	fmt.Fprintf(context.App.Writer, "State root: %v\n", root)

	if expected := context.String(expectFlag.Name); expected != "" {
		want, err := common.HexToHash(expected)
		if err != nil {
			return fmt.Errorf("invalid expected root: %w", err)
		}
		if want != root {
			return fmt.Errorf("%w: expected %v, got %v", errRootMismatch, want, root)
		}
	}
	return nil
}

func doExtract(context *cli.Context) error {
	if context.Args().Len() != 2 {
		return fmt.Errorf("missing source and/or target file parameter")
	}
	src := context.Args().Get(0)
	dst := context.Args().Get(1)

	in, err := dump.Open(src)
	if err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return errors.Join(err, in.Close())
	}
	n, err := dump.ExtractState(in, out, context.Int(countFlag.Name))
	if err := errors.Join(err, out.Close(), in.Close()); err != nil {
		return err
	}
	fmt.Fprintf(context.App.Writer, "Extracted %d accounts\n", n)
	return nil
}
