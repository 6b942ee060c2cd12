package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/common/version"
	"gopkg.in/alecthomas/kingpin.v2"
)

var cfg struct {
	verbose bool
	build   buildParams
	lookup  lookupParams
	dump    dumpParams
}

var (
	consoleOutput = os.Stderr
	logger        = log.NewLogfmtLogger(consoleOutput)
)

var compressionNames = []string{"none", "zstd", "s2", "lz4"}

func main() {
	app := kingpin.New(filepath.Base(os.Args[0]), "Build and inspect compressed code address to origin maps.").UsageWriter(os.Stdout)
	app.Version(version.Print("pcmap"))
	app.HelpFlag.Short('h')
	app.Flag("verbose", "Enable verbose logging.").Short('v').Default("false").BoolVar(&cfg.verbose)

	buildCmd := app.Command("build", "Build a map snapshot from an emission listing.")
	buildCmd.Arg("listing", "YAML emission listing.").Required().ExistingFileVar(&cfg.build.listing)
	buildCmd.Arg("output", "Snapshot file to write.").Required().StringVar(&cfg.build.output)
	buildCmd.Flag("address-compression", "Compression of the address payload.").Default("none").EnumVar(&cfg.build.addressCompression, compressionNames...)
	buildCmd.Flag("origin-compression", "Compression of the origin payload.").Default("none").EnumVar(&cfg.build.originCompression, compressionNames...)
	buildCmd.Flag("big-endian", "Write full-width values in big-endian order.").Default("false").BoolVar(&cfg.build.bigEndian)

	lookupCmd := app.Command("lookup", "Resolve addresses against a map snapshot.")
	lookupCmd.Arg("snapshot", "Snapshot file.").Required().ExistingFileVar(&cfg.lookup.snapshot)
	lookupCmd.Arg("address", "Code addresses, decimal or 0x-prefixed hex.").Required().StringsVar(&cfg.lookup.addresses)
	lookupCmd.Flag("listing", "Listing the snapshot was built from, used to name inline frames.").ExistingFileVar(&cfg.lookup.listing)

	dumpCmd := app.Command("dump", "Print the ranges of a map snapshot.")
	dumpCmd.Arg("snapshot", "Snapshot file.").Required().ExistingFileVar(&cfg.dump.snapshot)
	dumpCmd.Flag("listing", "Listing the snapshot was built from, used to name inline frames.").ExistingFileVar(&cfg.dump.listing)

	// parse command line arguments
	parsedCmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	// enable verbose logging if requested
	if !cfg.verbose {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	var err error
	switch parsedCmd {
	case buildCmd.FullCommand():
		err = runBuild(logger, cfg.build)
	case lookupCmd.FullCommand():
		err = runLookup(logger, cfg.lookup, os.Stdout)
	case dumpCmd.FullCommand():
		err = runDump(logger, cfg.dump, os.Stdout)
	default:
		err = fmt.Errorf("unknown command %q", parsedCmd)
	}

	os.Exit(checkError(err))
}

func checkError(err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintf(consoleOutput, "error: %v\n", err)

	return 1
}
