package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
)

const defaultLineWidth = 79

// Print errors for failed files, returning how many failed.
func reportErrors(results []FileResult) int {
	failed := 0
	for i := range results {
		if results[i].Err != nil {
			fmt.Fprintln(os.Stderr, "Error:", results[i].Err)
			failed++
		}
	}
	return failed
}

// Print a literal block for every file that packed.
func CommandPack(paths []string, cfg PackConfig) int {
	results := PackFiles(paths, cfg)
	for i := range results {
		res := &results[i]
		if res.Err != nil {
			continue
		}
		if err := WriteBlock(os.Stdout, res.Structure.Name, res.Words, cfg.width); err != nil {
			res.Err = err
		}
	}
	return reportErrors(results)
}

// Pack, unpack and compare every file.
func CommandVerify(paths []string, cfg PackConfig) int {
	cfg.verify = true
	results := PackFiles(paths, cfg)
	for i := range results {
		res := &results[i]
		if res.Err == nil {
			fmt.Printf("%s: OK (%d tiles, %d words)\n", res.Path, res.Stats.Tiles, res.Stats.Size)
		}
	}
	return reportErrors(results)
}

// Print packing statistics, and optionally chart the run lengths.
func CommandStats(paths []string, cfg PackConfig, chartPath string) int {
	results := PackFiles(paths, cfg)
	var tiles, raw, packed, longest int
	fmt.Printf("%-32s %9s %6s %7s %7s %8s %7s\n",
		"file", "size", "tiles", "records", "unique", "raw", "packed")
	for i := range results {
		res := &results[i]
		if res.Err != nil {
			continue
		}
		st := res.Structure
		fmt.Printf("%-32s %4dx%-4d %6d %7d %7d %8d %6.1f%%\n",
			res.Path, st.Grid.Width, st.Grid.Height, res.Stats.Tiles, res.Stats.Records,
			DistinctRecords(st), res.Stats.RawSize, Percent(res.Stats.Size, res.Stats.RawSize))
		tiles += res.Stats.Tiles
		raw += res.Stats.RawSize
		packed += res.Stats.Size
		for _, run := range res.Stats.Runs {
			longest = max(longest, run)
		}
	}
	fmt.Println("===== Complete =====")
	fmt.Printf("Tiles:         %8d\n", tiles)
	fmt.Printf("Unmerged size: %8d words\n", raw)
	fmt.Printf("Packed size:   %8d words (%.1f%%)\n", packed, Percent(packed, raw))
	fmt.Printf("Longest run:   %8d tiles\n", longest)

	failed := reportErrors(results)
	if chartPath != "" {
		if err := WriteRunChart(chartPath, results); err != nil {
			fmt.Fprintln(os.Stderr, "Error writing chart:", err)
			failed++
		}
	}
	return failed
}

type CliCommand struct {
	fn       func(args []string) error
	flagset  *flag.FlagSet
	argsdesc string // argument description
	desc     string
}

// Describes how to use a given command.
func PrintCmdUsage(name string, cmd CliCommand) {
	fmt.Printf("%s %s - %s\n", name, cmd.argsdesc, cmd.desc)
	fs := cmd.flagset
	var count int = 0
	fs.VisitAll(func(_ *flag.Flag) {
		count++
	})
	if count != 0 {
		fs.PrintDefaults()
	}
}

func PrintUsage(commands map[string]CliCommand) {
	fmt.Println()
	fmt.Println("Usage: structpack <command> [arguments]")
	fmt.Println("Commands available:")

	names := []string{}
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := commands[name]
		fmt.Printf("    %-10s %s\n", name, cmd.desc)
	}
}

type exitCode int

func (e exitCode) Error() string {
	return fmt.Sprintf("%d file(s) failed", int(e))
}

// Shared flags for commands which process a list of files.
func fileFlags(fs *flag.FlagSet, cfg *PackConfig) {
	fs.BoolVar(&cfg.verbose, "verbose", false, "verbose output")
	fs.IntVar(&cfg.jobs, "jobs", runtime.NumCPU(), "files processed in parallel")
}

func main() {
	packFlags := flag.NewFlagSet("pack", flag.ExitOnError)
	verifyFlags := flag.NewFlagSet("verify", flag.ExitOnError)
	statsFlags := flag.NewFlagSet("stats", flag.ExitOnError)
	helpFlags := flag.NewFlagSet("help", flag.ExitOnError)

	var packCfg, verifyCfg, statsCfg PackConfig
	fileFlags(packFlags, &packCfg)
	fileFlags(verifyFlags, &verifyCfg)
	fileFlags(statsFlags, &statsCfg)
	packFlags.BoolVar(&packCfg.verify, "verify", false, "check every file unpacks to the same tiles")
	packFlags.IntVar(&packCfg.width, "width", defaultLineWidth, "output line width")
	statsChart := statsFlags.String("chart", "", "write a run length chart to this SVG file")

	var commands map[string]CliCommand

	requireFiles := func(name string, fs *flag.FlagSet) []string {
		files := fs.Args()
		if len(files) == 0 {
			fmt.Printf("'%s' command: expected <files...> arguments\n", name)
			os.Exit(1)
		}
		return files
	}

	toErr := func(failed int) error {
		if failed != 0 {
			return exitCode(failed)
		}
		return nil
	}

	cmdPack := func(args []string) error {
		packFlags.Parse(args)
		return toErr(CommandPack(requireFiles("pack", packFlags), packCfg))
	}

	cmdVerify := func(args []string) error {
		verifyFlags.Parse(args)
		return toErr(CommandVerify(requireFiles("verify", verifyFlags), verifyCfg))
	}

	cmdStats := func(args []string) error {
		statsFlags.Parse(args)
		return toErr(CommandStats(requireFiles("stats", statsFlags), statsCfg, *statsChart))
	}

	cmdHelp := func(args []string) error {
		helpFlags.Parse(args)
		names := helpFlags.Args()
		if len(names) > 0 {
			cmd, pres := commands[names[0]]
			if !pres {
				fmt.Println("error: unknown command for help")
				PrintUsage(commands)
				os.Exit(1)
			}
			PrintCmdUsage(names[0], cmd)
		} else {
			PrintUsage(commands)
		}
		return nil
	}

	commands = map[string]CliCommand{
		"pack":   {cmdPack, packFlags, "<files...>", "print structures as packed tile literals"},
		"verify": {cmdVerify, verifyFlags, "<files...>", "check packed data unpacks to the same tiles"},
		"stats":  {cmdStats, statsFlags, "<files...>", "report how well structures pack"},
		"help":   {cmdHelp, helpFlags, "", "list commands or describe a single command"},
	}

	if len(os.Args) < 2 {
		fmt.Println("error: expected a command")
		PrintUsage(commands)
		os.Exit(1)
	}

	cmd, pres := commands[os.Args[1]]
	if !pres {
		fmt.Println("error: unknown command")
		PrintUsage(commands)
		os.Exit(1)
	}

	err := cmd.fn(os.Args[2:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err.Error())
		os.Exit(1)
	}
}
