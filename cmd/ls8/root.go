package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gitlab.com/efronlicht/enve"
	"golang.org/x/term"

	"github.com/ezrec/ls8/channel"
	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
)

// Version is set with -ldflags "-X main.Version=...", but *not* when installing
// via "go install".
var Version string

// rootCmd runs a single program.
var rootCmd = newRootCmd()

func newRootCmd() (cmd *cobra.Command) {
	cmd = &cobra.Command{
		Use:   "ls8 [flags] program",
		Short: "An emulator for the LS-8.",
		Long: `An emulator for the LS-8 8-bit computer.

The program is either a binary image (.ls8, one base-2 byte per line) or,
with --asm or a .asm extension, LS-8 assembly source.

Flag defaults may be set from the environment:
  LS8_TRACE, LS8_VERBOSE, LS8_MAX_STEPS`,
		Args:         programArgs,
		SilenceUsage: true,
		RunE:         runProgram,
	}

	cmd.Flags().Bool("version", false, "Report version of this executable")
	cmd.Flags().Bool("asm", false, "treat the program as assembly source")
	cmd.Flags().StringArrayP("define", "D", nil, "predefine an assembler equate, as NAME=VALUE")
	cmd.Flags().Bool("trace", false, "trace each instruction to stderr")
	cmd.Flags().BoolP("verbose", "v", false, "increase logging verbosity")
	cmd.Flags().Int("max-steps", 0, "stop after this many instructions (0 is unlimited)")

	return
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// programArgs requires exactly one program, unless only the version is wanted.
func programArgs(cmd *cobra.Command, args []string) error {
	if GetFlag(cmd, "version") {
		return cobra.NoArgs(cmd, args)
	}
	return cobra.ExactArgs(1)(cmd, args)
}

// GetFlag gets an expected boolean flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		panic(err)
	}

	return r
}

// GetInt gets an expected int flag, or panic if an error arises.
func GetInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		panic(err)
	}

	return r
}

// envFlag sets a flag from an environment variable, unless the flag was
// given on the command line. A missing variable leaves the default alone;
// a malformed one is an error.
func envFlag[T any](cmd *cobra.Command, flag string, key string, parse func(string) (T, error)) (err error) {
	if cmd.Flags().Changed(flag) {
		return
	}

	value, err := enve.Lookup(parse, key)
	var missing enve.MissingKeyError
	if errors.As(err, &missing) {
		err = nil
		return
	}
	if err != nil {
		err = fmt.Errorf("%v: %w", key, err)
		return
	}

	err = cmd.Flags().Set(flag, fmt.Sprint(value))
	return
}

// envFlags applies the LS8_* environment defaults.
func envFlags(cmd *cobra.Command) (err error) {
	err = errors.Join(
		envFlag(cmd, "trace", "LS8_TRACE", strconv.ParseBool),
		envFlag(cmd, "verbose", "LS8_VERBOSE", strconv.ParseBool),
		envFlag(cmd, "max-steps", "LS8_MAX_STEPS", strconv.Atoi),
	)
	return
}

// setupLogging configures logrus on the command's error stream.
func setupLogging(w io.Writer, verbose bool) {
	color := false
	if file, ok := w.(*os.File); ok {
		color = term.IsTerminal(int(file.Fd()))
	}

	log.SetOutput(w)
	log.SetFormatter(&log.TextFormatter{
		ForceColors:      color,
		DisableTimestamp: true,
	})

	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}
}

func printVersion(w io.Writer) {
	fmt.Fprint(w, "ls8 ")
	if Version != "" {
		// Set by the linker
		fmt.Fprintf(w, "%s", Version)
	} else if info, ok := debug.ReadBuildInfo(); ok {
		// Built via "go install"
		fmt.Fprintf(w, "%s", info.Main.Version)
	} else {
		// Unknown, perhaps "go run"
		fmt.Fprintf(w, "(unknown version)")
	}
	fmt.Fprintln(w)
}

// loadProgram reads a binary image, or assembly source with the assembler.
func loadProgram(path string, asm bool, assembler *cpu.Assembler) (prog *cpu.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	if asm || filepath.Ext(path) == ".asm" {
		prog, err = assembler.Parse(inf)
	} else {
		prog, err = cpu.ParseImage(inf)
	}

	return
}

func runProgram(cmd *cobra.Command, args []string) (err error) {
	if GetFlag(cmd, "version") {
		printVersion(cmd.OutOrStdout())
		return
	}

	err = envFlags(cmd)
	if err != nil {
		return
	}

	verbose := GetFlag(cmd, "verbose")
	setupLogging(cmd.ErrOrStderr(), verbose)

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.MaxSteps = GetInt(cmd, "max-steps")

	assembler := &cpu.Assembler{Verbose: verbose}
	for name, value := range emu.Defines() {
		assembler.Predefine(name, value)
	}
	defines, err := cmd.Flags().GetStringArray("define")
	if err != nil {
		return
	}
	for _, define := range defines {
		name, value, ok := strings.Cut(define, "=")
		if !ok {
			value = "1"
		}
		assembler.Predefine(name, value)
	}

	path := args[0]
	prog, err := loadProgram(path, GetFlag(cmd, "asm"), assembler)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
		return
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	emu.Program = prog
	emu.SetOutput(&channel.Tape{Output: out})
	if GetFlag(cmd, "trace") {
		emu.Cpu.Trace = cmd.ErrOrStderr()
	}

	err = emu.Reset()
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
		return
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	err = emu.Run(ctx)
	if err != nil {
		log.Debugf("machine state:\n%v", emu.Cpu.String())
		err = fmt.Errorf("%v: %w", path, err)
		return
	}

	log.WithField("ticks", emu.Ticks()).Debug("halted")

	return
}
