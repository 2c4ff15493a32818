package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
)

// Environment of the extensions, set from the global flags.
const (
	EnvConfigFile  = "RPA_CONFIG"
	EnvDataFile    = "RPA_DATA_FILE"
	EnvSavingsFile = "RPA_SAVINGS_FILE"
	EnvVerbose     = "RPA_VERBOSE"
)

// RunExtension attempts to find and execute an external rpa-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	return runExtension(os.Stdin, os.Stdout, os.Stderr, subcommand, args)
}

func runExtension(stdin io.Reader, stdout, stderr io.Writer, subcommand string, args []string) (bool, int) {
	name := "rpa-" + subcommand
	log := Logger()

	lp, err := exec.LookPath(name)
	if err != nil {
		log.Debug().Err(err).Str("extension", name).Msg("extension not found")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	// global flags are passed as environment variables.
	cmd.Env = append(os.Environ(),
		EnvConfigFile+"="+*configFile,
		EnvDataFile+"="+*dataFile,
		EnvSavingsFile+"="+*savingsFile,
		EnvVerbose+"="+strconv.FormatBool(*Verbose),
	)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	log.Debug().Str("extension", name).Msg("extension done")
	return true, 0
}

