// Command sinkproof hashes and verifies passwords with the Sinkproof
// scheme.  It is a thin front end over the hashing package: all state
// lives in the record text printed to stdout, and persistence is the
// caller's business.
//
// Usage:
//
//	sinkproof hash [--threads=N] [--memory=MB]
//	sinkproof verify <record>
//	sinkproof info <record>
//
// The password is read from the SINKPROOF_PASSWORD environment variable
// if set, otherwise prompted for without echo.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/sinkproof/sinkproof/hashing"
)

// PasswordEnvVar overrides the interactive prompt, for scripted use.
const PasswordEnvVar = "SINKPROOF_PASSWORD"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		printUsage()
		return fmt.Errorf("no command specified")
	}

	switch cmd := os.Args[1]; cmd {
	case "hash":
		return runHash(os.Args[2:])
	case "verify":
		return runVerify(os.Args[2:])
	case "info":
		return runInfo(os.Args[2:])
	case "help", "--help", "-h":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runHash(args []string) error {
	threads := hashing.DefaultSinkproofThreads
	memoryMB := hashing.DefaultSinkproofMemoryMB

	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "--threads="):
			v, err := strconv.Atoi(strings.TrimPrefix(arg, "--threads="))
			if err != nil {
				return fmt.Errorf("invalid threads value: %w", err)
			}
			threads = v
		case strings.HasPrefix(arg, "--memory="):
			v, err := strconv.Atoi(strings.TrimPrefix(arg, "--memory="))
			if err != nil {
				return fmt.Errorf("invalid memory value: %w", err)
			}
			memoryMB = v
		default:
			return fmt.Errorf("unknown flag %q", arg)
		}
	}

	password, err := getPassword("Password: ", true)
	if err != nil {
		return err
	}

	start := time.Now()
	rec, err := hashing.Hash(password, threads, memoryMB)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "hashed in %v (%d threads × %d MB)\n",
		time.Since(start).Round(time.Millisecond), threads, memoryMB)

	fmt.Println(rec.String())
	return nil
}

func runVerify(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("verify expects exactly one record argument")
	}

	password, err := getPassword("Password: ", false)
	if err != nil {
		return err
	}

	ok, err := hashing.Verify(password, args[0])
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("password incorrect")
		os.Exit(2)
	}
	fmt.Println("password correct")
	return nil
}

func runInfo(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("info expects exactly one record argument")
	}

	rec, err := hashing.ParseRecord(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("version:   %s\nthreads:   %d\nmemory_mb: %d\nsalt:      %d bytes\nsealed:    %d bytes\n",
		rec.Version, rec.Threads, rec.MemoryMB, len(rec.Salt), len(rec.Ciphertext))
	return nil
}

// getPassword reads the password from the environment or, failing that,
// prompts on the terminal without echo.  When confirm is set the password
// must be entered twice.
func getPassword(prompt string, confirm bool) (string, error) {
	if env := os.Getenv(PasswordEnvVar); env != "" {
		return env, nil
	}

	password, err := readPassword(prompt)
	if err != nil {
		return "", err
	}
	if confirm {
		again, err := readPassword("Confirm password: ")
		if err != nil {
			return "", err
		}
		if password != again {
			return "", fmt.Errorf("passwords do not match")
		}
	}
	return password, nil
}

func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("stdin is not a terminal; set %s instead", PasswordEnvVar)
	}
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(b), nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `sinkproof - memory-hard password hashing

Usage:
  sinkproof hash [--threads=N] [--memory=MB]   hash a password, print the record
  sinkproof verify <record>                    verify a password against a record
  sinkproof info <record>                      show the parameters of a record

The password is read from $%s if set, otherwise prompted.
`, PasswordEnvVar)
}
