//go:build stave

package main

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target when running `stave` with no arguments.
var Default = All

// Aliases for common targets.
var Aliases = map[string]interface{}{
	"b": Build,
	"t": Test,
	"l": Lint,
	"c": Clean,
}

var binaries = []string{"plt2csv", "fixtiers"}

// All runs vet, tests and the build.
func All() error {
	st.SerialDeps(Vet, Test)
	st.Deps(Build)
	return nil
}

// Build compiles plt2csv and fixtiers into bin/.
func Build() error {
	st.Deps(Build_Plt2csv, Build_Fixtiers)
	return nil
}

// Build_Plt2csv compiles bin/plt2csv.
func Build_Plt2csv() error {
	return buildBinary("plt2csv")
}

// Build_Fixtiers compiles bin/fixtiers.
func Build_Fixtiers() error {
	return buildBinary("fixtiers")
}

func buildBinary(name string) error {
	out := "bin/" + name
	rebuild, err := target.Glob(out, "**/*.go", "go.mod", "go.sum")
	if err != nil {
		return fmt.Errorf("checking rebuild: %w", err)
	}
	if !rebuild {
		if st.Verbose() {
			fmt.Printf("%s is up to date\n", name)
		}
		return nil
	}
	return sh.RunV(st.GoCmd(), "build", "-ldflags", ldflags(), "-o", out, "./cmd/"+name)
}

func ldflags() string {
	version, _ := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	commit, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		strings.TrimSpace(version),
		strings.TrimSpace(commit),
		time.Now().Format(time.RFC3339),
	)
}

// Test runs all tests with race detection and coverage.
func Test() error {
	return sh.RunV(st.GoCmd(), "test", "-race", "-cover", "./...")
}

// Vet runs go vet on all packages.
func Vet() error {
	return sh.RunV(st.GoCmd(), "vet", "./...")
}

// Lint runs golangci-lint on the codebase.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func Fmt() error {
	return sh.Run("gofmt", "-w", ".")
}

// Clean removes build artifacts.
func Clean() error {
	return sh.Rm("bin/")
}

// Install copies the binaries to GOBIN.
func Install() error {
	st.Deps(Build)

	gocmd := st.GoCmd()
	bin, err := sh.Output(gocmd, "env", "GOBIN")
	if err != nil {
		return fmt.Errorf("determining GOBIN: %w", err)
	}
	if bin == "" {
		gopath, err := sh.Output(gocmd, "env", "GOPATH")
		if err != nil {
			return fmt.Errorf("determining GOPATH: %w", err)
		}
		bin = gopath + "/bin"
	}
	for _, name := range binaries {
		dst := bin + "/" + name
		if runtime.GOOS == "windows" {
			dst += ".exe"
		}
		if err := sh.Copy(dst, "bin/"+name); err != nil {
			return fmt.Errorf("installing %s: %w", name, err)
		}
	}
	return nil
}

// Fuzz namespace for fuzzing targets.
type Fuzz st.Namespace

// Order fuzzes the tier-order parser for 30 seconds.
func (Fuzz) Order() error {
	return sh.RunV(st.GoCmd(), "test", "-run", "^$", "-fuzz", "FuzzParseOrder", "-fuzztime", "30s", "./pkg/tiers")
}

// TextGrid fuzzes the TextGrid tokenizer for 30 seconds.
func (Fuzz) TextGrid() error {
	return sh.RunV(st.GoCmd(), "test", "-run", "^$", "-fuzz", "FuzzTextGridTokenizer", "-fuzztime", "30s", "./internal/tokenizer")
}
