//go:build mage

// Package main provides build targets for reviewdash using Mage.
//
// Usage:
//
//	mage build      Compile the reviewdash binary to bin/
//	mage test       Run all tests
//	mage testRace   Run all tests with the race detector
//	mage vet        Run go vet
//	mage lint       Run golangci-lint
//	mage serve      Build and serve the dashboard for $REVIEWDASH_INPUT
//	mage clean      Remove build artifacts
//	mage install    Install reviewdash to GOPATH/bin
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binLint    = "golangci-lint"
	binaryName = "reviewdash"
	binaryDir  = "bin"
	cmdDir     = "./cmd/reviewdash"
)

// Build compiles the reviewdash binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// TestRace runs all tests with the race detector. The server tests exercise
// concurrent requests against one shared session.
func TestRace() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Vet runs go vet.
func Vet() error {
	return sh.RunV(binGo, "vet", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	mg.Deps(Vet)
	return sh.RunV(binLint, "run", "./...")
}

// Serve builds the binary and serves the dashboard for the CSV named by
// REVIEWDASH_INPUT.
func Serve() error {
	mg.Deps(Build)
	if os.Getenv("REVIEWDASH_INPUT") == "" {
		return fmt.Errorf("set REVIEWDASH_INPUT to a review CSV")
	}
	return sh.RunV(filepath.Join(binaryDir, binaryName), "serve")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
