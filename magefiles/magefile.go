//go:build mage

// Package main provides build targets for the dryrack project using Mage.
//
// Usage:
//
//	mage build             Compile dryrack binary to bin/
//	mage test:all          Run all tests (unit + integration)
//	mage test:unit         Run only unit tests (exclude integration)
//	mage test:integration  Run only integration tests (builds first)
//	mage test:redis        Run the redis backend tests against a container
//	mage lint              Run golangci-lint
//	mage clean             Remove build artifacts
//	mage install           Install dryrack to GOPATH/bin
//	mage stats             Print per-package Go LOC and Markdown word counts
package main

const (
	binGo      = "go"
	binaryName = "dryrack"
	binaryDir  = "bin"
	cmdDir     = "./cmd/dryrack"

	// versionVar is the linker path of the version string.
	versionVar = "github.com/mesh-intelligence/dryrack/internal/cli.Version"
)
