//go:build mage

// Package main provides build targets for the collatz project using Mage.
//
// Usage:
//
//	mage build       Compile the collatz binary to bin/
//	mage test:all    Run every test with the race detector
//	mage test:unit   Run the tests of one package tree (PKG, default ./...)
//	mage test:cover  Write a coverage profile to bin/coverage.out
//	mage lint        Run go vet and golangci-lint
//	mage clean       Remove build artifacts
//	mage install     Install collatz to GOPATH/bin
//	mage stats       Print Go LOC and documentation word counts
package main
