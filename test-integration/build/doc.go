// Package integration provides end-to-end tests for the catalog builder.
// Each test lays down a complete source tree, runs a full build pass in
// process, and inspects the emitted document set.
package integration
