package wiring_test

import (
	"testing"

	"github.com/grindlemire/graft"
)

// TestGraftDependencies ensures that the dependency injection graph is valid
// at compile/test time. It checks that every node declaring a dependency
// actually uses it, and every used dependency is declared.
//
// The app package is left out of the analyzed set: it imports the module
// root, which the analyzer cannot load with full type information. Its
// single node is exercised end to end by the cmd tests instead.
func TestGraftDependencies(t *testing.T) {
	graft.AssertDepsValid(t, "../adapters")
}
