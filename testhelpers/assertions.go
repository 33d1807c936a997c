package testhelpers

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// AssertionManager binds assertions to a test so subjects can be checked without passing t around.
type AssertionManager struct {
	testObject *testing.T
}

func NewAssertionManager(testObject *testing.T) AssertionManager {
	return AssertionManager{
		testObject: testObject,
	}
}

func (a AssertionManager) Equal(actual, expected interface{}) {
	a.testObject.Helper()

	if diff := cmp.Diff(actual, expected); diff != "" {
		a.testObject.Fatal(diff)
	}
}

func (a AssertionManager) Nil(actual interface{}) {
	a.testObject.Helper()

	if !isNil(actual) {
		a.testObject.Fatalf("expected nil: %v", actual)
	}
}

func (a AssertionManager) Contains(actual, expected string) {
	a.testObject.Helper()

	if !strings.Contains(actual, expected) {
		a.testObject.Fatalf(
			"Expected '%s' to contain '%s'\n\nDiff:%s",
			actual,
			expected,
			cmp.Diff(expected, actual),
		)
	}
}

func (a AssertionManager) ErrorContains(actual error, expected string) {
	a.testObject.Helper()

	if actual == nil {
		a.testObject.Fatalf("Expected an error containing %q but got nil", expected)
	}

	a.Contains(actual.Error(), expected)
}
