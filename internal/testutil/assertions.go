package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/busboot/internal/installpolicy"
)

// AssertDecision checks that the endpoint reached the expected installation
// decision.
func AssertDecision(t *testing.T, result *HarnessResult, shouldInstall bool, reason installpolicy.Reason) {
	t.Helper()

	require.NotNil(t, result.App, "endpoint was not built: %v", result.Err)
	got, decided := result.App.Decision()
	require.True(t, decided, "installation policy was not evaluated")
	require.Equal(t, installpolicy.Decision{ShouldInstall: shouldInstall, Reason: reason}, got)
}

// AssertRouteLogged checks that the routing table dump contains the route.
func AssertRouteLogged(t *testing.T, result *HarnessResult, eventType, publisher string) {
	t.Helper()

	expected := fmt.Sprintf("event_type=%s publisher=%s", eventType, publisher)
	require.True(t,
		strings.Contains(result.LogOutput, expected),
		"expected route %s -> %s was not found in logs", eventType, publisher,
	)
}
