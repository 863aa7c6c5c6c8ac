package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/busboot/internal/app"
)

func TestParse(t *testing.T) {
	hostname = func() (string, error) { return "build-agent-01", nil }

	testCases := []struct {
		name           string
		args           []string
		environ        []string
		expectExit     bool
		expectErr      bool
		errContains    string
		expectedConfig *app.Config
		checkOutput    func(t *testing.T, output string)
	}{
		{
			name: "Happy path with all flags",
			args: []string{
				"-c", "/etc/busboot",
				"--config=/etc/extra.yaml",
				"--endpoint=Samples.Sales",
				"--machine-name=APP-DEV",
				"--log-level=debug",
				"--log-format=json",
				"--dry-run",
				"--route-manifest=/var/lib/routes.yaml",
				"/runInstallers",
			},
			expectedConfig: &app.Config{
				ConfigPaths:   []string{"/etc/busboot", "/etc/extra.yaml"},
				Endpoint:      "Samples.Sales",
				MachineName:   "APP-DEV",
				Arguments:     []string{"/runInstallers"},
				LogFormat:     "json",
				LogLevel:      "debug",
				DryRun:        true,
				RouteManifest: "/var/lib/routes.yaml",
			},
		},
		{
			name: "Defaults and host name",
			args: []string{"-c", "cfg"},
			expectedConfig: &app.Config{
				ConfigPaths: []string{"cfg"},
				MachineName: "build-agent-01",
				Arguments:   []string{},
				LogFormat:   "text",
				LogLevel:    "info",
			},
		},
		{
			name:    "Environment supplies defaults",
			args:    []string{"/runInstallers", "extra"},
			environ: []string{"BUSBOOT_CONFIG=a.hcl,b.yaml", "BUSBOOT_LOG_LEVEL=WARN", "BUSBOOT_MACHINE_NAME=APP-PROD", "BUSBOOT_DRY_RUN=true"},
			expectedConfig: &app.Config{
				ConfigPaths: []string{"a.hcl", "b.yaml"},
				MachineName: "APP-PROD",
				Arguments:   []string{"/runInstallers", "extra"},
				LogFormat:   "text",
				LogLevel:    "warn",
				DryRun:      true,
			},
		},
		{
			name:    "Flags override environment",
			args:    []string{"--log-level=error", "--endpoint=Billing"},
			environ: []string{"BUSBOOT_LOG_LEVEL=debug", "BUSBOOT_ENDPOINT=Sales"},
			expectedConfig: &app.Config{
				Endpoint:    "Billing",
				MachineName: "build-agent-01",
				Arguments:   []string{},
				LogFormat:   "text",
				LogLevel:    "error",
			},
		},
		{
			name:       "Help flag",
			args:       []string{"-h"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "Usage:")
				assert.Contains(t, output, "--route-manifest")
			},
		},
		{
			name:        "Unknown flag",
			args:        []string{"--bogus"},
			expectErr:   true,
			errContains: "unknown flag: --bogus",
		},
		{
			name:        "Invalid log level",
			args:        []string{"-c", "cfg", "--log-level=verbose"},
			expectErr:   true,
			errContains: "invalid log level",
		},
		{
			name:        "Invalid log format",
			args:        []string{"-c", "cfg", "--log-format=xml"},
			expectErr:   true,
			errContains: "invalid log format",
		},
		{
			name:        "Nothing to configure",
			args:        []string{},
			expectErr:   true,
			errContains: "either a configuration path or an endpoint name is required",
		},
		{
			name:        "Invalid environment value",
			args:        []string{"-c", "cfg"},
			environ:     []string{"BUSBOOT_DRY_RUN=perhaps"},
			expectErr:   true,
			errContains: "invalid environment",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			cfg, shouldExit, err := Parse(tc.args, tc.environ, &out)

			if tc.expectErr {
				require.Error(t, err)
				var exitErr *ExitError
				require.True(t, errors.As(err, &exitErr))
				assert.Equal(t, 2, exitErr.Code)
				assert.Contains(t, err.Error(), tc.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectExit, shouldExit)
			if tc.checkOutput != nil {
				tc.checkOutput(t, out.String())
			}
			if tc.expectedConfig != nil {
				if diff := cmp.Diff(tc.expectedConfig, cfg); diff != "" {
					t.Errorf("config mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestParse_HostnameFailure(t *testing.T) {
	hostname = func() (string, error) { return "", errors.New("no uts namespace") }
	t.Cleanup(func() { hostname = func() (string, error) { return "build-agent-01", nil } })

	_, _, err := Parse([]string{"-c", "cfg"}, nil, &bytes.Buffer{})
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.Code)
}
