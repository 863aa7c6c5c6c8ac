package yamlconf

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/busboot/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "endpoint.yaml", `
endpoint: Samples.Sales
installers:
  combine: all
  rules:
    - kind: machine_name
      excluded_suffix: -PROD
    - kind: group_membership
      user: MyUser
      domain: MyDomain
      excluded_group: ProdGroup
directories:
  - domain: MyDomain
    timeout: 250ms
    members:
      MyUser: [Other]
publishers:
  - event: Sales.OrderPlaced
    endpoint: Sales
`)
	writeFile(t, dir, "more.yml", `
publishers:
  - event: Core.SomethingHappened
    endpoint: PublisherEndpoint
`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, "Samples.Sales", model.Endpoint)
	require.NotNil(t, model.Installers)
	assert.Equal(t, []*config.Rule{
		{Kind: config.RuleMachineName, ExcludedSuffix: "-PROD"},
		{Kind: config.RuleGroupMembership, User: "MyUser", Domain: "MyDomain", ExcludedGroup: "ProdGroup"},
	}, model.Installers.Rules)
	assert.Equal(t, 250*time.Millisecond, model.Directories["MyDomain"].Timeout)
	assert.Equal(t, []string{"Other"}, model.Directories["MyDomain"].Members["MyUser"])
	assert.Len(t, model.Publishers, 2)
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.yaml", "")

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, model.Publishers)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "unknown field", content: "subscribers: []", errMsg: "failed to decode YAML file"},
		{name: "malformed", content: "publishers: [", errMsg: "failed to decode YAML file"},
		{name: "bad timeout", content: "directories:\n  - domain: D\n    timeout: later", errMsg: `directory "D": invalid timeout`},
		{name: "missing domain", content: "directories:\n  - timeout: 1s", errMsg: "directory entry without domain"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "bad.yaml", tc.content)
			_, err := NewLoader().Load(context.Background(), dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}
