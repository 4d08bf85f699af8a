package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServeCmd_Flags(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "port flag should exist")
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPServeCmd_Help(t *testing.T) {
	assert.Contains(t, mcpServeCmd.Long, "list_categories")
	assert.Contains(t, mcpServeCmd.Long, "catalog://categories/{category}/services")
}

func TestMCPServeCmd_NotConfigured(t *testing.T) {
	cleanup := setupTestServices(&mockLoader{catalog: testCatalog()})
	defer cleanup()
	SetFactory(nil)

	_, err := execute("mcp", "serve")

	assert.ErrorIs(t, err, ErrNotConfigured)
}
