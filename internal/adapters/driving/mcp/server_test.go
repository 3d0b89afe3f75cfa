package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil assistant service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingAssistantService)
	})

	t.Run("valid ports creates server with a session", func(t *testing.T) {
		assistant := &mockAssistantService{}
		server, err := NewServer(&Ports{Assistant: assistant})
		require.NoError(t, err)
		assert.NotNil(t, server)
		assert.NotNil(t, server.Session())
		assert.Equal(t, 1, assistant.sessions)
	})

	t.Run("handler is created", func(t *testing.T) {
		server, err := NewServer(&Ports{Assistant: &mockAssistantService{}})
		require.NoError(t, err)
		assert.NotNil(t, server.Handler())
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil ports returns error", func(t *testing.T) {
		var ports *Ports
		assert.ErrorIs(t, ports.Validate(), ErrInvalidPorts)
	})

	t.Run("missing assistant returns error", func(t *testing.T) {
		assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingAssistantService)
	})

	t.Run("assistant is valid", func(t *testing.T) {
		assert.NoError(t, (&Ports{Assistant: &mockAssistantService{}}).Validate())
	})
}
