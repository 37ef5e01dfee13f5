package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/clawctl/internal/logger"
	"github.com/openclaw/clawctl/pkg/types"
)

func TestGatewayArgs(t *testing.T) {
	spec := CommandSpec{
		Runner: "npx",
		Args:   []string{"openclaw", "gateway", "run"},
		Port:   18788,
	}

	args := gatewayArgs(spec)
	assert.Equal(t, []string{"openclaw", "gateway", "run", "--port", "18788", "--verbose"}, args)
}

func TestGatewayArgs_DoesNotMutateSpec(t *testing.T) {
	spec := CommandSpec{
		Runner: "npx",
		Args:   []string{"openclaw", "gateway", "run"},
		Port:   18789,
	}

	_ = gatewayArgs(spec)
	assert.Equal(t, []string{"openclaw", "gateway", "run"}, spec.Args)
}

func TestLaunch_UnknownMethod(t *testing.T) {
	launcher := NewExecLauncher(&logger.NopLogger{})

	_, err := launcher.Launch(context.Background(), types.LaunchMethod("tray"), CommandSpec{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tray")
}
