package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_RejectsDisabledTemporal(t *testing.T) {
	t.Setenv("TEMPORAL_DISABLED", "true")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_DefaultServiceName(t *testing.T) {
	t.Setenv("TEMPORAL_DISABLED", "false")
	t.Setenv("OTEL_SERVICE_NAME", "")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, defaultServiceName, cfg.Observability.ServiceName)
}
