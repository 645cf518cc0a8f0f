package logging

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quillfeed/quillfeed/config"
)

func TestNew(t *testing.T) {
	logger, err := New(config.LoggingConfig{Level: "debug", Format: "text"})
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger, err = New(config.LoggingConfig{})
	require.NoError(t, err)
	require.NotNil(t, logger)

	_, err = New(config.LoggingConfig{Level: "verbose"})
	require.Error(t, err)

	_, err = New(config.LoggingConfig{Format: "xml"})
	require.Error(t, err)
}
