package ulogger_test

import (
	"testing"

	"github.com/antonilol/mempool/ulogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewGoCoreLogger tests the NewGoCoreLogger constructor
func TestNewGoCoreLogger(t *testing.T) {
	t.Run("with empty service name", func(t *testing.T) {
		logger := ulogger.NewGoCoreLogger("")
		require.NotNil(t, logger)
		// When empty, should default to "mempool"
	})

	t.Run("with service name", func(t *testing.T) {
		logger := ulogger.NewGoCoreLogger("test-service")
		require.NotNil(t, logger)
	})

	t.Run("with custom log level", func(t *testing.T) {
		logger := ulogger.NewGoCoreLogger("test", ulogger.WithLevel("DEBUG"))
		require.NotNil(t, logger)
	})

	t.Run("with multiple options", func(t *testing.T) {
		logger := ulogger.NewGoCoreLogger("test",
			ulogger.WithLevel("ERROR"),
			ulogger.WithSkipFrame(2))
		require.NotNil(t, logger)
	})

	t.Run("with all log levels", func(t *testing.T) {
		levels := []string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}
		for _, level := range levels {
			logger := ulogger.NewGoCoreLogger("test", ulogger.WithLevel(level))
			require.NotNil(t, logger, "level %s", level)
		}
	})
}

func TestGoCoreLogger_New(t *testing.T) {
	parent := ulogger.NewGoCoreLogger("parent", ulogger.WithLevel("WARN"))

	child := parent.New("child")
	require.NotNil(t, child)

	_, ok := child.(*ulogger.GoCoreLogger)
	assert.True(t, ok)
}

func TestGoCoreLogger_Duplicate(t *testing.T) {
	logger := ulogger.NewGoCoreLogger("test", ulogger.WithLevel("INFO"))

	t.Run("no options returns same configuration", func(t *testing.T) {
		dup := logger.Duplicate()
		require.NotNil(t, dup)
	})

	t.Run("with skip frame", func(t *testing.T) {
		dup := logger.Duplicate(ulogger.WithSkipFrame(3))
		require.NotNil(t, dup)
	})
}

func TestGoCoreLogger_SetLogLevel(t *testing.T) {
	logger := ulogger.NewGoCoreLogger("test", ulogger.WithLevel("INFO"))

	// SetLogLevel is a no-op for the gocore backend, just ensure it doesn't panic
	logger.SetLogLevel("DEBUG")
	logger.SetLogLevel("bogus")
}

func TestGoCoreLogger_InterfaceCompliance(t *testing.T) {
	var _ ulogger.Logger = ulogger.NewGoCoreLogger("test")
	var _ ulogger.Logger = &ulogger.GoCoreLogger{}
}
