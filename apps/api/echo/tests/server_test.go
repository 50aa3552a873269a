package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_serverStart(t *testing.T) {
	t.Run("invalid address", func(t *testing.T) {
		app, svcs := setup(t)
		svcs.Conf.Server.Host = "127.0.0.1:-1"
		assert.Error(t, app.Start())
	})

	t.Run("graceful shutdown", func(t *testing.T) {
		app, svcs := setup(t)
		svcs.Conf.Server.Host = "127.0.0.1:0"

		errs := make(chan error, 1)
		go func() { errs <- app.Start() }()
		time.Sleep(20 * time.Millisecond)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, app.Shutdown(ctx))

		select {
		case err := <-errs:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("Start did not return after Shutdown")
		}
	})
}
