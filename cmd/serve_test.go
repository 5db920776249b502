//go:build !integration

package main

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownServer_DrainsInFlightRequests(t *testing.T) {
	started := make(chan struct{})
	srv := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			close(started)
			time.Sleep(100 * time.Millisecond)
			fmt.Fprint(w, "done")
		}),
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go srv.Serve(ln) //nolint:errcheck

	type response struct {
		body string
		err  error
	}
	respCh := make(chan response, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String())
		if err != nil {
			respCh <- response{err: err}
			return
		}
		defer resp.Body.Close() //nolint:errcheck
		body, err := io.ReadAll(resp.Body)
		respCh <- response{body: string(body), err: err}
	}()

	// Shut down while the request is still being handled; the fresh
	// deadline must let it finish instead of cutting it off.
	<-started
	shutdownServer(srv, 5*time.Second)

	select {
	case resp := <-respCh:
		require.NoError(t, resp.err)
		assert.Equal(t, "done", resp.body)
	case <-time.After(5 * time.Second):
		t.Fatal("in-flight request never completed")
	}
}

func TestShutdownServer_ExpiredGraceStillReturns(t *testing.T) {
	srv := &http.Server{Handler: http.NotFoundHandler()}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go srv.Serve(ln) //nolint:errcheck

	done := make(chan struct{})
	go func() {
		shutdownServer(srv, time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown did not return")
	}
}
