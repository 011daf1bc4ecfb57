// Package loop runs a simulation server and a single terminal client in one
// process.
package loop

import (
	"bufio"
	"context"
	"io"

	"github.com/tomz197/newton/internal/loop/client"
	"github.com/tomz197/newton/internal/loop/server"
	"golang.org/x/sync/errgroup"
)

// Options configures a local run.
type Options struct {
	Server server.Options
	Client client.ClientOptions
}

// Run starts the server and a client reading r and drawing to w.
// It returns when the viewer quits. Cancelling ctx shows the shutdown
// screen to the viewer first.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	srv, err := server.New(opts.Server)
	if err != nil {
		return err
	}

	simCtx, stop := context.WithCancel(context.Background())
	defer stop()

	var g errgroup.Group
	g.Go(func() error {
		srv.Run(simCtx)
		return nil
	})
	g.Go(func() error {
		defer stop()
		return client.NewClient(srv, r, w, opts.Client).Run()
	})
	g.Go(func() error {
		select {
		case <-ctx.Done():
			srv.Shutdown(0)
		case <-simCtx.Done():
		}
		return nil
	})
	return g.Wait()
}
