// Package statsview runs a local HTTP server offering runtime statistics
// charts of the emulator process.
//
// After launch the charts are available at localhost:18066/debug/statsview
// and the standard pprof endpoints at localhost:18066/debug/pprof/.
package statsview

import (
	"context"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/retroenv/retrogolib/log"
)

// Address is the listen address of the statistics server.
const Address = "localhost:18066"

const url = "/debug/statsview"

// Launch starts the statistics server in a new goroutine. The server is
// stopped when the context is canceled.
func Launch(ctx context.Context, logger *log.Logger) {
	viewer.SetConfiguration(viewer.WithAddr(Address))
	mgr := statsview.New()

	go mgr.Start()
	go func() {
		<-ctx.Done()
		mgr.Stop()
	}()

	logger.Info("Stats server available", log.String("url", "http://"+Address+url))
}
