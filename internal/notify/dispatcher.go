package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hamed0406/domainwatch/internal/store"
)

// Report summarizes one dispatch. Failed sends are already logged; the
// combined error is kept for callers that want to inspect it, never to
// abort anything.
type Report struct {
	Sent   int
	Failed int
	Err    error
}

// Dispatcher fans one message out to every verified admin. Sends run
// concurrently, each under its own timeout, so one unreachable recipient
// cannot stall the rest. There are no delivery retries: a dropped alert is
// acceptable, a blocked cycle is not.
type Dispatcher struct {
	Logger   *zap.Logger
	Admins   store.AdminStore
	Notifier Notifier
	Timeout  time.Duration
}

func NewDispatcher(logger *zap.Logger, admins store.AdminStore, n Notifier, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{Logger: logger, Admins: admins, Notifier: n, Timeout: timeout}
}

func (d *Dispatcher) Dispatch(ctx context.Context, text string) Report {
	admins, err := d.Admins.List(ctx)
	if err != nil {
		d.Logger.Error("dispatch_list_admins_error", zap.Error(err))
		return Report{Err: err}
	}
	if len(admins) == 0 {
		d.Logger.Warn("dispatch_no_admins")
		return Report{}
	}

	var (
		mu  sync.Mutex
		rep Report
		wg  sync.WaitGroup
	)
	for _, a := range admins {
		a := a
		wg.Add(1)
		go func() {
			defer wg.Done()
			sctx, cancel := context.WithTimeout(ctx, d.Timeout)
			defer cancel()

			err := d.Notifier.Send(sctx, a.ChatID, text)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				rep.Failed++
				rep.Err = multierr.Append(rep.Err, err)
				d.Logger.Error("dispatch_send_error",
					zap.String("phone", a.Phone),
					zap.Int64("chat_id", a.ChatID),
					zap.Error(err),
				)
				return
			}
			rep.Sent++
		}()
	}
	wg.Wait()

	d.Logger.Info("dispatch_done", zap.Int("sent", rep.Sent), zap.Int("failed", rep.Failed))
	return rep
}
