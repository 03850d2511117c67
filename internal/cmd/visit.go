package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muesli/termenv"
	"github.com/nextcareer/nextcareer/internal/config"
	"github.com/nextcareer/nextcareer/internal/network"
	"github.com/nextcareer/nextcareer/internal/source"
	"github.com/nextcareer/nextcareer/internal/vacancy"
)

var (
	// ErrInterrupted ends a visit the user cancelled; it is not reported.
	ErrInterrupted = errors.New("interrupted")
	errLoadFailed  = errors.New(vacancy.LoadFailedMessage)
)

const proxyBanDuration = 10 * time.Minute

// visit runs one page visit: mount, wait for the fetch to settle, unmount.
// SIGINT or SIGTERM while loading tears the page down without an error message.
func visit(ctx *Context, proxies string) (*vacancy.Page, error) {
	fetcher, err := resolveFetcher(ctx, proxies)
	if err != nil {
		return nil, err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	page := vacancy.NewPage(fetcher, vacancy.NewNormalizer(), ctx.Logger)
	page.Mount(runCtx)

	stopIndicator := startLoadingIndicator(ctx)
	state := page.Wait(runCtx)
	if stopIndicator != nil {
		stopIndicator()
	}
	page.Unmount()

	if runCtx.Err() != nil {
		return page, ErrInterrupted
	}
	if state.Error != "" {
		return page, errLoadFailed
	}
	return page, nil
}

func resolveFetcher(ctx *Context, proxiesFlag string) (vacancy.Fetcher, error) {
	if ctx.Fetcher != nil {
		return ctx.Fetcher, nil
	}

	proxies, err := config.LoadProxies(proxiesFlag)
	if err != nil {
		return nil, err
	}

	var rotator *network.Rotator
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, proxyBanDuration)
		if err != nil {
			return nil, err
		}
	}

	timeout := time.Duration(ctx.Config.TimeoutSeconds) * time.Second
	client, err := network.NewClient(rotator, timeout)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}
	return source.NewAPI(client, ctx.Config.Endpoint, ctx.Logger), nil
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}

func startLoadingIndicator(ctx *Context) func() {
	if ctx == nil || ctx.Err == nil || ctx.UI == nil {
		return nil
	}
	if !isTTY(ctx.Err) {
		return nil
	}

	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		start := time.Now()
		frames := []string{"|", "/", "-", "\\"}
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		index := 0

		for {
			select {
			case <-done:
				fmt.Fprint(ctx.Err, "\r\033[2K")
				return
			case <-ticker.C:
				seconds := int(time.Since(start).Seconds())
				frame := frames[index%len(frames)]
				fmt.Fprintf(ctx.Err, "\r\033[2KMemuat lowongan… %ds %s", seconds, frame)
				index++
			}
		}
	}()

	return func() {
		close(done)
		<-stopped
	}
}
