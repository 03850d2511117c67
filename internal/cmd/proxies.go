package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/nextcareer/nextcareer/internal/config"
	"github.com/nextcareer/nextcareer/internal/network"
	"github.com/nextcareer/nextcareer/internal/source"
)

type ProxiesCmd struct {
	Check ProxyCheckCmd `cmd:"" help:"Fetch the listing endpoint through each configured proxy."`
}

type ProxyCheckCmd struct {
	Target  string `help:"Endpoint to fetch (default: configured endpoint)."`
	Timeout int    `help:"Timeout in seconds." default:"15"`
}

type ProxyCheckResult struct {
	Proxy     string `json:"proxy"`
	Status    string `json:"status"`
	Records   int    `json:"records"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

func (p *ProxyCheckCmd) Run(ctx *Context) error {
	proxies, err := config.LoadProxies("")
	if err != nil {
		return err
	}
	if len(proxies) == 0 {
		return fmt.Errorf("no proxies configured")
	}

	target := firstNonEmpty(p.Target, ctx.Config.Endpoint)
	timeout := time.Duration(p.Timeout) * time.Second

	results := make([]ProxyCheckResult, 0, len(proxies))
	for _, proxy := range proxies {
		results = append(results, checkProxy(ctx, proxy, target, timeout))
	}
	return writeProxyResults(ctx, results)
}

func checkProxy(ctx *Context, proxy, target string, timeout time.Duration) ProxyCheckResult {
	result := ProxyCheckResult{Proxy: proxy, Status: "error"}

	rotator, err := network.NewRotator([]string{proxy}, proxyBanDuration)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	client, err := network.NewClient(rotator, timeout)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	records, err := source.NewAPI(client, target, ctx.Logger).Fetch(reqCtx)
	result.LatencyMS = time.Since(start).Milliseconds()
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Status = "ok"
	result.Records = len(records)
	return result
}

func writeProxyResults(ctx *Context, results []ProxyCheckResult) error {
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if ctx.PlainText {
		for _, res := range results {
			line := []string{res.Proxy, res.Status, fmt.Sprintf("%d", res.Records), fmt.Sprintf("%d", res.LatencyMS), res.Error}
			fmt.Fprintln(ctx.Out, strings.Join(line, "\t"))
		}
		return nil
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "proxy\tstatus\trecords\tlatency_ms\terror")
	for _, res := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", res.Proxy, res.Status, res.Records, res.LatencyMS, res.Error)
	}
	return tw.Flush()
}
