package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	rerr "github.com/msto63/relativity/foundation/core/error"
	"github.com/msto63/relativity/internal/report"
	"github.com/msto63/relativity/pkg/core/health"
)

func newStatusCmd(a *app) *cobra.Command {
	var (
		addr    string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the health of a running API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Server.Address()
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			rep, err := fetchHealth(ctx, "http://"+addr+"/health")
			if err != nil {
				return rerr.Wrap(err, "server at "+addr+" is not reachable").WithCode(rerr.CodeUnknown)
			}

			b := report.Block{Title: fmt.Sprintf("%s %s", rep.Service, rep.Version)}
			b.Add("status", string(rep.Status), "").
				Add("uptime", rep.Uptime.Round(time.Second).String(), "")
			for _, c := range rep.Checks {
				line := string(c.Status)
				if c.Message != "" {
					line += " - " + c.Message
				}
				b.Add(c.Name, line, "")
			}
			a.print(cmd, b)
			if rep.Status != health.StatusHealthy {
				return rerr.Newf("server is %s", rep.Status).WithCode(rerr.CodeUnknown)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "server host:port (default from config)")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "request timeout")
	return cmd
}

func fetchHealth(ctx context.Context, url string) (*health.Report, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var rep health.Report
	if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
		return nil, fmt.Errorf("decode health report (HTTP %d): %w", resp.StatusCode, err)
	}
	return &rep, nil
}
