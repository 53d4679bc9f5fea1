// Command bench fires concurrent queries at a running API instance and
// reports per-request and aggregate latency. Provider latency dominates, so
// concurrent requests should finish in roughly the time of the slowest one,
// not the sum.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

func main() {
	endpoint := flag.String("endpoint", "http://127.0.0.1:8080/v1/query", "query endpoint URL")
	requests := flag.Int("n", 10, "number of concurrent requests")
	question := flag.String("question", "What does ShopifyAudit do?", "question to ask")
	maxResults := flag.Int("k", 3, "max_results per query")
	timeout := flag.Duration("timeout", 60*time.Second, "per-request timeout")
	flag.Parse()

	payload, err := json.Marshal(map[string]any{
		"question":    *question,
		"max_results": *maxResults,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal payload: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("benchmark: %d concurrent requests to %s\n", *requests, *endpoint)
	fmt.Printf("question: %s\n\n", *question)

	client := &http.Client{Timeout: *timeout}
	timings := make([]time.Duration, *requests)
	failures := make([]error, *requests)

	totalStart := time.Now()
	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < *requests; i++ {
		i := i
		g.Go(func() error {
			start := time.Now()
			failures[i] = fetchOne(ctx, client, *endpoint, payload)
			timings[i] = time.Since(start)
			// Individual failures are reported, not fatal.
			return nil
		})
	}
	_ = g.Wait()
	totalElapsed := time.Since(totalStart)

	var ok int
	var succeeded []time.Duration
	for i := range timings {
		if failures[i] != nil {
			fmt.Printf("  request %2d: FAILED (%v)\n", i+1, failures[i])
			continue
		}
		ok++
		succeeded = append(succeeded, timings[i])
		fmt.Printf("  request %2d: %.2fs\n", i+1, timings[i].Seconds())
	}

	fmt.Printf("\nsuccessful: %d/%d\n", ok, *requests)
	fmt.Printf("total wall time: %.2fs\n", totalElapsed.Seconds())
	if len(succeeded) > 0 {
		sort.Slice(succeeded, func(i, j int) bool { return succeeded[i] < succeeded[j] })
		var sum time.Duration
		for _, d := range succeeded {
			sum += d
		}
		fmt.Printf("avg: %.2fs  min: %.2fs  max: %.2fs\n",
			(sum / time.Duration(len(succeeded))).Seconds(),
			succeeded[0].Seconds(),
			succeeded[len(succeeded)-1].Seconds(),
		)
	}
	if ok == 0 {
		os.Exit(1)
	}
}

func fetchOne(ctx context.Context, client *http.Client, endpoint string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var body struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return nil
}
