package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

const numWorkers = 50

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

type stateResponse struct {
	Goal          int `json:"goal"`
	Current       int `json:"current"`
	Contributions []struct {
		ID     string `json:"id"`
		Points int    `json:"points"`
	} `json:"contributions"`
}

func main() {
	baseURL := flag.String("url", "http://127.0.0.1:8080", "goalboard base url")
	duration := flag.Duration("duration", 10*time.Second, "length of each phase")
	flag.Parse()

	fmt.Println("=== GoalBoard Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n\n", numWorkers, *duration)

	fmt.Print("Waiting for server... ")
	before, err := waitForState(*baseURL)
	if err != nil {
		fmt.Println("FAILED:", err)
		os.Exit(1)
	}
	fmt.Println("OK")

	var created atomic.Int64

	fmt.Println("\n--- Phase 1: Mixed load (30% add, 70% read) ---")
	runPhase(*duration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.30 {
			r := doAdd(*baseURL)
			if !r.err {
				created.Add(1)
			}
			return r
		}
		return doGet(*baseURL, "/api/state")
	})

	fmt.Println("\n--- Phase 2: Read-heavy load (page + state) ---")
	runPhase(*duration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.5 {
			return doGet(*baseURL, "/")
		}
		return doGet(*baseURL, "/api/state")
	})

	fmt.Println("\n--- Ledger consistency ---")
	after, err := fetchState(*baseURL)
	if err != nil {
		fmt.Println("FAILED:", err)
		os.Exit(1)
	}
	sum := 0
	ids := make(map[string]struct{}, len(after.Contributions))
	for _, c := range after.Contributions {
		sum += c.Points
		ids[c.ID] = struct{}{}
	}
	expectedLen := len(before.Contributions) + int(created.Load())
	fmt.Printf("  contributions: %d (expected %d)\n", len(after.Contributions), expectedLen)
	fmt.Printf("  current: %d (sum of points %d)\n", after.Current, sum)
	fmt.Printf("  unique ids: %d\n", len(ids))
	if len(after.Contributions) != expectedLen || after.Current != sum || len(ids) != len(after.Contributions) {
		fmt.Println("  FAILED")
		os.Exit(1)
	}
	fmt.Println("  OK")
}

func waitForState(baseURL string) (*stateResponse, error) {
	var lastErr error
	for i := 0; i < 30; i++ {
		s, err := fetchState(baseURL)
		if err == nil {
			return s, nil
		}
		lastErr = err
		time.Sleep(200 * time.Millisecond)
	}
	return nil, fmt.Errorf("server not responding: %w", lastErr)
}

func fetchState(baseURL string) (*stateResponse, error) {
	resp, err := httpClient.Get(baseURL + "/api/state")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var s stateResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- workFn(rng)
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-32s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 98))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-32s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	if totalOps == 0 {
		return
	}
	fmt.Println("  " + strings.Repeat("-", 98))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, float64(totalOps)/duration.Seconds())
}

func doAdd(baseURL string) result {
	const name = "POST /api/contributions/random"
	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/api/contributions/random", "application/json", nil)
	lat := time.Since(start)
	if err != nil {
		return result{name, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{name, resp.StatusCode, lat, resp.StatusCode != http.StatusCreated}
}

func doGet(baseURL, path string) result {
	name := "GET " + path
	start := time.Now()
	resp, err := httpClient.Get(baseURL + path)
	lat := time.Since(start)
	if err != nil {
		return result{name, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{name, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
