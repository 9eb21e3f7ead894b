package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand/v2"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"
)

// IntentRequest is the create-payment-intent payload
type IntentRequest struct {
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	WalletAddress string `json:"walletAddress"`
}

// IntentResponse is the part of the create-payment-intent answer the test needs
type IntentResponse struct {
	IntentID string `json:"intentId"`
}

// TestResult contains metrics for a single request
type TestResult struct {
	Endpoint     string
	StatusCode   int
	ResponseTime time.Duration
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalTime     time.Duration
	ResponseTimes map[string][]time.Duration
	StatusCounts  map[string]map[int]int
	ErrorCounts   map[string]int
	ScenarioStats map[string]int
	Lock          sync.Mutex
}

// IntentScenario defines a purchase size
type IntentScenario struct {
	Name        string
	AmountCents int64
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of intents to create")
	walletsStr := flag.String("w", "0x2234567890123456789012345678901234567890", "Comma-separated recipient wallets")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	checkStatus := flag.Bool("status", true, "Look up each created intent afterwards")
	flag.Parse()

	wallets := strings.Split(*walletsStr, ",")

	scenarios := []IntentScenario{
		{"Minimum", 50},
		{"Small", 1000},
		{"Medium", 5000},
		{"Large", 25000},
		{"Below minimum", 10},
	}

	fmt.Printf("Load testing %s with %d wallets\n", *baseURL, len(wallets))
	fmt.Printf("Concurrency: %d goroutines, %d intents, %d ms delay\n", *concurrency, *totalRequests, *delayMs)

	stats := &TestStats{
		ResponseTimes: make(map[string][]time.Duration),
		StatusCounts:  make(map[string]map[int]int),
		ErrorCounts:   make(map[string]int),
		ScenarioStats: make(map[string]int),
	}

	results := make(chan TestResult, *totalRequests*2)
	jobs := make(chan int, *totalRequests)

	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(*baseURL, *delayMs, *checkStatus, wallets, scenarios, jobs, results, stats)
		}()
	}

	for i := 0; i < *totalRequests; i++ {
		jobs <- i
	}
	close(jobs)

	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for result := range results {
			stats.record(result)
		}
	}()

	startTime := time.Now()
	wg.Wait()
	close(results)
	<-collected
	stats.TotalTime = time.Since(startTime)

	printResults(stats)
}

func worker(baseURL string, delayMs int, checkStatus bool, wallets []string,
	scenarios []IntentScenario, jobs <-chan int, results chan<- TestResult, stats *TestStats) {

	client := &http.Client{Timeout: 10 * time.Second}

	for range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		scenario := scenarios[rand.IntN(len(scenarios))]
		stats.Lock.Lock()
		stats.ScenarioStats[scenario.Name]++
		stats.Lock.Unlock()

		body, err := json.Marshal(IntentRequest{
			Amount:        scenario.AmountCents,
			Currency:      "usd",
			WalletAddress: strings.TrimSpace(wallets[rand.IntN(len(wallets))]),
		})
		if err != nil {
			results <- TestResult{Endpoint: "create", Error: err}
			continue
		}

		var created IntentResponse
		result := send(client, http.MethodPost, baseURL+"/api/create-payment-intent", body, &created)
		result.Endpoint = "create"
		results <- result

		if !checkStatus || created.IntentID == "" {
			continue
		}
		status := send(client, http.MethodGet, baseURL+"/api/payment/"+created.IntentID, nil, nil)
		status.Endpoint = "status"
		results <- status
	}
}

func send(client *http.Client, method, url string, body []byte, out any) TestResult {
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return TestResult{Error: err}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := client.Do(req)
	result := TestResult{ResponseTime: time.Since(start)}
	if err != nil {
		result.Error = err
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	if resp.StatusCode >= 200 && resp.StatusCode < 300 && out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			result.Error = err
		}
	}
	return result
}

func (s *TestStats) record(r TestResult) {
	s.Lock.Lock()
	defer s.Lock.Unlock()

	if r.Error != nil {
		s.ErrorCounts[r.Error.Error()]++
		return
	}
	if s.StatusCounts[r.Endpoint] == nil {
		s.StatusCounts[r.Endpoint] = make(map[int]int)
	}
	s.StatusCounts[r.Endpoint][r.StatusCode]++
	s.ResponseTimes[r.Endpoint] = append(s.ResponseTimes[r.Endpoint], r.ResponseTime)
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[len(sorted)*p/100]
}

func printResults(stats *TestStats) {
	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Test Time: %.2f seconds\n", stats.TotalTime.Seconds())

	for _, endpoint := range []string{"create", "status"} {
		times := stats.ResponseTimes[endpoint]
		if len(times) == 0 {
			continue
		}
		slices.Sort(times)

		fmt.Printf("\n----------------- %s -----------------\n", strings.ToUpper(endpoint))
		fmt.Printf("Requests: %d (%.2f/s)\n", len(times), float64(len(times))/stats.TotalTime.Seconds())
		fmt.Printf("P50: %v  P90: %v  P99: %v  Max: %v\n",
			percentile(times, 50), percentile(times, 90), percentile(times, 99), times[len(times)-1])

		codes := make([]int, 0, len(stats.StatusCounts[endpoint]))
		for code := range stats.StatusCounts[endpoint] {
			codes = append(codes, code)
		}
		slices.Sort(codes)
		for _, code := range codes {
			label := http.StatusText(code)
			if code == http.StatusTooManyRequests {
				label += " (rate limited)"
			}
			fmt.Printf("  %d %-30s %d\n", code, label, stats.StatusCounts[endpoint][code])
		}
	}

	fmt.Println("\n----------------- SCENARIOS -----------------")
	for name, count := range stats.ScenarioStats {
		fmt.Printf("%-15s: %d\n", name, count)
	}

	if len(stats.ErrorCounts) > 0 {
		fmt.Println("\n----------------- TRANSPORT ERRORS -----------------")
		for msg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d\n", msg, count)
		}
	}
	fmt.Println("================================================")
}
