//go:build ignore

// Walks the analysis API of a running server:
//
//	API_TOKEN=<jwt> go run scripts/smoke_api.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
)

func baseURL() string {
	if u := os.Getenv("API_BASE_URL"); u != "" {
		return u
	}
	return "http://localhost:3000/api/analysis/v1"
}

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(out.String())
}

// Request helper
func sendRequest(method, path string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL()+path, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := os.Getenv("API_TOKEN"); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func step(title, method, path string, body interface{}) []byte {
	color.Yellow("\n%s", title)
	resp, respBody, err := sendRequest(method, path, body)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if resp.StatusCode >= 300 {
		color.Red("Status: %s", resp.Status)
	} else {
		color.Green("Status: %s", resp.Status)
	}
	prettyPrint(respBody)
	return respBody
}

func main() {
	color.Cyan("Starting analysis API smoke test against %s", baseURL())

	step("1. Enabled rules", http.MethodGet, "/rules", nil)

	body := step("2. Analyze a document", http.MethodPost, "", map[string]interface{}{
		"blocks": []map[string]string{
			{"id": "intro", "content": "<p>The report was written by the team. We met in order to plan the release.</p>"},
		},
	})

	var analyzed struct {
		Data struct {
			Sentences []map[string]interface{} `json:"sentences"`
			Issues    []map[string]interface{} `json:"issues"`
		} `json:"data"`
	}
	_ = json.Unmarshal(body, &analyzed)
	if len(analyzed.Data.Issues) == 0 {
		color.Red("No issues reported; stopping")
		os.Exit(1)
	}
	issue := analyzed.Data.Issues[0]
	idx := int(issue["sentence_index"].(float64))

	step("3. Resolve a suggestion", http.MethodPost, "/suggestion", map[string]interface{}{
		"sentence": analyzed.Data.Sentences[idx],
		"issue":    issue,
	})

	step("4. Accept a rewrite", http.MethodPost, "/suggestion/accept", map[string]string{
		"category": "wordiness",
		"original": "We met in order to plan the release.",
		"revised":  "We met to plan the release.",
	})

	step("5. Quota", http.MethodGet, "/quota", nil)

	color.Cyan("\nDone")
}
