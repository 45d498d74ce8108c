package worker

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ReadCampaignsFile reads campaigns from a JSON-lines file: one JSON
// object per line with "title" and "text" fields, optionally "id".
// Empty lines and #-comments are skipped.
func ReadCampaignsFile(path string) ([]Campaign, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var campaigns []Campaign

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var c Campaign
		if err := json.Unmarshal([]byte(line), &c); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if c.Title == "" && c.Text == "" {
			return nil, fmt.Errorf("line %d: campaign has neither title nor text", lineNo)
		}
		if c.ID == "" {
			c.ID = fmt.Sprintf("campaign-%d", lineNo)
		}
		campaigns = append(campaigns, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return campaigns, nil
}
