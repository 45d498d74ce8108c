package worker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kartavantaj/kampanya/internal/pipeline"
)

func TestPool_PreservesInputOrder(t *testing.T) {
	p := pipeline.New(pipeline.Options{})
	pool := NewPool(p, 4)

	campaigns := []Campaign{
		{ID: "a", Title: "Akaryakıt kampanyası", Text: "1500 TL ve üzeri harcamanıza 150 TL chip-para"},
		{ID: "b", Title: "Market kampanyası", Text: "500 TL üzeri market alışverişine 50 TL bonus"},
		{ID: "c", Title: "Sürpriz", Text: "Detaylar yakında"},
	}

	results := pool.Process(context.Background(), campaigns)
	if len(results) != len(campaigns) {
		t.Fatalf("Expected %d results, got %d", len(campaigns), len(results))
	}
	for i, r := range results {
		if r.Campaign.ID != campaigns[i].ID {
			t.Errorf("Result %d: expected campaign %s, got %s", i, campaigns[i].ID, r.Campaign.ID)
		}
		if r.Err != nil {
			t.Errorf("Campaign %s: unexpected error %v", r.Campaign.ID, r.Err)
		}
		if r.Record == nil {
			t.Errorf("Campaign %s: missing record", r.Campaign.ID)
		}
	}
}

func TestPool_CancelledContext(t *testing.T) {
	p := pipeline.New(pipeline.Options{})
	pool := NewPool(p, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := pool.Process(ctx, []Campaign{{ID: "a", Title: "t", Text: "x"}})
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Err == nil {
		t.Error("Expected context error for cancelled run")
	}
}

func TestReadCampaignsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campaigns.jsonl")
	content := `# comment line
{"id": "opet-1", "title": "Opet kampanyası", "text": "1500 TL ve üzeri"}

{"title": "Market", "text": "500 TL bonus"}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	campaigns, err := ReadCampaignsFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(campaigns) != 2 {
		t.Fatalf("Expected 2 campaigns, got %d", len(campaigns))
	}
	if campaigns[0].ID != "opet-1" {
		t.Errorf("Expected explicit id kept, got %q", campaigns[0].ID)
	}
	if campaigns[1].ID != "campaign-4" {
		t.Errorf("Expected generated id from line number, got %q", campaigns[1].ID)
	}
}

func TestReadCampaignsFile_MalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	if err := os.WriteFile(path, []byte("{not json}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadCampaignsFile(path); err == nil {
		t.Error("Expected error for malformed line")
	}
}

func TestReadCampaignsFile_EmptyCampaign(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.jsonl")
	if err := os.WriteFile(path, []byte(`{"id": "x"}`+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadCampaignsFile(path); err == nil {
		t.Error("Expected error for campaign without title or text")
	}
}
