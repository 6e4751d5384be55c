package api

import (
	"fmt"
	"sync"
	"testing"

	"github.com/lifescore/lifescore/internal/intake"
)

func file(name string) *intake.ReportFile {
	return &intake.ReportFile{Name: name, ContentType: "application/json", Data: []byte("{}")}
}

func TestReportCache_GetPut(t *testing.T) {
	c := NewReportCache(3)

	f := file("diagnostic-adult-1.json")
	c.Put("sub1", "json", f)

	got := c.Get("sub1", "json")
	if got != f {
		t.Fatal("expected cached report")
	}
	if c.Get("sub1", "markdown") != nil {
		t.Error("formats are cached separately")
	}
	if c.Get("nonexistent", "json") != nil {
		t.Error("expected nil for missing key")
	}
}

func TestReportCache_Eviction(t *testing.T) {
	c := NewReportCache(2)

	c.Put("a", "json", file("a"))
	c.Put("b", "json", file("b"))
	c.Put("c", "json", file("c")) // should evict "a"

	if c.Get("a", "json") != nil {
		t.Error("expected 'a' to be evicted")
	}
	if c.Get("b", "json") == nil {
		t.Error("expected 'b' to be present")
	}
	if c.Get("c", "json") == nil {
		t.Error("expected 'c' to be present")
	}
}

func TestReportCache_LRUOrder(t *testing.T) {
	c := NewReportCache(2)

	c.Put("a", "json", file("a"))
	c.Put("b", "json", file("b"))

	// Access "a" to make it most recently used
	c.Get("a", "json")

	c.Put("c", "json", file("c")) // should evict "b" (least recently used)

	if c.Get("a", "json") == nil {
		t.Error("expected 'a' to be present (recently accessed)")
	}
	if c.Get("b", "json") != nil {
		t.Error("expected 'b' to be evicted")
	}
}

func TestReportCache_UpdateExisting(t *testing.T) {
	c := NewReportCache(2)

	c.Put("a", "json", file("old"))
	c.Put("a", "json", file("new"))

	if got := c.Get("a", "json"); got == nil || got.Name != "new" {
		t.Errorf("expected updated entry, got %+v", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestReportCache_DefaultSize(t *testing.T) {
	c := NewReportCache(0)
	if c.maxSize != 128 {
		t.Errorf("expected default maxSize 128, got %d", c.maxSize)
	}
}

func TestReportCache_Concurrent(t *testing.T) {
	c := NewReportCache(10)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("sub-%d", i%15)
			c.Put(id, "json", file(id))
			c.Get(id, "json")
		}(i)
	}
	wg.Wait()
	if c.Len() > 10 {
		t.Errorf("cache exceeded max size: %d", c.Len())
	}
}
