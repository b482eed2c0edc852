package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestCacheWithoutTTLKeepsItems(t *testing.T) {
	c := NewCache(0)
	defer c.Stop()

	c.Set("projectEstimator_title", "Site institucional")

	v, ok := c.Get("projectEstimator_title")
	if !ok || v.(string) != "Site institucional" {
		t.Fatalf("valor inesperado: %v, %v", v, ok)
	}
	if c.Size() != 1 {
		t.Errorf("Expected 1 item, got %d", c.Size())
	}
}

func TestCacheExpiration(t *testing.T) {
	c := NewCache(time.Minute)
	defer c.Stop()

	c.SetWithTTL("short", 1, time.Millisecond)
	c.Set("long", 2)

	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("item expirado não deveria ser retornado")
	}
	if _, ok := c.Get("long"); !ok {
		t.Error("item com TTL padrão deveria existir")
	}

	c.removeExpired()
	if c.Size() != 1 {
		t.Errorf("Expected 1 item after cleanup, got %d", c.Size())
	}
}

func TestCacheDeleteAndStats(t *testing.T) {
	c := NewCache(0)
	defer c.Stop()

	c.Set("devKPI_tasks", "[]")
	c.Set("devKPI_weekStart", `"2024-06-03"`)
	c.Set("currentPage", `"kpis"`)

	c.Delete("devKPI_tasks")
	c.Delete("devKPI_weekStart")

	if _, ok := c.Get("devKPI_tasks"); ok {
		t.Error("devKPI_tasks deveria ter sido removido")
	}
	if _, ok := c.Get("currentPage"); !ok {
		t.Error("currentPage não deveria ser afetado")
	}

	stats := c.Stats()
	if stats.ItemCount != 1 || stats.HitCount != 1 || stats.MissCount != 1 {
		t.Errorf("estatísticas inesperadas: %+v", stats)
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := NewCache(5 * time.Minute)
	defer c.Stop()

	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				key := fmt.Sprintf("key_%d_%d", id, i%10)
				c.Set(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Size() != 100 {
		t.Errorf("Expected 100 items, got %d", c.Size())
	}

	// Stop pode ser chamado mais de uma vez
	c.Stop()
}
