// Package storeindex is a small in-memory store directory serving the paged
// search endpoint the client consumes. Stores whose postcode contains the
// query come first, ordered by postcode, followed by stores whose name
// contains it, ordered by name.
package storeindex

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"storefinder/internal/domain"
)

//go:embed stores.json
var sampleStores []byte

// DefaultCacheSize is the number of distinct queries whose match lists are kept
const DefaultCacheSize = 256

// Index answers paged store searches
type Index struct {
	mu         sync.RWMutex
	byPostcode []domain.Store
	byName     []domain.Store
	cache      *lru.Cache[string, []domain.Store]
}

// New builds an index over stores with an LRU of cacheSize match lists
func New(stores []domain.Store, cacheSize int) (*Index, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, []domain.Store](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create match cache: %w", err)
	}
	ix := &Index{cache: cache}
	ix.Replace(stores)
	return ix, nil
}

// Replace swaps the indexed stores and drops every cached match list
func (ix *Index) Replace(stores []domain.Store) {
	byPostcode := make([]domain.Store, len(stores))
	copy(byPostcode, stores)
	sort.SliceStable(byPostcode, func(i, j int) bool {
		return strings.ToUpper(byPostcode[i].Postcode) < strings.ToUpper(byPostcode[j].Postcode)
	})

	byName := make([]domain.Store, len(stores))
	copy(byName, stores)
	sort.SliceStable(byName, func(i, j int) bool {
		return strings.ToUpper(byName[i].Name) < strings.ToUpper(byName[j].Name)
	})

	ix.mu.Lock()
	ix.byPostcode = byPostcode
	ix.byName = byName
	ix.cache.Purge()
	ix.mu.Unlock()
}

// Len returns the number of indexed stores
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.byName)
}

// Search returns the page of matches starting at offset. The query is
// case-insensitive and spaces are ignored when matching postcodes.
func (ix *Index) Search(query string, offset, n int) domain.ResultPage {
	matches := ix.matches(strings.ToUpper(strings.TrimSpace(query)))

	start := min(offset, len(matches))
	end := min(start+n, len(matches))
	portion := make([]domain.Store, end-start)
	copy(portion, matches[start:end])

	return domain.ResultPage{Portion: portion, TotalCount: len(matches)}
}

func (ix *Index) matches(q string) []domain.Store {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if cached, ok := ix.cache.Get(q); ok {
		return cached
	}

	compact := strings.ReplaceAll(q, " ", "")
	var found []domain.Store
	postcodeNames := make(map[string]bool)
	for _, s := range ix.byPostcode {
		if strings.Contains(strings.ReplaceAll(strings.ToUpper(s.Postcode), " ", ""), compact) {
			found = append(found, s)
			postcodeNames[s.Name] = true
		}
	}
	for _, s := range ix.byName {
		if !postcodeNames[s.Name] && strings.Contains(strings.ToUpper(s.Name), q) {
			found = append(found, s)
		}
	}

	ix.cache.Add(q, found)
	return found
}

// SampleStores returns the built-in store list
func SampleStores() ([]domain.Store, error) {
	return decodeStores(sampleStores)
}

// LoadFile reads a JSON array of {"name", "postcode"} objects
func LoadFile(path string) ([]domain.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stores file: %w", err)
	}
	stores, err := decodeStores(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return stores, nil
}

func decodeStores(data []byte) ([]domain.Store, error) {
	var stores []domain.Store
	if err := json.Unmarshal(data, &stores); err != nil {
		return nil, fmt.Errorf("failed to parse stores: %w", err)
	}
	return stores, nil
}
