package cache

import (
	"github.com/dgraph-io/ristretto"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
)

// S is the in-process cache backend shared by services that keep hot reads
// out of the database. Nil until Initialize runs; callers treat a nil store
// as cache-off.
var S *ristretto_store.RistrettoStore

func Initialize() error {
	backend, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     1 << 26,
		BufferItems: 64,
	})
	if err != nil {
		return err
	}

	S = ristretto_store.NewRistretto(backend)
	return nil
}
