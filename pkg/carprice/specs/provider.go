package specs

import (
	"sync"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"
)

// LoadFunc builds a specs table
type LoadFunc func() (*dal.SpecsTable, error)

// Provider builds a specs table at most once. The first call to Table runs the
// load function; every later call returns the same table pointer, or the same
// error, without loading again. Create one Provider per process and share it.
type Provider struct {
	once  sync.Once
	load  LoadFunc
	table *dal.SpecsTable
	err   error
}

// NewProvider returns a provider that builds lazily with load
func NewProvider(load LoadFunc) *Provider {
	return &Provider{load: load}
}

// NewFileProvider returns a provider that builds from a local CSV file
func NewFileProvider(path string, format Format) *Provider {
	return NewProvider(func() (*dal.SpecsTable, error) {
		return LoadFile(path, format)
	})
}

// Table returns the memoized table, building it on first use
func (p *Provider) Table() (*dal.SpecsTable, error) {
	p.once.Do(func() {
		p.table, p.err = p.load()
	})
	return p.table, p.err
}
