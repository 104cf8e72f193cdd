package memdb

const (
	// DefaultMemSize is the default number of entries kept in memory.
	DefaultMemSize = 10_000
)

type config struct {
	memSize int
}

type Option func(*config)

// WithMemSize sets how many entries are kept before the oldest ones are evicted.
func WithMemSize(memSize int) Option {
	return func(c *config) {
		if memSize > 0 {
			c.memSize = memSize
		}
	}
}
