package production

// Config holds behavior switches for the batch engine.
type Config struct {
	// ReverseStockOnDiscard removes the batch quantity from the ledger when a
	// batch is discarded. Off by default: most discards are followed by a
	// waste record that accounts for the stock explicitly.
	ReverseStockOnDiscard bool

	// LotCodeRetries bounds how many times batch creation retries when a
	// generated lot code collides with an existing one.
	LotCodeRetries int
}

// DefaultConfig returns production batch defaults.
func DefaultConfig() Config {
	return Config{
		ReverseStockOnDiscard: false,
		LotCodeRetries:        3,
	}
}
