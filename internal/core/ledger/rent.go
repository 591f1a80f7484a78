package ledger

// Reserver reports the minimum balance an account of a given data size must
// hold to stay alive.
type Reserver interface {
	MinimumBalance(dataLen int) uint64
}

// Rent computes reserved minimums from a per-byte price.
type Rent struct {
	LamportsPerByteYear uint64 `yaml:"lamports_per_byte_year"`
	ExemptionThreshold  uint64 `yaml:"exemption_threshold"`
	AccountOverhead     uint64 `yaml:"account_overhead"`
}

// DefaultRent returns the standard pricing.
func DefaultRent() Rent {
	return Rent{
		LamportsPerByteYear: 3480,
		ExemptionThreshold:  2,
		AccountOverhead:     128,
	}
}

// MinimumBalance returns (overhead + dataLen) * price * threshold.
func (r Rent) MinimumBalance(dataLen int) uint64 {
	return (r.AccountOverhead + uint64(dataLen)) * r.LamportsPerByteYear * r.ExemptionThreshold
}

// FlatRent reserves the same amount regardless of size.
type FlatRent uint64

func (f FlatRent) MinimumBalance(int) uint64 {
	return uint64(f)
}
