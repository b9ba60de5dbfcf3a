package score

import (
	"fmt"

	"github.com/nvalerio/flowforge/pkg/domain"
)

// Tier is a named complexity bucket. It sets the minimum node count a
// graph is expected to reach and how many flow features earn full credit.
type Tier string

const (
	TierLight    Tier = "light"
	TierStandard Tier = "standard"
	TierHeavy    Tier = "heavy"
)

// MinNodes returns the minimum node count for the tier. Unrecognized
// tiers fall back to the standard minimum.
func (t Tier) MinNodes() int {
	switch t {
	case TierLight:
		return 15
	case TierHeavy:
		return 35
	default:
		return 25
	}
}

// ParseTier converts a user-supplied tier name. The empty string maps to
// the standard tier.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierLight, TierStandard, TierHeavy:
		return Tier(s), nil
	case "":
		return TierStandard, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownTier, s)
	}
}
