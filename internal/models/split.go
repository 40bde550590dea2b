package models

import "fmt"

// SplitMethod selects how the total spent is divided into fair shares.
type SplitMethod string

const (
	// SplitByMember weights each family's share by its member count.
	SplitByMember SplitMethod = "BY_MEMBER"

	// SplitByFamily divides the total equally between families.
	SplitByFamily SplitMethod = "BY_FAMILY"

	// splitByPercentage is the legacy name of SplitByFamily still sent by
	// older clients.
	splitByPercentage SplitMethod = "BY_PERCENTAGE"
)

// ParseSplitMethod maps a wire value to a SplitMethod.
// An empty string defaults to SplitByMember.
func ParseSplitMethod(s string) (SplitMethod, error) {
	switch SplitMethod(s) {
	case "", SplitByMember:
		return SplitByMember, nil
	case SplitByFamily, splitByPercentage:
		return SplitByFamily, nil
	default:
		return "", fmt.Errorf("unknown split method %q", s)
	}
}
