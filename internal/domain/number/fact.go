package number

import "fmt"

// DefaultFact returns the deterministic fun fact used when no external text
// is available. Armstrong integers get their digit-power expansion.
func DefaultFact(n Number) string {
	if n.IsInteger() && IsArmstrong(n.Int()) {
		return fmt.Sprintf("%d is an Armstrong number because %s = %d", n.Int(), ArmstrongExpansion(n.Int()), n.Int())
	}
	return fmt.Sprintf("%s is an interesting number!", n.String())
}
