package condition

// SpeedModifier returns the speed multiplier imposed by s.
//
// Postcondition: Returns 1.0 for None.
func SpeedModifier(s Status) float64 {
	if d, ok := Lookup(s); ok {
		return d.SpeedModifier
	}
	return 1.0
}

// AttackModifier returns the physical attack multiplier imposed by s.
// Special attacks are never affected.
//
// Postcondition: Returns 1.0 for None.
func AttackModifier(s Status) float64 {
	if d, ok := Lookup(s); ok {
		return d.AttackModifier
	}
	return 1.0
}
