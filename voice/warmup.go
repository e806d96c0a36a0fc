package voice

// DefaultWarmupPhrases lists the stock action confirmations worth caching
// before the first request of a session. Warming them means each is
// admitted to the cache the first time it is actually synthesized.
func DefaultWarmupPhrases() []string {
	return []string{
		// Hardpoints
		"Hardpoints deployed",
		"Hardpoints deployed, Commander",
		"Hardpoints retracted",

		// Speed
		"Setting speed to zero",
		"Setting speed to 50 percent",
		"Setting speed to 75 percent",
		"Setting speed to 100 percent",

		// Shields
		"Shields up",
		"Shield cell bank deployed",

		// Cargo
		"Cargo scoop deployed",
		"Cargo scoop retracted",

		// Landing gear
		"Landing gear down",
		"Landing gear up",

		// Frameshift drive
		"Frameshift drive charging",
		"Jump complete",
		"Hyperspace jump complete",

		// Lights
		"Lights on",
		"Lights off",

		// Acknowledgments
		"Understood",
		"Affirmative",
		"Copy that",
		"Negative",
	}
}
