package session

// Default game settings.
const (
	DefaultNumQuestions = 15
	DefaultWinThreshold = 10
)

// Config holds the per-game settings.
type Config struct {
	// NumQuestions is the batch size generated at start.
	NumQuestions int

	// WinThreshold is the score that ends the game early.
	WinThreshold int

	// Seed makes question batches repeatable. Zero draws a fresh random seed.
	Seed int64
}

// DefaultConfig returns the standard 15-question, first-to-10 game.
func DefaultConfig() Config {
	return Config{
		NumQuestions: DefaultNumQuestions,
		WinThreshold: DefaultWinThreshold,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	if c.NumQuestions <= 0 {
		c.NumQuestions = DefaultNumQuestions
	}
	if c.WinThreshold <= 0 {
		c.WinThreshold = DefaultWinThreshold
	}
	return c
}
