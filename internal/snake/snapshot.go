package snake

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying  GameStateType = "playing"
	StatePaused   GameStateType = "paused"
	StateGameOver GameStateType = "game_over"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Score    int
	SnakeLen int
	HeadX    int
	HeadY    int
	Dir      Direction
	Foods    int
	Eaten    int
	State    GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	headX, headY := 0, 0
	if len(g.body) > 0 {
		headX = int(g.body[0].X)
		headY = int(g.body[0].Y)
	}

	return Snapshot{
		Tick:     g.tick,
		Score:    g.score,
		SnakeLen: len(g.body),
		HeadX:    headX,
		HeadY:    headY,
		Dir:      g.direction,
		Foods:    len(g.level.Foods),
		Eaten:    g.eaten.Total,
		State:    state,
	}
}
