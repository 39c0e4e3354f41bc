package game

// WinCondition ends the game once the pile reaches Threshold stones.
type WinCondition struct {
	Threshold int
}

func NewWinCondition(threshold int) *WinCondition {
	return &WinCondition{Threshold: threshold}
}

// IsWin is monotonic: once a size wins, every larger size wins too.
func (w *WinCondition) IsWin(size int) bool {
	return size >= w.Threshold
}
