package fruitdrop

import "fmt"

// ShareText is the brag line offered after a round.
func ShareText(score int, title string) string {
	return fmt.Sprintf("I scored %d in %s! Can you beat my score?", score, title)
}

// ChallengeText dares a friend to beat score. It is shown on the game over
// panel.
func ChallengeText(score int, title string) string {
	return fmt.Sprintf("I just got %d points in %s! I bet you can't beat that.", score, title)
}
