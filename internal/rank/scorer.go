package rank

// Scorer rates a piece of text and names the rules that fired.
type Scorer interface {
	Score(text string) (score int, tags []string)
}
