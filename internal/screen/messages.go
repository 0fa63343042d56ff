package screen

// DeckKind distinguishes the two file types a quiz loads.
type DeckKind int

const (
	DeckQuestions DeckKind = iota
	DeckTrivia
)

func (k DeckKind) String() string {
	if k == DeckTrivia {
		return "trivia"
	}
	return "questions"
}

// LoadDeckMsg asks the app to read and apply a deck file.
type LoadDeckMsg struct {
	Kind DeckKind
	Path string
}

// DeckLoadedMsg reports the outcome of a load after it was applied to the
// session. Count is the number of questions or facts now in use.
type DeckLoadedMsg struct {
	Kind  DeckKind
	Path  string
	Count int
	Err   error
}

// GenerateTriviaMsg asks the app to generate trivia for the loaded deck.
type GenerateTriviaMsg struct{}

// TriviaGeneratedMsg reports the outcome of a generation request.
type TriviaGeneratedMsg struct {
	Count int
	Err   error
}
