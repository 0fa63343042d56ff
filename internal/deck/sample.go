package deck

import "embed"

//go:embed samples/questions.json samples/trivia.json
var samples embed.FS

// SampleQuestions returns a small questions file covering every raw shape.
func SampleQuestions() []byte {
	b, _ := samples.ReadFile("samples/questions.json")
	return b
}

// SampleTrivia returns a small trivia file.
func SampleTrivia() []byte {
	b, _ := samples.ReadFile("samples/trivia.json")
	return b
}
