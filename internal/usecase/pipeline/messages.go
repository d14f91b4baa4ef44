package pipeline

// Messages are the fixed replies, written in English and translated into the
// session language where the reply is not an error.
type Messages struct {
	SwitchedToBangla  string
	SwitchedToEnglish string
	Greeting          string
	// CreatorFormat takes the creator name as its only verb.
	CreatorFormat string
	NoAnswer      string

	EmptyQuery   string
	QueryTooLong string
	InvalidVideo string
	NoTranscript string
}

// DefaultMessages returns the stock replies.
func DefaultMessages() Messages {
	return Messages{
		SwitchedToBangla:  "From now, I will speak Bangla.",
		SwitchedToEnglish: "From now, I will speak English.",
		Greeting:          "Hello! How can I help you?",
		CreatorFormat:     "My creator is %s.",
		NoAnswer:          "Sorry, I couldn't find any information about that.",
		EmptyQuery:        "Please provide a valid question.",
		QueryTooLong:      "Your question is too long.",
		InvalidVideo:      "Invalid YouTube URL.",
		NoTranscript:      "No transcript available for this video.",
	}
}
