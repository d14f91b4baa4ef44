package intent

// Phrases are the fixed cue sets the classifier matches against.
// Switch, greeting and creator phrases are matched on whole words;
// detail cues are matched as raw substrings of the original query.
type Phrases struct {
	SwitchToBangla  []string
	SwitchToEnglish []string
	Greetings       []string
	Creator         []string
	Detail          []string
}

// DefaultPhrases returns the stock cue sets, including native-script and
// transliterated variants.
func DefaultPhrases() Phrases {
	return Phrases{
		SwitchToBangla: []string{
			"talk bangla", "talk in bangla", "speak bangla", "speak in bangla",
			"talk bengali", "talk in bengali", "speak bengali", "speak in bengali",
			"switch to bangla", "switch to bengali", "reply in bangla", "answer in bangla",
			"bangla bolo", "bangla te kotha bolo", "banglay kotha bolo",
			"বাংলায় কথা বলো", "বাংলায় কথা বল", "বাংলা বলো", "বাংলায় বলো",
		},
		SwitchToEnglish: []string{
			"talk english", "talk in english", "speak english", "speak in english",
			"switch to english", "reply in english", "answer in english",
			"english bolo", "english e kotha bolo",
			"ইংরেজিতে কথা বলো", "ইংরেজিতে কথা বল", "ইংরেজি বলো", "ইংরেজিতে বলো",
		},
		Greetings: []string{
			"hi", "hello", "hey", "hiya", "howdy", "greetings",
			"good morning", "good evening", "good afternoon",
			"salam", "assalamualaikum", "assalamu alaikum", "nomoskar", "namaskar",
			"হাই", "হ্যালো", "হেলো", "নমস্কার", "সালাম", "আসসালামু আলাইকুম",
		},
		Creator: []string{
			"who created you", "who made you", "who built you", "who developed you",
			"who designed you", "who programmed you", "who is your creator",
			"your creator", "your developer", "who owns you",
			"tomake ke baniyeche", "tomake ke toiri koreche", "tomar srosta ke",
			"তোমাকে কে বানিয়েছে", "তোমাকে কে তৈরি করেছে", "তোমার স্রষ্টা কে", "তোমার নির্মাতা কে",
		},
		Detail: []string{
			"বিস্তারিত", "details", "detailed", "in detail", "full information",
			"সম্পূর্ণ তথ্য", "bistarito",
		},
	}
}
