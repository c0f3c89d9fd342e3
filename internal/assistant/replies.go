package assistant

// Supported reply languages.
const (
	LanguageEnglish = "english"
	LanguageKurdish = "kurdish"
)

type replySet struct {
	text  []string
	image string
}

var replies = map[string]replySet{
	LanguageEnglish: {
		text: []string{
			"This product appears to be a pain reliever containing ibuprofen. It's used for headaches, fever, and minor aches.",
			"The medication you're showing is an antibiotic. Please consult a doctor before using it.",
			"This is a vitamin supplement. It's generally safe but check the dosage instructions.",
		},
		image: "This image shows a pain reliever. Please go over its description and usage instructions with your doctor.",
	},
	LanguageKurdish: {
		text: []string{
			"ئەم بەرهەمە دەرمانێکی دژە ئازارە کە ئایبۆپرۆفینی تێدایە. بۆ سەرئێشە و تا و ئازارە بچووکەکان بەکاردێت.",
			"ئەم دەرمانە دژە بەکتریایە. تکایە پێش بەکارهێنانی لە پزیشک بپرسەوە.",
			"ئەمە ڤیتامینێکی تەواوکەرە. بە گشتی سەلامەتە بەڵام ڕێنماییەکانی دۆزەخانە بپشکنە.",
		},
		image: "ئەم وێنەیە دەرمانێکی دژە ئازار نیشان دەدات. تکایە وەسف و ڕێنماییەکانی بەکارهێنان بپرسە لەگەڵ پزیشکەکەت.",
	},
}

// Languages lists the configured reply languages.
func Languages() []string {
	return []string{LanguageEnglish, LanguageKurdish}
}
