package content

// Verse is one entry of the fixed verse set used by the fragment-arrange
// levels.
type Verse struct {
	ID         string
	Text       string
	Reference  string
	Difficulty string
}

// IncompleteVerse backs level 1: the verse is shown with its last fragments
// missing, and the participant arranges them back in order.
type IncompleteVerse struct {
	ID               string
	VisibleText      string
	MissingFragments []string // correct order
	FullText         string
	Reference        string
}

// MCQVerse backs level 2: complete the quotation with the correct ending.
type MCQVerse struct {
	ID             string
	IncompleteText string
	CorrectEnding  string
	WrongOptions   []string
	FullText       string
	Reference      string
}

// ImageQuestion backs levels 3 and 7: identify the person in the image.
type ImageQuestion struct {
	ID            string
	ImageURL      string
	Question      string
	CorrectAnswer string
	WrongOptions  []string
	Explanation   string
}

var verses = []Verse{
	{
		ID:         "1",
		Text:       "Come to me, all you who are weary and are carrying heavy burdens, and I will give you rest. Take my yoke upon you, and learn from me, for I am gentle and humble in heart, and you will find rest for your souls. For my yoke is easy, and my burden is light.",
		Reference:  "Matthew 11:27-30",
		Difficulty: "easy",
	},
	{
		ID:         "2",
		Text:       "I can do all things through him who strengthens me.",
		Reference:  "Philippians 4:13",
		Difficulty: "easy",
	},
	{
		ID:         "3",
		Text:       "Trust in the Lord with all your heart and do not rely on your own insight.",
		Reference:  "Proverbs 3:5",
		Difficulty: "easy",
	},
	{
		ID:         "4",
		Text:       "The Lord is my shepherd, I shall not want.",
		Reference:  "Psalm 23:1",
		Difficulty: "easy",
	},
	{
		ID:         "5",
		Text:       "A new heart I will give you, and a new spirit I will put within you, and I will remove from your body the heart of stone and give you a heart of flesh.",
		Reference:  "Ezekiel 36:26",
		Difficulty: "medium",
	},
	{
		ID:         "6",
		Text:       "For surely I know the plans I have for you, says the Lord, plans for welfare and not to harm, to give your future with hope.",
		Reference:  "Jeremiah 29:11",
		Difficulty: "medium",
	},
	{
		ID:         "7",
		Text:       "And we know that in all things God works for the good of those who love him, who have been called according to his purpose.",
		Reference:  "Romans 8:28",
		Difficulty: "medium",
	},
	{
		ID:         "8",
		Text:       "Do not worry about anything, but in everything by prayer and supplication with thanksgiving let your requests be made known to God.",
		Reference:  "Philippians 4:6",
		Difficulty: "medium",
	},
	{
		ID:         "9",
		Text:       "The Lord will fight for you; you need only to be still.",
		Reference:  "Exodus 14:14",
		Difficulty: "medium",
	},
	{
		ID:         "10",
		Text:       "Cast all your anxiety on him because he cares for you.",
		Reference:  "1 Peter 5:7",
		Difficulty: "medium",
	},
	{
		ID:         "11",
		Text:       "but those who wait for the LORD shall renew their strength, they shall mount up with wings like eagles, they shall run and not be weary, they shall walk and not faint.",
		Reference:  "Isaiah 40:31",
		Difficulty: "hard",
	},
	{
		ID:         "12",
		Text:       "Do not fear, for I am with you; do not be dismayed, for I am your God. I will strengthen you and help you; I will uphold you with my victorious right hand.",
		Reference:  "Isaiah 41:10",
		Difficulty: "hard",
	},
	{
		ID:         "13",
		Text:       "For God has not given us a spirit of cowardice, but rather a spirit of power and love and self-control.",
		Reference:  "2 Timothy 1:7",
		Difficulty: "hard",
	},
	{
		ID:         "14",
		Text:       "In the beginning was the Word, and the Word was with God, and the Word was God.",
		Reference:  "John 1:1",
		Difficulty: "hard",
	},
	{
		ID:         "15",
		Text:       "Love is patient, love is kind. love does not envy, love does not boast, it is not arrogant.",
		Reference:  "1 Corinthians 13:4",
		Difficulty: "medium",
	},
	{
		ID:         "16",
		Text:       "The Lord is near to the brokenhearted and saves the crushed in spirit.",
		Reference:  "Psalm 34:18",
		Difficulty: "medium",
	},
	{
		ID:         "17",
		Text:       "For where two or three gather in my name, there am I with them.",
		Reference:  "Matthew 18:20",
		Difficulty: "easy",
	},
}

var incompleteVerses = []IncompleteVerse{
	{
		ID:               "intro-1",
		VisibleText:      "And the man looked up and said, “I can see people",
		MissingFragments: []string{"but they", "look like", "trees, walking."},
		FullText:         "And the man looked up and said, “I can see people, but they look like trees, walking.",
		Reference:        "Mark 8:24",
	},
	{
		ID:               "intro-2",
		VisibleText:      "I can do all things",
		MissingFragments: []string{"through him", "who strengthens", "me."},
		FullText:         "I can do all things through him who strengthens me.",
		Reference:        "Philippians 4:13",
	},
	{
		ID:               "intro-3",
		VisibleText:      "Trust in the Lord with all your heart",
		MissingFragments: []string{"and do not", "rely on", "your own insight."},
		FullText:         "Trust in the Lord with all your heart and do not rely on your own insight.",
		Reference:        "Proverbs 3:5",
	},
	{
		ID:               "intro-4",
		VisibleText:      "The Lord is my shepherd,",
		MissingFragments: []string{"I shall", "not", "want."},
		FullText:         "The Lord is my shepherd, I shall not want.",
		Reference:        "Psalm 23:1",
	},
	{
		ID:               "intro-5",
		VisibleText:      "For where two or three gather in my name,",
		MissingFragments: []string{"there am", "I with", "them."},
		FullText:         "For where two or three gather in my name, there am I with them.",
		Reference:        "Matthew 18:20",
	},
}

var mcqVerses = []MCQVerse{
	{
		ID:             "mcq-1",
		IncompleteText: "Blessed are the pure in heart;",
		CorrectEnding:  "for they will see God",
		WrongOptions: []string{
			"for they will be comforted.",
			"for they will inherit the earth.",
			"for they will receive mercy.",
		},
		FullText:  "Blessed are the pure in heart, for they will see God",
		Reference: "Matthew 5:8",
	},
	{
		ID:             "mcq-2",
		IncompleteText: "Cast all your anxiety on him",
		CorrectEnding:  "because he cares for you.",
		WrongOptions: []string{
			"because he is always listening.",
			"for he knows your heart.",
			"and he will make a way.",
		},
		FullText:  "Cast all your anxiety on him because he cares for you.",
		Reference: "1 Peter 5:7",
	},
	{
		ID:             "mcq-3",
		IncompleteText: "Come to me, all you who are weary and are carrying heavy burdens,",
		CorrectEnding:  "and I will give you rest.",
		WrongOptions: []string{
			"and I will give you strength.",
			"for I am your shepherd.",
			"and you shall find peace.",
		},
		FullText:  "Come to me, all you who are weary and are carrying heavy burdens, and I will give you rest.",
		Reference: "Matthew 11:28",
	},
	{
		ID:             "mcq-4",
		IncompleteText: "The Lord is near to the brokenhearted",
		CorrectEnding:  "and saves the crushed in spirit.",
		WrongOptions: []string{
			"and heals those who mourn.",
			"and comforts all who grieve.",
			"and restores the weary soul.",
		},
		FullText:  "The Lord is near to the brokenhearted and saves the crushed in spirit.",
		Reference: "Psalm 34:18",
	},
	{
		ID:             "mcq-5",
		IncompleteText: "In the beginning was the Word, and the Word was with God,",
		CorrectEnding:  "and the Word was God.",
		WrongOptions: []string{
			"and the Word created all things.",
			"and the Word brought light.",
			"and the Word is life eternal.",
		},
		FullText:  "In the beginning was the Word, and the Word was with God, and the Word was God.",
		Reference: "John 1:1",
	},
}

var imageQuestions = []ImageQuestion{
	{
		ID:            "img-1",
		ImageURL:      "/images/ranimariya.jpg",
		Question:      "Identify the person in the image?",
		CorrectAnswer: "Blessed Rani Maria",
		WrongOptions:  []string{"Blessed Teresa of Calcutta", "Blessed Mariam Thresia", "St. Euphrasia"},
		Explanation:   "A fearless witness of Christ who gave her life serving the poor and oppressed, healing hearts through the Living Word.",
	},
	{
		ID:            "img-2",
		ImageURL:      "/images/Josmar.jpg",
		Question:      "Identify this person from the Bible:",
		CorrectAnswer: "St. Josemaría Escrivá",
		WrongOptions:  []string{"St. Francis de Sales", "St. Thomas Aquinas", "St. Ignatius of Loyola"},
		Explanation:   "He taught that holiness is found in everyday work, transforming ordinary life into a path to God.",
	},
	{
		ID:            "img-3",
		ImageURL:      "/images/mary.jpg",
		Question:      "Who is shown in this image?",
		CorrectAnswer: "Mary (Mother of Jesus)",
		WrongOptions:  []string{"Mary Magdalene", "Martha", "Ruth"},
		Explanation:   "Mary was the mother of Jesus Christ.",
	},
	{
		ID:            "img-4",
		ImageURL:      "/images/peter.jpg",
		Question:      "Identify this apostle:",
		CorrectAnswer: "Peter",
		WrongOptions:  []string{"Paul", "John", "James"},
		Explanation:   "Peter was one of the twelve apostles and a leader of the early church.",
	},
	{
		ID:            "img-5",
		ImageURL:      "/images/paul.jpg",
		Question:      "Who is this biblical figure?",
		CorrectAnswer: "Paul",
		WrongOptions:  []string{"Peter", "Timothy", "Barnabas"},
		Explanation:   "Paul (formerly Saul) wrote many epistles in the New Testament.",
	},
}

var medium2Verses = []Verse{
	{
		ID:         "m2-1",
		Text:       "For it is from within, from the human heart, that evil intentions come: sexual immorality, theft, murder, adultery, avarice, wickedness, deceit, debauchery, envy, slander, pride, folly. All these evil things come from within, and they defile a person.",
		Reference:  "Mark 7:21-23",
		Difficulty: "medium2",
	},
	{
		ID:         "m2-2",
		Text:       "The Lord is near to the brokenhearted and saves the crushed in spirit.",
		Reference:  "Psalm 34:18",
		Difficulty: "medium2",
	},
	{
		ID:         "m2-3",
		Text:       "Love is patient, love is kind. love does not envy, love does not boast, it is not arrogant.",
		Reference:  "1 Corinthians 13:4",
		Difficulty: "medium2",
	},
}

// FixedVerse returns the first verse of a difficulty. Every player gets the
// same puzzle; only option order is randomized elsewhere.
func FixedVerse(difficulty string) Verse {
	for _, v := range verses {
		if v.Difficulty == difficulty {
			return v
		}
	}
	return verses[0]
}

// FixedIncompleteVerse returns the level-1 puzzle shared by all players.
func FixedIncompleteVerse() IncompleteVerse { return incompleteVerses[0] }

// FixedMCQVerse returns the level-2 puzzle shared by all players.
func FixedMCQVerse() MCQVerse { return mcqVerses[0] }

// FixedImageQuestion returns the level-3 puzzle shared by all players.
func FixedImageQuestion() ImageQuestion { return imageQuestions[0] }

// FixedImageQuestion2 returns the level-7 puzzle (a different image).
func FixedImageQuestion2() ImageQuestion { return imageQuestions[1] }

// FixedMedium2Verse returns the level-5 puzzle shared by all players.
func FixedMedium2Verse() Verse { return medium2Verses[0] }
