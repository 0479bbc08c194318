package extractor

// Entry maps a lowercase search keyword to the canonical restaurant it stands
// for. Several keywords may map to the same canonical name.
type Entry struct {
	Keyword string
	Name    string
}

// Lexicon is an ordered keyword list. Order matters: mentions are emitted in
// lexicon order and the first keyword wins when two entries share a canonical
// name.
type Lexicon []Entry

// DefaultLexicon returns the known Toronto restaurant keywords, in authored
// order.
func DefaultLexicon() Lexicon {
	return Lexicon{
		{"pai", "Pai Northern Thai Kitchen"},
		{"kenzo", "Kenzo Ramen"},
		{"alo", "Alo"},
		{"canteen", "Canteen"},
		{"ramen", "Ramen Restaurant"},
		{"molly", "Molly's Cafe"},
		{"hot pot", "Hot Pot Restaurant"},
		{"shim", "Shim Korean BBQ"},
		{"goro", "Goro Ramen"},
		{"piri", "Piri Piri Grille"},
		{"boku", "Boku Sushi"},
		{"peaches", "Peaches Restaurant"},
		{"giulio", "Giulio Pizzeria"},
		{"su", "Su Sushi"},
		{"kim", "Kim's Korean BBQ"},
		{"tabasco", "Tabasco Grille"},
		{"sushi", "Sushi Restaurant"},
		{"pizza", "Pizza Restaurant"},
		{"bbq", "BBQ Restaurant"},
	}
}
