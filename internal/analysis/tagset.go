package analysis

// universalTags maps Penn Treebank tags produced by the tagger to universal tags.
var universalTags = map[string]POS{
	"NN":    Noun,
	"NNS":   Noun,
	"NNP":   ProperNoun,
	"NNPS":  ProperNoun,
	"VB":    Verb,
	"VBD":   Verb,
	"VBG":   Verb,
	"VBN":   Verb,
	"VBP":   Verb,
	"VBZ":   Verb,
	"MD":    Aux,
	"JJ":    Adjective,
	"JJR":   Adjective,
	"JJS":   Adjective,
	"RB":    Adverb,
	"RBR":   Adverb,
	"RBS":   Adverb,
	"WRB":   Adverb,
	"CD":    Numeral,
	"DT":    Determiner,
	"PDT":   Determiner,
	"WDT":   Determiner,
	"IN":    Adposition,
	"PRP":   Pronoun,
	"PRP$":  Pronoun,
	"WP":    Pronoun,
	"WP$":   Pronoun,
	"CC":    Conjunction,
	"RP":    Particle,
	"TO":    Particle,
	"POS":   Particle,
	"UH":    Interject,
	"SYM":   Symbol,
	"$":     Symbol,
	"#":     Symbol,
	",":     Punctuation,
	".":     Punctuation,
	":":     Punctuation,
	"(":     Punctuation,
	")":     Punctuation,
	"``":    Punctuation,
	"''":    Punctuation,
	"-LRB-": Punctuation,
	"-RRB-": Punctuation,
}

// Universal converts a Penn Treebank tag to a universal tag.
func Universal(penn string) POS {
	if pos, ok := universalTags[penn]; ok {
		return pos
	}
	return Other
}

func isNounTag(tag string) bool {
	return tag == "NN" || tag == "NNS" || tag == "NNP" || tag == "NNPS"
}

func isProperTag(tag string) bool {
	return tag == "NNP" || tag == "NNPS"
}

func isDeterminerTag(tag string) bool {
	return tag == "DT" || tag == "PDT" || tag == "PRP$" || tag == "WP$"
}

// isModifierTag covers everything allowed between a determiner and the noun head.
func isModifierTag(tag string) bool {
	switch tag {
	case "JJ", "JJR", "JJS", "CD", "POS":
		return true
	}
	return isNounTag(tag)
}
