// Package analysis provides the text analysis capability consumed by the ATS
// scorer: lemmatized, part-of-speech tagged tokens, named entities and noun
// phrase chunks.
package analysis

import (
	"context"
	"unicode"
)

// POS is a universal part-of-speech tag.
type POS string

const (
	Noun        POS = "NOUN"
	ProperNoun  POS = "PROPN"
	Verb        POS = "VERB"
	Aux         POS = "AUX"
	Adjective   POS = "ADJ"
	Adverb      POS = "ADV"
	Numeral     POS = "NUM"
	Determiner  POS = "DET"
	Adposition  POS = "ADP"
	Pronoun     POS = "PRON"
	Conjunction POS = "CCONJ"
	Particle    POS = "PART"
	Interject   POS = "INTJ"
	Symbol      POS = "SYM"
	Punctuation POS = "PUNCT"
	Other       POS = "X"
)

// Entity labels the scorer cares about. Analyzers may emit any other label.
const (
	LabelOrganization = "ORG"
	LabelFacility     = "FAC"
	LabelPerson       = "PERSON"
	LabelPlace        = "GPE"
)

// Analyzer turns raw text into a Document. Implementations must be safe for
// concurrent use.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*Document, error)
}

// Document is the analysis result for one text.
type Document struct {
	Tokens   []Token  `json:"tokens" mapstructure:"tokens"`
	Entities []Entity `json:"entities" mapstructure:"entities"`
	Chunks   []Chunk  `json:"noun_chunks" mapstructure:"noun_chunks"`
}

type Token struct {
	Text   string `json:"text" mapstructure:"text"`
	Lemma  string `json:"lemma" mapstructure:"lemma"`
	POS    POS    `json:"pos" mapstructure:"pos"`
	IsStop bool   `json:"is_stop" mapstructure:"is_stop"`
}

// IsAlpha reports whether the token text is non-empty and made of letters only.
func (t Token) IsAlpha() bool {
	if t.Text == "" {
		return false
	}
	for _, r := range t.Text {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// IsNoun reports whether the token is a common or proper noun.
func (t Token) IsNoun() bool {
	return t.POS == Noun || t.POS == ProperNoun
}

type Entity struct {
	Text  string `json:"text" mapstructure:"text"`
	Label string `json:"label" mapstructure:"label"`
}

// Chunk is a base noun phrase, e.g. "machine learning engineer".
type Chunk struct {
	Text  string `json:"text" mapstructure:"text"`
	Lemma string `json:"lemma" mapstructure:"lemma"`
}
