package analysis

import (
	"strings"
)

// Lemmatizer returns the dictionary form of a lower-cased word.
type Lemmatizer interface {
	Lemma(word string) string
}

// tagged is a token as it comes out of the tagger.
type tagged struct {
	Text string
	Tag  string
}

var (
	organizationCues = set(
		"university", "college", "institute", "school", "academy", "polytechnic",
		"inc", "corp", "corporation", "llc", "ltd", "company", "bank", "group",
		"labs", "laboratory", "foundation", "agency", "association", "hospital",
		"ministry", "department",
	)
	facilityCues = set(
		"airport", "stadium", "bridge", "center", "centre", "hall", "museum",
		"library", "campus",
	)
	// connectors may join proper nouns inside one name: "University of Oxford".
	connectors = set("of", "and", "&", "for", "the", "de")
)

// lemmatizedPOS lists the tags that go through the dictionary; the rest keep
// their lower-cased surface form.
var lemmatizedPOS = map[POS]bool{Noun: true, Verb: true, Aux: true, Adjective: true, Adverb: true}

func buildDocument(tokens []tagged, lemmatizer Lemmatizer, stopwords map[string]struct{}) *Document {
	doc := &Document{Tokens: make([]Token, 0, len(tokens))}

	for _, tok := range tokens {
		lower := strings.ToLower(tok.Text)
		pos := Universal(tok.Tag)

		lemma := lower
		if lemmatizer != nil && lemmatizedPOS[pos] {
			if l := strings.ToLower(strings.TrimSpace(lemmatizer.Lemma(lower))); l != "" {
				lemma = l
			}
		}

		_, stop := stopwords[lower]
		doc.Tokens = append(doc.Tokens, Token{
			Text:   tok.Text,
			Lemma:  lemma,
			POS:    pos,
			IsStop: stop,
		})
	}

	doc.Chunks = nounChunks(tokens, doc.Tokens)
	doc.Entities = nameEntities(tokens)

	return doc
}

// nounChunks finds base noun phrases: an optional determiner, modifiers and a
// noun head.
func nounChunks(tokens []tagged, analyzed []Token) []Chunk {
	var chunks []Chunk

	for i := 0; i < len(tokens); {
		tag := tokens[i].Tag
		if !isDeterminerTag(tag) && !isModifierTag(tag) {
			i++
			continue
		}

		j := i
		if isDeterminerTag(tokens[j].Tag) {
			j++
		}
		for j < len(tokens) && isModifierTag(tokens[j].Tag) {
			j++
		}

		head := -1
		for k := j - 1; k >= i; k-- {
			if isNounTag(tokens[k].Tag) {
				head = k
				break
			}
		}
		if head < 0 {
			i = max(j, i+1)
			continue
		}

		texts := make([]string, 0, head-i+1)
		lemmas := make([]string, 0, head-i+1)
		for k := i; k <= head; k++ {
			texts = append(texts, tokens[k].Text)
			lemmas = append(lemmas, analyzed[k].Lemma)
		}
		chunks = append(chunks, Chunk{
			Text:  strings.Join(texts, " "),
			Lemma: strings.Join(lemmas, " "),
		})
		i = head + 1
	}

	return chunks
}

// nameEntities labels proper noun spans carrying an organization or facility
// cue word, e.g. "Stanford University" or "Heathrow Airport".
func nameEntities(tokens []tagged) []Entity {
	var entities []Entity

	for i := 0; i < len(tokens); {
		if !isProperTag(tokens[i].Tag) {
			i++
			continue
		}

		end := i
		for j := i + 1; j < len(tokens); j++ {
			if isProperTag(tokens[j].Tag) {
				end = j
				continue
			}
			if _, ok := connectors[strings.ToLower(tokens[j].Text)]; ok && j+1 < len(tokens) && isProperTag(tokens[j+1].Tag) {
				continue
			}
			break
		}

		label := ""
		words := make([]string, 0, end-i+1)
		for k := i; k <= end; k++ {
			word := strings.ToLower(strings.Trim(tokens[k].Text, "."))
			if _, ok := organizationCues[word]; ok {
				label = LabelOrganization
			} else if _, ok := facilityCues[word]; ok && label == "" {
				label = LabelFacility
			}
			words = append(words, tokens[k].Text)
		}

		if label != "" {
			entities = append(entities, Entity{Text: strings.Join(words, " "), Label: label})
		}
		i = end + 1
	}

	return entities
}

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
