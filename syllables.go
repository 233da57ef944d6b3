package readable_hash

import (
	"io"
	"strings"
)

// syllables maps one byte of hash output to a fragment of English text.
// Some fragments carry a trailing space, which splits the result into words.
var syllables = [256]string{
	"plac", "most ", "sam", "ke", "uth", "arl ", "het", "giv", "fa", "first ",
	"own ", "li", "van", "form ", "pres", "ond", "men ", "bef", "old ", "agr",
	"must ", "two ", "ight ", "mak", "cons", "nat", "den", "rem", "inst", "eb",
	"itt", "iss ", "tak", "ars", "ap", "app", "iz", "wher", "ec", "mad", "cont",
	"pe", "such ", "lik", "ung", "rec", "gen", "now ", "how ", "urs", "wa",
	"ver ", "than ", "don", "com", "mo", "ught ", "pa", "min", "vi", "comm",
	"sho", "thes", "ents ", "then ", "aft", "fe", "ek", "ha", "ins ", "ep",
	"ich", "acc", "elf", "ans", "can", "ass", "att", "ni", "ex", "work ", "par",
	"ef", "te", "part ", "ho", "onl", "des", "vo", "tim", "ib", "lo", "has",
	"tho", "proj", "ert", "gre", "ord", "off ", "stat ", "what ", "ort", "der",
	"eg", "gut", "ach", "art ", "si", "ett ", "ern ", "als", "enb", "bo", "ud",
	"ys", "them ", "som", "mor", "act", "unt", "who ", "ac", "ak", "ik", "ish ",
	"ast ", "when ", "erg", "po", "ne", "ard ", "will ", "go", "ugh ", "ro",
	"um", "da", "ens", "ow", "ja", "my", "ind", "ok", "op", "wo", "anc", "ill",
	"abl", "ther", "fo", "she ", "av", "him ", "ot", "oth", "ig", "ov", "its",
	"ell", "wer", "enc", "ma", "man ", "di", "od", "end ", "do", "up", "re",
	"no", "im", "le", "ab", "om", "sa", "ul", "ant ", "co", "if", "uld ",
	"ist ", "hav", "ons ", "la", "we", "from ", "me", "had ", "but ", "her ",
	"which ", "so", "ag", "int", "se", "est", "ol", "os", "qu", "un", "this ",
	"ev", "ect ", "ers", "iv", "em", "not ", "am", "by", "ess", "und", "ad",
	"il", "his", "ir", "all ", "for", "was ", "id", "de", "with ", "et",
	"that ", "be", "ut", "ic", "us", "el", "ur", "he", "ent ", "as", "or", "al",
	"ar", "is", "an", "u", "ing ", "at", "it", "es", "to", "and ", "en", "on",
	"of", "ed ", "o", "in", "er", "i", "a", "y", "the ", "e",
}

// NaiveReadableHash
// Maps the first 32 bytes of the hash stream of input through the syllable
// table and concatenates the fragments. A nil hasher means SHA-256.
func NaiveReadableHash(input string, hasher Hasher) string {
	if hasher == nil {
		hasher = Sha256Hasher{}
	}
	digest := make([]byte, 32)
	n, _ := io.ReadFull(hasher.Stream([]byte(input)), digest)
	var text strings.Builder
	for _, b := range digest[:n] {
		text.WriteString(syllables[b])
	}
	return text.String()
}
