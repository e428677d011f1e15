package rules

import "strings"

// VerbForms of a past participle.
type VerbForms struct {
	Base       string
	Past       string
	Participle string
}

// BeAuxiliaries introduce a passive construction.
var BeAuxiliaries = map[string]bool{
	"am": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "being": true,
}

// participle -> base, past
var irregularVerbs = map[string][2]string{
	"beaten": {"beat", "beat"}, "begun": {"begin", "began"}, "bitten": {"bite", "bit"},
	"bought": {"buy", "bought"}, "broken": {"break", "broke"}, "brought": {"bring", "brought"},
	"built": {"build", "built"}, "caught": {"catch", "caught"}, "chosen": {"choose", "chose"},
	"cut": {"cut", "cut"}, "done": {"do", "did"}, "drawn": {"draw", "drew"},
	"driven": {"drive", "drove"}, "eaten": {"eat", "ate"}, "fallen": {"fall", "fell"},
	"fed": {"feed", "fed"}, "felt": {"feel", "felt"}, "forgotten": {"forget", "forgot"},
	"found": {"find", "found"}, "frozen": {"freeze", "froze"}, "given": {"give", "gave"},
	"gotten": {"get", "got"}, "grown": {"grow", "grew"}, "heard": {"hear", "heard"},
	"held": {"hold", "held"}, "hidden": {"hide", "hid"}, "hung": {"hang", "hung"},
	"kept": {"keep", "kept"}, "known": {"know", "knew"}, "led": {"lead", "led"},
	"left": {"leave", "left"}, "lent": {"lend", "lent"}, "lost": {"lose", "lost"},
	"made": {"make", "made"}, "meant": {"mean", "meant"}, "met": {"meet", "met"},
	"paid": {"pay", "paid"}, "put": {"put", "put"}, "read": {"read", "read"},
	"ridden": {"ride", "rode"}, "run": {"run", "ran"}, "said": {"say", "said"},
	"seen": {"see", "saw"}, "sent": {"send", "sent"}, "set": {"set", "set"},
	"shown": {"show", "showed"}, "shut": {"shut", "shut"}, "sold": {"sell", "sold"},
	"sought": {"seek", "sought"}, "spent": {"spend", "spent"}, "spoken": {"speak", "spoke"},
	"stolen": {"steal", "stole"}, "struck": {"strike", "struck"}, "sung": {"sing", "sang"},
	"taken": {"take", "took"}, "taught": {"teach", "taught"}, "thought": {"think", "thought"},
	"thrown": {"throw", "threw"}, "told": {"tell", "told"}, "understood": {"understand", "understood"},
	"woken": {"wake", "woke"}, "won": {"win", "won"}, "worn": {"wear", "wore"},
	"written": {"write", "wrote"},
}

// Words ending in -ed that are not participles.
var notParticiples = map[string]bool{
	"bed": true, "breed": true, "deed": true, "embed": true, "exceed": true,
	"feed": true, "greed": true, "hundred": true, "indeed": true, "naked": true,
	"need": true, "proceed": true, "red": true, "sacred": true, "seed": true,
	"shed": true, "speed": true, "succeed": true, "weed": true, "wicked": true,
}

// Stems whose base form is not recoverable by the suffix rules below.
var regularBaseExceptions = map[string]string{
	"caus": "cause", "creat": "create", "increas": "increase", "purchas": "purchase",
	"releas": "release", "us": "use", "pleas": "please",
	"target": "target", "budget": "budget", "market": "market", "ticket": "ticket",
	"monitor": "monitor", "author": "author", "sponsor": "sponsor", "anchor": "anchor",
	"pivot": "pivot",
}

var eSuffixes = []string{
	"at", "iz", "is", "uc", "ac", "nc", "rc", "rg", "dg", "ang", "v", "ur", "ir",
	"bl", "pl", "dl", "gl", "tl", "kl", "in", "id", "od", "ut", "os", "ib", "ar",
	"et", "ot", "rs", "ns", "ps", "ok", "ak", "ik", "yz", "ys", "ap", "or",
}

// Participle reports whether word is a past participle and returns its forms.
func Participle(word string) (VerbForms, bool) {
	w := strings.ToLower(word)
	if forms, ok := irregularVerbs[w]; ok {
		return VerbForms{Base: forms[0], Past: forms[1], Participle: w}, true
	}
	if len(w) <= 3 || !strings.HasSuffix(w, "ed") || notParticiples[w] {
		return VerbForms{}, false
	}
	return VerbForms{Base: regularBase(w), Past: w, Participle: w}, true
}

func isVowel(b byte) bool {
	return strings.IndexByte("aeiou", b) >= 0
}

func regularBase(p string) string {
	if strings.HasSuffix(p, "ied") {
		return strings.TrimSuffix(p, "ied") + "y"
	}
	stem := strings.TrimSuffix(p, "ed")
	if base, ok := regularBaseExceptions[stem]; ok {
		return base
	}
	n := len(stem)
	if n >= 3 && stem[n-1] == stem[n-2] && !isVowel(stem[n-1]) && !strings.ContainsRune("lsfz", rune(stem[n-1])) {
		return stem[:n-1]
	}
	if strings.HasSuffix(stem, "e") {
		// agreed, freed
		return stem
	}
	if n >= 3 && isVowel(stem[n-2]) && isVowel(stem[n-3]) {
		// treated, maintained, avoided
		return stem
	}
	for _, suf := range eSuffixes {
		if strings.HasSuffix(stem, suf) {
			return stem + "e"
		}
	}
	return stem
}

// ThirdPerson conjugates base for a singular third-person subject.
func ThirdPerson(base string) string {
	switch base {
	case "be":
		return "is"
	case "have":
		return "has"
	case "do":
		return "does"
	case "go":
		return "goes"
	}
	n := len(base)
	switch {
	case strings.HasSuffix(base, "s"), strings.HasSuffix(base, "sh"), strings.HasSuffix(base, "ch"),
		strings.HasSuffix(base, "x"), strings.HasSuffix(base, "z"), strings.HasSuffix(base, "o"):
		return base + "es"
	case n >= 2 && base[n-1] == 'y' && !isVowel(base[n-2]):
		return base[:n-1] + "ies"
	}
	return base + "s"
}
