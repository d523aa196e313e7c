// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package topics

// stopwords are common English function words plus mailing-list
// boilerplate that carries no topical signal.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "had": true,
	"her": true, "was": true, "one": true, "our": true, "out": true,
	"has": true, "have": true, "this": true, "that": true, "with": true,
	"from": true, "they": true, "will": true, "would": true, "there": true,
	"their": true, "what": true, "about": true, "which": true, "when": true,
	"make": true, "like": true, "time": true, "just": true, "know": true,
	"into": true, "your": true, "some": true, "could": true, "them": true,
	"than": true, "then": true, "only": true, "over": true, "also": true,
	"other": true, "these": true, "should": true, "been": true, "were": true,
	"more": true, "does": true, "doesn": true, "don't": true, "it's": true,
	"i'm": true, "we're": true, "that's": true, "here": true, "very": true,
	"such": true, "because": true, "between": true, "both": true,
	"each": true, "where": true, "same": true, "being": true, "most": true,
	"after": true, "before": true, "under": true, "while": true, "since": true,
	"think": true, "thanks": true, "regards": true, "wrote": true,
	"said": true, "say": true, "says": true, "see": true, "well": true,
	"may": true, "might": true, "must": true, "shall": true, "need": true,
	"want": true, "use": true, "used": true, "using": true, "way": true,
	"any": true, "how": true, "why": true, "who": true, "its": true,
	"via": true, "per": true, "etc": true, "still": true, "though": true,
	"however": true, "therefore": true, "otherwise": true, "really": true,
	"actually": true, "probably": true, "maybe": true, "perhaps": true,
	"mailing": true, "list": true, "email": true, "mail": true,
	"message": true, "thread": true, "reply": true, "sent": true,
}
