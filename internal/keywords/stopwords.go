package keywords

var englishStopWords = []string{
	"a", "about", "above", "according", "across", "actually", "after", "afterwards",
	"again", "against", "all", "almost", "alone", "along", "already", "also", "although",
	"always", "am", "among", "amongst", "an", "and", "another", "any", "anybody", "anyhow",
	"anyone", "anything", "anyway", "anyways", "anywhere", "are", "aren't", "around", "as",
	"aside", "at", "away", "back", "be", "became", "because", "become", "becomes",
	"becoming", "been", "before", "beforehand", "behind", "being", "below", "beside",
	"besides", "best", "better", "between", "beyond", "both", "but", "by", "came", "can",
	"can't", "cannot", "cant", "could", "couldn't", "did", "didn't", "do", "does",
	"doesn't", "doing", "don't", "done", "down", "during", "each", "eg", "eight", "either",
	"else", "elsewhere", "enough", "etc", "even", "ever", "every", "everybody", "everyone",
	"everything", "everywhere", "ex", "except", "far", "few", "fifth", "first", "five",
	"for", "former", "formerly", "forth", "four", "from", "further", "furthermore", "get",
	"gets", "getting", "given", "gives", "go", "goes", "going", "gone", "got", "gotten",
	"had", "hadn't", "has", "hasn't", "have", "haven't", "having", "he", "he'd", "he'll",
	"he's", "hence", "her", "here", "here's", "hereafter", "hereby", "herein", "hers",
	"herself", "hi", "him", "himself", "his", "hither", "how", "however", "i", "i'd",
	"i'll", "i'm", "i've", "ie", "if", "im", "in", "inc", "indeed", "instead", "into", "is",
	"isn't", "it", "it'd", "it'll", "it's", "its", "itself", "just", "keep", "keeps",
	"kept", "know", "known", "knows", "last", "lately", "later", "latter", "least", "less",
	"lest", "let", "let's", "like", "liked", "likely", "little", "look", "looking", "looks",
	"ltd", "made", "mainly", "make", "makes", "many", "may", "maybe", "me", "mean",
	"meanwhile", "merely", "might", "mine", "more", "moreover", "most", "mostly", "much",
	"must", "my", "myself", "name", "namely", "near", "nearly", "need", "needs", "neither",
	"never", "nevertheless", "new", "next", "nine", "no", "nobody", "non", "none", "noone",
	"nor", "normally", "not", "nothing", "now", "nowhere", "of", "off", "often", "oh", "ok",
	"okay", "old", "on", "once", "one", "ones", "only", "onto", "or", "other", "others",
	"otherwise", "ought", "our", "ours", "ourselves", "out", "outside", "over", "overall",
	"own", "per", "perhaps", "please", "plus", "quite", "rather", "re", "really", "said",
	"same", "saw", "say", "saying", "says", "second", "see", "seeing", "seem", "seemed",
	"seeming", "seems", "seen", "self", "selves", "sent", "seven", "several", "shall",
	"she", "she'd", "she'll", "she's", "should", "shouldn't", "since", "six", "so", "some",
	"somebody", "somehow", "someone", "something", "sometime", "sometimes", "somewhat",
	"somewhere", "soon", "still", "such", "sure", "take", "taken", "tell", "than", "that",
	"that's", "thats", "the", "their", "theirs", "them", "themselves", "then", "thence",
	"there", "there's", "thereafter", "thereby", "therefore", "therein", "thereupon",
	"these", "they", "they'd", "they'll", "they're", "they've", "thing", "things", "think",
	"third", "this", "thorough", "thoroughly", "those", "though", "three", "through",
	"throughout", "thru", "thus", "to", "together", "too", "took", "toward", "towards",
	"tried", "tries", "truly", "try", "trying", "twice", "two", "un", "under", "until",
	"unto", "up", "upon", "us", "use", "used", "uses", "using", "usually", "very", "via",
	"vs", "want", "wants", "was", "wasn't", "way", "we", "we'd", "we'll", "we're", "we've",
	"well", "went", "were", "weren't", "what", "what's", "whatever", "when", "whence",
	"whenever", "where", "where's", "whereafter", "whereas", "whereby", "wherein",
	"whereupon", "wherever", "whether", "which", "while", "whither", "who", "who's",
	"whoever", "whole", "whom", "whose", "why", "will", "willing", "with", "within",
	"without", "won't", "would", "wouldn't", "yeah", "yes", "yet", "you", "you'd", "you'll",
	"you're", "you've", "your", "yours", "yourself", "yourselves", "zero",
}

var stopWordSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(englishStopWords))
	for _, w := range englishStopWords {
		set[w] = struct{}{}
	}
	return set
}()

// IsStopWord reports whether a lowercased word is an English stop word.
func IsStopWord(word string) bool {
	_, ok := stopWordSet[word]
	return ok
}
