package sentiment

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
	"github.com/spacesedan/tubepulse/internal/models"
)

const (
	POSITIVE_THRESHOLD = 0.3
	NEGATIVE_THRESHOLD = -0.3
)

var (
	analyzer = govader.NewSentimentIntensityAnalyzer()

	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders any markdown in a comment and keeps only the
// visible text, so markup never reaches the lexicon.
func ConvertMarkdownToText(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}

	html := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())

	text := string(html)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err == nil {
		text = doc.Text()
	}

	return strings.Join(strings.Fields(RemoveLinks(text)), " ")
}

// Classify maps a compound score onto a label.
func Classify(score float64) models.Sentiment {
	switch {
	case score > POSITIVE_THRESHOLD:
		return models.SentimentPositive
	case score < NEGATIVE_THRESHOLD:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func AnalyzeWithVADER(text string) (float64, models.Sentiment) {
	plainText := ConvertMarkdownToText(text)
	if plainText == "" {
		return 0, models.SentimentNeutral
	}

	score := analyzer.PolarityScores(plainText).Compound
	if score > 1 {
		score = 1
	} else if score < -1 {
		score = -1
	}

	return score, Classify(score)
}

// ScoreSentiment returns one enriched record per comment, in input order.
func ScoreSentiment(comments []models.Comment) []models.EnrichedComment {
	enriched := make([]models.EnrichedComment, 0, len(comments))
	for _, c := range comments {
		score, label := AnalyzeWithVADER(c.Text)
		enriched = append(enriched, models.EnrichedComment{
			Comment:   c,
			Sentiment: label,
			Score:     score,
		})
	}
	return enriched
}

// Distribution counts labels across enriched comments.
func Distribution(comments []models.EnrichedComment) (positive, neutral, negative int) {
	for _, c := range comments {
		switch c.Sentiment {
		case models.SentimentPositive:
			positive++
		case models.SentimentNegative:
			negative++
		default:
			neutral++
		}
	}
	return positive, neutral, negative
}
