package models

const (
	CommentsPageSize    = 50
	MaxCommentsPerVideo = 100
	MaxThemeVideos      = 5
	MaxCorpusComments   = MaxThemeVideos * MaxCommentsPerVideo
	MaxKeywords         = 30
	MaxSummaryInputs    = 50
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

type Comment struct {
	Username string `json:"username"`
	Text     string `json:"text"`
	Likes    int64  `json:"likes"`
}

// EnrichedComment is a Comment annotated by the sentiment scorer.
type EnrichedComment struct {
	Comment
	Sentiment Sentiment `json:"sentiment"`
	Score     float64   `json:"score"`
}

// CommentPage is a single page of top-level comment threads.
type CommentPage struct {
	Comments      []Comment
	NextPageToken string
}

// Texts returns the text of every comment, in order.
func Texts(comments []Comment) []string {
	texts := make([]string, 0, len(comments))
	for _, c := range comments {
		texts = append(texts, c.Text)
	}
	return texts
}
