package sentiment

import (
	"testing"

	"github.com/spacesedan/tubepulse/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		score float64
		want  models.Sentiment
	}{
		{0.9, models.SentimentPositive},
		{0.31, models.SentimentPositive},
		{0.3, models.SentimentNeutral},
		{0, models.SentimentNeutral},
		{-0.3, models.SentimentNeutral},
		{-0.31, models.SentimentNegative},
		{-1, models.SentimentNegative},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.score), "score %v", tt.score)
	}
}

func TestAnalyzeWithVADER(t *testing.T) {
	score, label := AnalyzeWithVADER("I love this video, it is absolutely amazing!")
	assert.Greater(t, score, POSITIVE_THRESHOLD)
	assert.Equal(t, models.SentimentPositive, label)

	score, label = AnalyzeWithVADER("This is terrible. I hate it, worst upload ever.")
	assert.Less(t, score, NEGATIVE_THRESHOLD)
	assert.Equal(t, models.SentimentNegative, label)

	score, label = AnalyzeWithVADER("The video was uploaded on Tuesday.")
	assert.Equal(t, models.SentimentNeutral, label)
	assert.Equal(t, Classify(score), label)
}

func TestAnalyzeWithVADERDegradesGracefully(t *testing.T) {
	inputs := []string{"", "   ", "🎉🎉🔥", "これはテストのコメントです", "12345", "<br><br>"}
	for _, in := range inputs {
		score, label := AnalyzeWithVADER(in)
		assert.GreaterOrEqual(t, score, -1.0, in)
		assert.LessOrEqual(t, score, 1.0, in)
		assert.Equal(t, Classify(score), label, in)
	}

	score, label := AnalyzeWithVADER("")
	assert.Zero(t, score)
	assert.Equal(t, models.SentimentNeutral, label)
}

func TestScoreSentimentIsPureAndOrdered(t *testing.T) {
	comments := []models.Comment{
		{Username: "a", Text: "What a wonderful, beautiful song. Love it!", Likes: 4},
		{Username: "b", Text: "Posted at noon.", Likes: 0},
		{Username: "c", Text: "Awful sound, horrible mixing, I hate it.", Likes: 2},
	}
	original := append([]models.Comment(nil), comments...)

	first := ScoreSentiment(comments)
	second := ScoreSentiment(comments)

	require.Len(t, first, 3)
	assert.Equal(t, first, second)
	assert.Equal(t, original, comments)

	for i, c := range first {
		assert.Equal(t, comments[i], c.Comment)
		assert.Equal(t, Classify(c.Score), c.Sentiment)
	}
	assert.Equal(t, models.SentimentPositive, first[0].Sentiment)
	assert.Equal(t, models.SentimentNeutral, first[1].Sentiment)
	assert.Equal(t, models.SentimentNegative, first[2].Sentiment)

	pos, neu, neg := Distribution(first)
	assert.Equal(t, []int{1, 1, 1}, []int{pos, neu, neg})
}

func TestConvertMarkdownToText(t *testing.T) {
	assert.Equal(t, "great video", ConvertMarkdownToText("**great** [video](https://example.com/x)"))
	assert.Equal(t, "see", ConvertMarkdownToText("see https://youtu.be/abc"))
	assert.Equal(t, "", ConvertMarkdownToText(""))
}
