package clients

import "time"

const (
	USER_AGENT = "tubepulse-client/1.0 (+https://github.com/spacesedan/tubepulse)"

	YOUTUBE_API_NAME              = "youtube"
	YOUTUBE_COMMENT_THREADS_UNITS = 1
	YOUTUBE_SEARCH_UNITS          = 100
	YOUTUBE_DEFAULT_RPS           = 5
	YOUTUBE_QUOTA_RECORD_TIMEOUT  = 500 * time.Millisecond

	LLM_DEFAULT_BASE_URL = "https://router.huggingface.co/v1/"
	LLM_DEFAULT_MODEL    = "mistralai/Mistral-Small-3.1-24B-Instruct-2503:nebius"
	LLM_REQUEST_TIMEOUT  = 60 * time.Second
)
