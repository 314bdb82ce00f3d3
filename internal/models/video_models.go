package models

const WATCH_URL_PREFIX = "https://www.youtube.com/watch?v="

type VideoRef struct {
	VideoID string `json:"videoId"`
	Title   string `json:"title"`
}

func (v VideoRef) WatchURL() string {
	return WATCH_URL_PREFIX + v.VideoID
}

func (v VideoRef) Link() VideoLink {
	return VideoLink{Title: v.Title, URL: v.WatchURL()}
}

type VideoLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
