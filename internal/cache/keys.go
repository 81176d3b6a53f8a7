package cache

// Key formats are shared with other consumers of the store and must not change.

func FacebookPageIDKey(pageURL string) string {
	return "fb_page_id:" + pageURL
}

func FacebookPostsKey(pageID string) string {
	return "fb_posts:" + pageID
}

func TwitterKey(username string) string {
	return "twitter:" + username
}

func InstagramKey(username string) string {
	return "instagram:" + username
}
