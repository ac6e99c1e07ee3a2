package tag

// PopularTag pairs a tag with how many articles carry it.
type PopularTag struct {
	Name         string `json:"name"`
	ArticleCount int    `json:"article_count"`
}

type TagListResponse struct {
	Tags []string `json:"tags"`
}

type PopularTagsResponse struct {
	Tags []PopularTag `json:"tags"`
}
