package dto

type CreatePostRequest struct {
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags"`
}

type SetFeaturedRequest struct {
	Featured bool `json:"featured"`
}
