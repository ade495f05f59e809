package dto

type MQPostCreatedMsg struct {
	PostID    string `json:"post_id"`
	UserID    string `json:"user_id"`
	PostTitle string `json:"post_title"`
	CreatedAt string `json:"created_at"`
}

type MQPostDeletedMsg struct {
	PostID    string `json:"post_id"`
	UserID    string `json:"user_id"`
	DeletedAt string `json:"deleted_at"`
}
