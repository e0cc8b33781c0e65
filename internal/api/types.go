package api

// AuthResponse is the body returned by /register, /auth and /logout.
type AuthResponse struct {
	Msg string `json:"msg"`
}

// UserInfo is the account summary some endpoints include.
type UserInfo struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"fullName,omitempty"`
}

// HomepageResponse is the body of the protected /homepage session check.
type HomepageResponse struct {
	Msg  string    `json:"msg"`
	User *UserInfo `json:"user,omitempty"`
}

// CreatePostRequest is the body of /create_post.
type CreatePostRequest struct {
	Content string `json:"content"`
}

// CreatePostResponse is the reply from /create_post.
type CreatePostResponse struct {
	Msg string `json:"msg"`
	ID  string `json:"id,omitempty"`
}
