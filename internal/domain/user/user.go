package user

type User struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	AccessToken string `json:"-"` // stored hashed, never exposed
	UserID      int64  `json:"user_id"`
}

// UserID is a pointer so that 0 is accepted and only a missing field fails.
type CreateUserRequest struct {
	Email       string `json:"email" binding:"required,email,max=254"`
	FirstName   string `json:"first_name" binding:"required,max=100"`
	LastName    string `json:"last_name" binding:"required,max=100"`
	AccessToken string `json:"access_token" binding:"required"`
	UserID      *int64 `json:"user_id" binding:"required"`
}

func NewFromCreateRequest(req CreateUserRequest) User {
	var userID int64
	if req.UserID != nil {
		userID = *req.UserID
	}

	return User{
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		AccessToken: req.AccessToken,
		UserID:      userID,
	}
}
