package user

type User struct {
	ID          int    `json:"userId"`
	Email       string `json:"email"`
	Password    string `json:"password,omitempty"`
	DisplayName string `json:"displayName"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}
