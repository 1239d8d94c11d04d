package student

type CreateStudentRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// UpdateStudentRequest carries a partial edit; only non-nil fields are
// applied. Email is immutable, matching the registry key.
type UpdateStudentRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
}
