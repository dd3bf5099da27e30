package models

// RegisterRequest carries the registration form fields.
type RegisterRequest struct {
	AcademicID string `form:"academic_id" validate:"required,min=2,max=50"`
	Password   string `form:"password" validate:"required,min=4"`
	Role       string `form:"role" validate:"required,oneof=student professor admin"`
}

// LoginRequest carries the login form fields.
type LoginRequest struct {
	AcademicID string `form:"academic_id" validate:"required"`
	Password   string `form:"password" validate:"required"`
}

// ResultRequest carries the grade entry form fields.
type ResultRequest struct {
	StudentName string `form:"student_name" validate:"required"`
	CourseName  string `form:"course_name" validate:"required"`
	Grade       string `form:"grade" validate:"required,max=10"`
}
