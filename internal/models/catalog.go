package models

// Course is a taught subject. The professor column is free text, not a
// reference into users.
type Course struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Professor string `db:"professor" json:"professor"`
}

// Lecture is a course material entry whose file lives in the document store.
type Lecture struct {
	ID          string `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
	FilePath    string `db:"file_path" json:"file_path"`
}

// Assignment is a homework entry whose file lives in the document store.
type Assignment struct {
	ID       string `db:"id" json:"id"`
	Title    string `db:"title" json:"title"`
	DueDate  string `db:"due_date" json:"due_date"`
	FilePath string `db:"file_path" json:"file_path"`
}

// Result is a denormalized grade row. It deliberately carries names instead
// of foreign keys, mirroring how the registrar publishes grade sheets.
type Result struct {
	ID          string `db:"id" json:"id"`
	StudentName string `db:"student_name" json:"student_name"`
	CourseName  string `db:"course_name" json:"course_name"`
	Grade       string `db:"grade" json:"grade"`
}
