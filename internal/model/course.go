package model

// Course справочные данные курса, используются для фильтрации и привязки групп
type Course struct {
	CourseID    string `json:"courseId"`
	CourseName  string `json:"courseName"`
	Description string `json:"description,omitempty"`
}
