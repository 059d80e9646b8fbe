package util

import "errors"

var (
	ErrCourseNotPurchased = errors.New("course not purchased")
	ErrNoCoursesFound     = errors.New("no courses found")
	ErrLectureNotFound    = errors.New("lecture not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrPermissionDenied   = errors.New("permission denied")
)
