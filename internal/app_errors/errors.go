package app_errors

import "errors"

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrIncorrectPassword = errors.New("incorrect password")
var ErrTokenNotFound = errors.New("token not found")
var ErrTokenExpired = errors.New("token expired")

var ErrCourseNotFound = errors.New("course not found")
var ErrModuleNotFound = errors.New("module not found")
var ErrLessonNotFound = errors.New("lesson not found")
var ErrQuizNotFound = errors.New("quiz not found")
var ErrAnnouncementNotFound = errors.New("announcement not found")
var ErrAnnouncementInvalid = errors.New("announcement title and content are required")
var ErrCourseNotPublished = errors.New("course not published")
var ErrNotCourseAuthor = errors.New("you are not course author")
var ErrDuplicateModuleOrder = errors.New("module with this order already exists in the course")
var ErrDuplicateLessonOrder = errors.New("lesson with this order already exists in the module")

var ErrEnrollmentNotFound = errors.New("enrollment not found")
var ErrNotEnrollmentOwner = errors.New("enrollment belongs to another student")
var ErrEnrollmentDropped = errors.New("enrollment is dropped")

var ErrProfileUnavailable = errors.New("profile unavailable")

var ErrInvalidSnippets = errors.New("code snippets must be a JSON array of {language, code} objects")
var ErrNotImage = errors.New("not image")
var ErrFileSize = errors.New("file size error")
var ErrImageNotFound = errors.New("image not found")
