package domain

type (
	ThreadId    = string
	ThreadTitle = string
	CommentId   = string
	CommentBody = string
	AuthorId    = string
	SubjectKey  = string
)
