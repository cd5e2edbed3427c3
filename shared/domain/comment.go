package domain

// Comment is an immutable snapshot, replaced wholesale when liked.
type Comment struct {
	Id        CommentId   `json:"id"`
	ThreadId  ThreadId    `json:"threadId"`
	AuthorId  AuthorId    `json:"authorId,omitempty"`
	Body      CommentBody `json:"body"`
	CreatedAt int64       `json:"createdAt"`
	Likes     int         `json:"likes"`
}

// OrderKey is the per-thread comment-order index key, derived from CreatedAt.
func (c Comment) OrderKey() string {
	return OrderingKey(c.CreatedAt, c.Id)
}

func (c Comment) Liked() Comment {
	next := c
	next.Likes++
	return next
}

type CommentCreationData struct {
	ThreadId ThreadId
	AuthorId AuthorId
	Body     CommentBody
}

// CommentQuery selects a page of a thread's comments. Since is epoch ms; zero
// or negative disables the lower bound.
type CommentQuery struct {
	ThreadId ThreadId
	Since    int64
	Cursor   string
	Limit    int
}

type CommentPage struct {
	Items      []Comment
	NextCursor string
}
