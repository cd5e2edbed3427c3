package domain

// Thread is an immutable snapshot: every change produces a new value that
// replaces the old one in the store.
type Thread struct {
	Id             ThreadId    `json:"id"`
	Title          ThreadTitle `json:"title"`
	AuthorId       AuthorId    `json:"authorId,omitempty"`
	CreatedAt      int64       `json:"createdAt"`
	LastActivityAt int64       `json:"lastActivityAt"`
	PostCount      int         `json:"postCount"`
}

// OrderKey is the thread-order index key, derived from LastActivityAt.
func (t Thread) OrderKey() string {
	return OrderingKey(t.LastActivityAt, t.Id)
}

// WithComment returns the snapshot after a comment created at ts was added.
func (t Thread) WithComment(ts int64) Thread {
	next := t
	next.LastActivityAt = max(t.LastActivityAt, ts)
	next.PostCount++
	return next
}

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	Title    ThreadTitle
	AuthorId AuthorId
	Body     CommentBody
}

type ThreadPage struct {
	Items      []Thread
	NextCursor string
}
