package domain

// Caller is the identity-relevant part of a request: an explicit user id if
// the client sent one, and the network addresses it came from.
type Caller struct {
	UserId       AuthorId
	ForwardedFor string
	RemoteAddr   string
}
