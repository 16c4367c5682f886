package entity

// Kind tags each resource so authorization can branch on the resource
// type without runtime type inspection.
type Kind string

const (
	KindUser     Kind = "user"
	KindCategory Kind = "category"
	KindGenre    Kind = "genre"
	KindTitle    Kind = "title"
	KindReview   Kind = "review"
	KindComment  Kind = "comment"
)

// Resource is what the instance-level authorization check operates on.
type Resource interface {
	Kind() Kind
	OwnerID() string
}
