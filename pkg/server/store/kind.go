package store

//go:generate go run github.com/dmarkham/enumer -type Kind -trimprefix Kind -transform lower -json -output kind.gen.go

// Kind names an entity type for routing and audit purposes.
type Kind int

const (
	KindBid Kind = iota
	KindCurvePoint
	KindRating
	KindRuleName
	KindTrade
	KindUser
)
