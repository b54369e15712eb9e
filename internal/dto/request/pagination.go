package request

const (
	DefaultFrom = 0
	DefaultSize = 20
)

// PageRequest is the {from, size} window applied after filtering and
// ordering. Out-of-range values fail validation rather than being clamped.
type PageRequest struct {
	From int `json:"from" validate:"min=0"`
	Size int `json:"size" validate:"min=1,max=20"`
}

func (p PageRequest) Offset() int {
	return p.From
}

func (p PageRequest) Limit() int {
	return p.Size
}
