package request

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// ListParams holds the offset/limit pagination query parameters shared by list endpoints.
type ListParams struct {
	Offset int `form:"offset" binding:"min=0"`
	Limit  int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Normalize fills in the default limit when the client did not send one.
func (p *ListParams) Normalize() {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}
