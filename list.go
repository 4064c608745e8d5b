package payapi

// List is the paginated envelope the API wraps collection responses in.
// Data keeps the server's order, most recently created first.
type List[T any] struct {
	Object  string `json:"object"`
	Data    []T    `json:"data"`
	HasMore bool   `json:"has_more"`
	URL     string `json:"url"`
}
