package http

// FetchReadmeRequest is the body of POST /api/fetch-readme.
type FetchReadmeRequest struct {
	URL string `json:"url" validate:"required"`
}

// FetchReadmeResponse carries the rendered, sanitized README HTML.
type FetchReadmeResponse struct {
	HTML string `json:"html"`
}
