package api

// createPostRequest is the payload for POST /posts.
type createPostRequest struct {
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	Status         string   `json:"status"`
	EventDate      string   `json:"eventDate"`
	TagIDs         []string `json:"tagIds"`
	SourceAPIName  *string  `json:"sourceApiName"`
	SourceImageURL *string  `json:"sourceImageUrl"`
	SourceDataURL  *string  `json:"sourceDataUrl"`
}

// updatePostRequest is the payload for PATCH /posts/{postID}. Pointer fields
// distinguish "omitted" from "set": omitted fields keep their prior values,
// a supplied tagIds fully replaces the association set.
type updatePostRequest struct {
	Title          *string   `json:"title"`
	Content        *string   `json:"content"`
	Status         *string   `json:"status"`
	EventDate      *string   `json:"eventDate"`
	TagIDs         *[]string `json:"tagIds"`
	SourceAPIName  *string   `json:"sourceApiName"`
	SourceImageURL *string   `json:"sourceImageUrl"`
	SourceDataURL  *string   `json:"sourceDataUrl"`
}

// createTagRequest is the payload for POST /tags.
type createTagRequest struct {
	Name string `json:"name"`
}

// updateTagRequest is the payload for PATCH /tags/{tagID}.
type updateTagRequest struct {
	Name *string `json:"name"`
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}
