package handler

// postFormRequest carries the text fields of the multipart create/update
// post form. The image arrives separately as the "image" file part.
type postFormRequest struct {
	Title       string `form:"title"       validate:"required"`
	Subtitle    string `form:"subtitle"    validate:"required"`
	Description string `form:"description" validate:"required"`
	Content     string `form:"content"     validate:"required"`
	Year        string `form:"year"        validate:"required"`
}

type commentRequest struct {
	Comment string `json:"comment" validate:"required"`
}
