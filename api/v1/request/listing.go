package request

// PostingForm is shared by item and bid postings. Title and
// description are deliberately not required: empty strings are
// accepted, only the image file is validated.
type PostingForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}
