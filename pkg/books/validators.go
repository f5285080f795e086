package books

import "mime/multipart"

type ListBooksQuery struct {
	Limit    int     `query:"limit" json:"limit,omitempty" default:"24" validate:"min=1,max=50"`
	Offset   int     `query:"offset" json:"offset,omitempty" validate:"min=0"`
	OwnerID  *string `query:"owner_id" json:"owner_id,omitempty" validate:"omitempty,uuid4"`
	Language *string `query:"language" json:"language,omitempty" validate:"omitempty,language"`
	Title    *string `query:"title" json:"title,omitempty" validate:"omitempty,max=300"`
	GenreIDs []int   `query:"genre_ids" json:"genre_ids,omitempty"`
}

// UploadBookPayload is the multipart payload for creating a book. The book
// file goes in the "file" part and the optional cover image in "cover".
type UploadBookPayload struct {
	OwnerID     string  `form:"owner_id" json:"owner_id" validate:"required,uuid4"`
	Title       string  `form:"title" json:"title" mod:"trim" validate:"required,max=300"`
	Language    string  `form:"language" json:"language" default:"en" validate:"language"`
	Description *string `form:"description" json:"description,omitempty" validate:"omitempty,max=2000"`
	GenreIDs    []int   `form:"genre_ids" json:"genre_ids,omitempty"`

	FormFiles map[string]*multipart.FileHeader `form:"-" json:"-"`
}

type RetrieveBookQuery struct {
	OwnerID *string `query:"owner_id" json:"owner_id,omitempty" validate:"omitempty,uuid4"`
}
