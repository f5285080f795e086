package chapters

type ListChaptersQuery struct {
	BookID string `query:"book_id" json:"book_id" validate:"required,uuid4"`
	Limit  int    `query:"limit" json:"limit,omitempty" default:"50" validate:"min=1,max=200"`
	Offset int    `query:"offset" json:"offset,omitempty" validate:"min=0"`
}

type DeleteChaptersPayload struct {
	BookID     string   `json:"book_id" validate:"required,uuid4"`
	OwnerID    string   `json:"owner_id" validate:"required,uuid4"`
	ChapterIDs []string `json:"chapter_ids" validate:"required,min=1,dive,uuid4"`
}
