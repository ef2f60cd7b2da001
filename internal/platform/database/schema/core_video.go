package schema

// CoreVideoTable represents the 'core.video' table
type CoreVideoTable struct {
	Table        string
	ID           string
	OwnerID      string
	Title        string
	Description  string
	ThumbnailID  string
	ThumbnailURL string
	Duration     string
	ViewCount    string
	IsPublished  string
	CreatedAt    string
	UpdatedAt    string
}

// CoreVideo is the schema definition for core.video
var CoreVideo = CoreVideoTable{
	Table:        "core.video",
	ID:           "id",
	OwnerID:      "ownerid",
	Title:        "title",
	Description:  "description",
	ThumbnailID:  "thumbnailid",
	ThumbnailURL: "thumbnailurl",
	Duration:     "duration",
	ViewCount:    "viewcount",
	IsPublished:  "ispublished",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}
