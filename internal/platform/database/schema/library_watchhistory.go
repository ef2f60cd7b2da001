package schema

// LibraryWatchHistoryTable represents the 'library.watchhistory' table
type LibraryWatchHistoryTable struct {
	Table     string
	UserID    string
	VideoID   string
	WatchedAt string
}

// LibraryWatchHistory is the schema definition for library.watchhistory
var LibraryWatchHistory = LibraryWatchHistoryTable{
	Table:     "library.watchhistory",
	UserID:    "userid",
	VideoID:   "videoid",
	WatchedAt: "watchedat",
}
