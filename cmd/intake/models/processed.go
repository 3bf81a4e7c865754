package models

// ProcessedTrack is a track with staged file references replaced by resolved
// public links
type ProcessedTrack struct {
	Title      string `bson:"title" json:"title"`
	Performers string `bson:"performers" json:"performers"`
	Version    string `bson:"version,omitempty" json:"version,omitempty"`
	ISRC       string `bson:"isrc,omitempty" json:"isrc,omitempty"`
	Duration   string `bson:"duration,omitempty" json:"duration,omitempty"`
	WavLink    string `bson:"wav_link,omitempty" json:"wav_link,omitempty"`
	Mp3Link    string `bson:"mp3_link,omitempty" json:"mp3_link,omitempty"`
	TextLink   string `bson:"text_link,omitempty" json:"text_link,omitempty"`
}

// ProcessedRequest is the archival snapshot produced by the delivery-sheet
// action, keyed by the originating request id. The docs action reuses its
// cover link and compares its profile snapshot against the submitter's
// current profile.
type ProcessedRequest struct {
	ID         string      `bson:"_id" json:"id"`
	Username   string      `bson:"username" json:"username"`
	Date       string      `bson:"date" json:"date"`
	Imprint    string      `bson:"imprint" json:"imprint"`
	Type       ReleaseType `bson:"type" json:"type"`
	Performers string      `bson:"performers" json:"performers"`
	Title      string      `bson:"title" json:"title"`

	FolderLink string `bson:"folder_link,omitempty" json:"folder_link,omitempty"`
	CoverLink  string `bson:"cover_link,omitempty" json:"cover_link,omitempty"`
	SourceLink string `bson:"source_link,omitempty" json:"source_link,omitempty"`

	Tracks []ProcessedTrack `bson:"tracks,omitempty" json:"tracks,omitempty"`

	UserData Profile `bson:"user_data" json:"user_data"`
}
