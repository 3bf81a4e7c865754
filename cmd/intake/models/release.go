package models

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// ReleaseType is the release request discriminant. Immutable after creation.
type ReleaseType string

const (
	ReleaseNewMusic    ReleaseType = "new-music"
	ReleaseBackCatalog ReleaseType = "back-catalog"
	ReleaseClip        ReleaseType = "clip"
)

// RequestStatus is the release request lifecycle status
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusError    RequestStatus = "error"
)

// Track is a single track of a music release
type Track struct {
	Title                   string `bson:"title" json:"title"`
	Performers              string `bson:"performers" json:"performers"`
	Version                 string `bson:"version,omitempty" json:"version,omitempty"`
	Explicit                bool   `bson:"explicit" json:"explicit"`
	Preview                 string `bson:"preview" json:"preview"`
	IsCover                 bool   `bson:"is_cover" json:"is_cover"`
	PerformersNames         string `bson:"performers_names" json:"performers_names"`
	MusicAuthorsNames       string `bson:"music_authors_names" json:"music_authors_names"`
	LyricistsNames          string `bson:"lyricists_names,omitempty" json:"lyricists_names,omitempty"`
	PhonogramProducersNames string `bson:"phonogram_producers_names" json:"phonogram_producers_names"`
	ISRC                    string `bson:"isrc,omitempty" json:"isrc,omitempty"` // back-catalog only
	WavFileID               string `bson:"wav_file_id" json:"wav_file_id"`
	TextFileID              string `bson:"text_file_id,omitempty" json:"text_file_id,omitempty"`
}

// ReleaseHeader carries the release-level fields shared by all payload variants
type ReleaseHeader struct {
	Performers string
	Title      string
	Version    string
	Genre      string
}

// Release is the type-tagged payload of a release request. Consumers dispatch
// on the concrete type and must cover all three variants.
type Release interface {
	Type() ReleaseType
	Header() ReleaseHeader
}

// NewMusicRelease is a first-publication music release
type NewMusicRelease struct {
	Performers  string  `bson:"performers" json:"performers"`
	Title       string  `bson:"title" json:"title"`
	Version     string  `bson:"version,omitempty" json:"version,omitempty"`
	Genre       string  `bson:"genre" json:"genre"`
	Tracks      []Track `bson:"tracks" json:"tracks"`
	CoverFileID string  `bson:"cover_file_id" json:"cover_file_id"`
}

func (*NewMusicRelease) Type() ReleaseType { return ReleaseNewMusic }

func (r *NewMusicRelease) Header() ReleaseHeader {
	return ReleaseHeader{Performers: r.Performers, Title: r.Title, Version: r.Version, Genre: r.Genre}
}

// BackCatalogRelease is a previously published release being re-delivered.
// Source records where the release was originally distributed; it is sheet
// metadata, not a sourcing discriminant.
type BackCatalogRelease struct {
	Performers  string  `bson:"performers" json:"performers"`
	Title       string  `bson:"title" json:"title"`
	Version     string  `bson:"version,omitempty" json:"version,omitempty"`
	Genre       string  `bson:"genre" json:"genre"`
	UPC         string  `bson:"upc" json:"upc"`
	Date        string  `bson:"date" json:"date"` // original publication date
	Source      string  `bson:"source" json:"source"`
	Tracks      []Track `bson:"tracks" json:"tracks"`
	CoverFileID string  `bson:"cover_file_id" json:"cover_file_id"`
}

func (*BackCatalogRelease) Type() ReleaseType { return ReleaseBackCatalog }

func (r *BackCatalogRelease) Header() ReleaseHeader {
	return ReleaseHeader{Performers: r.Performers, Title: r.Title, Version: r.Version, Genre: r.Genre}
}

// ClipRelease is a video clip release
type ClipRelease struct {
	Performers              string `bson:"performers" json:"performers"`
	Title                   string `bson:"title" json:"title"`
	Version                 string `bson:"version,omitempty" json:"version,omitempty"`
	Genre                   string `bson:"genre" json:"genre"`
	ReleaseLink             string `bson:"release_link" json:"release_link"`
	PerformersNames         string `bson:"performers_names" json:"performers_names"`
	MusicAuthorsNames       string `bson:"music_authors_names" json:"music_authors_names"`
	LyricistsNames          string `bson:"lyricists_names,omitempty" json:"lyricists_names,omitempty"`
	PhonogramProducersNames string `bson:"phonogram_producers_names" json:"phonogram_producers_names"`
	DirectorsNames          string `bson:"directors_names" json:"directors_names"`
	CoverFileID             string `bson:"cover_file_id" json:"cover_file_id"`
}

func (*ClipRelease) Type() ReleaseType { return ReleaseClip }

func (r *ClipRelease) Header() ReleaseHeader {
	return ReleaseHeader{Performers: r.Performers, Title: r.Title, Version: r.Version, Genre: r.Genre}
}

// DecodeReleaseJSON decodes the type-tagged payload from a JSON document
func DecodeReleaseJSON(typ ReleaseType, raw json.RawMessage) (Release, error) {
	switch typ {
	case ReleaseNewMusic:
		var r NewMusicRelease
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("decode new-music payload: %w", err)
		}
		return &r, nil
	case ReleaseBackCatalog:
		var r BackCatalogRelease
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("decode back-catalog payload: %w", err)
		}
		return &r, nil
	case ReleaseClip:
		var r ClipRelease
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("decode clip payload: %w", err)
		}
		return &r, nil
	default:
		return nil, fmt.Errorf("unknown release type %q", typ)
	}
}

// DecodeReleaseBSON decodes the type-tagged payload from a stored document
func DecodeReleaseBSON(typ ReleaseType, raw bson.Raw) (Release, error) {
	switch typ {
	case ReleaseNewMusic:
		var r NewMusicRelease
		if err := bson.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("decode new-music payload: %w", err)
		}
		return &r, nil
	case ReleaseBackCatalog:
		var r BackCatalogRelease
		if err := bson.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("decode back-catalog payload: %w", err)
		}
		return &r, nil
	case ReleaseClip:
		var r ClipRelease
		if err := bson.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("decode clip payload: %w", err)
		}
		return &r, nil
	default:
		return nil, fmt.Errorf("unknown release type %q", typ)
	}
}

// ReleaseRequest is the unit of work: one submitted release with its authors
// and a submission-time snapshot of the submitter's legal profile. Source is
// the request-level cloud link; when set, the media is already hosted and the
// delivery action skips relocation entirely.
type ReleaseRequest struct {
	ID              string        `json:"id,omitempty"`
	Username        string        `json:"username"`
	Date            string        `json:"date"`
	Imprint         string        `json:"imprint"`
	Source          string        `json:"source,omitempty"`
	Type            ReleaseType   `json:"type"`
	Status          RequestStatus `json:"status"`
	InDeliverySheet bool          `json:"in_delivery_sheet"`
	InDocsSheet     bool          `json:"in_docs_sheet"`
	Data            Release       `json:"data"`
	Authors         []Author      `json:"authors"`
	UserData        Profile       `json:"user_data"`
}

// UnmarshalJSON decodes the request, dispatching the data payload on type
func (r *ReleaseRequest) UnmarshalJSON(data []byte) error {
	type alias ReleaseRequest
	aux := struct {
		*alias
		Data json.RawMessage `json:"data"`
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if len(aux.Data) > 0 {
		payload, err := DecodeReleaseJSON(r.Type, aux.Data)
		if err != nil {
			return err
		}
		r.Data = payload
	}

	return nil
}

// Tracks returns the track list of the payload; empty for clip releases
func (r *ReleaseRequest) Tracks() []Track {
	switch data := r.Data.(type) {
	case *NewMusicRelease:
		return data.Tracks
	case *BackCatalogRelease:
		return data.Tracks
	default:
		return nil
	}
}

// CloudSourced reports whether the media is already hosted externally:
// a request-level source link, or the release link of a clip. File-sourced
// requests carry staged file ids instead. BackCatalogRelease.Source never
// enters this decision.
func (r *ReleaseRequest) CloudSourced() bool {
	if r.Source != "" {
		return true
	}
	clip, ok := r.Data.(*ClipRelease)
	return ok && clip.ReleaseLink != ""
}
