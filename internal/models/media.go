package models

import "time"

// Media represents a catalogued media record.
// The pair (ProviderID, Source) is the dedup fingerprint; it is stored
// combined in Fingerprint so bolthold can enforce uniqueness on one field.
type Media struct {
	ID          uint64 `boltholdKey:"ID" json:"id"`
	Fingerprint string `boltholdUnique:"Fingerprint" json:"-"`

	Title      string    `json:"title"`
	Type       MediaType `boltholdIndex:"Type" json:"type"`
	Source     string    `json:"source"`
	ProviderID string    `json:"provider_id"`

	LengthSeconds *int `json:"length_seconds,omitempty"`

	CreatedAt    time.Time  `json:"created_at"`
	LastOpenedAt *time.Time `json:"last_opened_at,omitempty"`
	OpenMethod   string     `json:"open_method,omitempty"`

	IsFavorite  bool   `boltholdIndex:"IsFavorite" json:"is_favorite"`
	IsLocalFile bool   `json:"is_local_file"`
	LocalPath   string `json:"local_path,omitempty"`

	Description  string `json:"description,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Season       *int   `json:"season,omitempty"`
	Episode      *int   `json:"episode,omitempty"`
	Artist       string `json:"artist,omitempty"`
	Album        string `json:"album,omitempty"`
	Channel      string `json:"channel,omitempty"`

	// Suppression state. Blacklisted == false implies SuppressionCode == 0
	// and BlacklistedAt == nil.
	Blacklisted     bool       `boltholdIndex:"Blacklisted" json:"blacklisted"`
	BlacklistedAt   *time.Time `json:"blacklisted_at,omitempty"`
	SuppressionCode int        `json:"suppression_code"`
}

// FingerprintOf builds the dedup key for a (providerID, source) pair
func FingerprintOf(providerID, source string) string {
	return source + "::" + providerID
}
