package models

import "time"

// FeedItem is the display-ready materialization of one post for one viewer.
// It is derived, never persisted, and rebuilt wholesale on every run.
type FeedItem struct {
	ID            uint64    `json:"id"`
	Author        string    `json:"author"`
	Owner         string    `json:"owner"`
	AuthorName    string    `json:"author_name"`
	AuthorAvatar  string    `json:"author_avatar,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	Text          string    `json:"text"`
	ImageRef      string    `json:"image_ref,omitempty"`
	Locked        bool      `json:"locked"`
	IsCollectible bool      `json:"is_collectible"`
	ForSale       bool      `json:"for_sale"`
	PriceETH      string    `json:"price_eth"`
	TipETH        string    `json:"tip_eth"`
}

// Snapshot is one completed materialization run. Published snapshots are
// immutable; a newer run replaces the whole value.
type Snapshot struct {
	Seq         uint64     `json:"seq"`
	Viewer      string     `json:"viewer,omitempty"`
	Items       []FeedItem `json:"items"`
	Following   []string   `json:"following,omitempty"`
	RefreshedAt time.Time  `json:"refreshed_at"`
}

// ResolveIdentitiesRequest defines the request body for resolving a batch of
// addresses to display identities.
type ResolveIdentitiesRequest struct {
	Addresses []string `json:"addresses" validate:"required,min=1,max=100,dive,eth_addr"`
}
