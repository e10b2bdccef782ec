package domain

import (
	"crypto/sha256"
	"fmt"
)

// LinkType represents the kind of relationship between two hosts
type LinkType string

const (
	LinkTypePeer   LinkType = "peer"   // DST to DST
	LinkTypeUplink LinkType = "uplink" // ACC to DST
)

// Link is an undirected neighbor relationship between two hostnames
type Link struct {
	ID   string   `json:"id"`
	From string   `json:"from"`
	To   string   `json:"to"`
	Type LinkType `json:"type"`
}

// NewLink creates a new link
func NewLink(from, to string, linkType LinkType) *Link {
	link := &Link{
		From: from,
		To:   to,
		Type: linkType,
	}
	link.ID = link.GenerateID()
	return link
}

// GenerateID creates a deterministic ID for the link based on endpoints
func (l *Link) GenerateID() string {
	// Normalize endpoints for consistent ID
	from, to := l.From, l.To
	if from > to {
		from, to = to, from
	}

	key := fmt.Sprintf("%s-%s-%s", from, to, l.Type)
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", hash[:8])
}
