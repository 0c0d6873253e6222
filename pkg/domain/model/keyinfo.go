package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/types"
)

// AutoExtractedTag marks key information that was inserted by the automated
// extraction path rather than entered by an analyst.
const AutoExtractedTag = "extracted key info"

// KeyInfo is an atomic piece of evidence (an address, identifier, etc.)
// attached to a ticket. Value is the dedup key: a ticket never carries two
// records with the same value, regardless of tag.
type KeyInfo struct {
	ID       types.KeyInfoID
	TicketID types.TicketID
	Value    string
	Tag      string
}

// Validate checks if the key information is valid
func (k *KeyInfo) Validate() error {
	if k.Value == "" {
		return goerr.New("key information value is required")
	}
	return nil
}
