package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/types"
)

// KnowledgeMap is a reusable incident-category reference. A ticket's title
// links to it by embedding the token "INC<id>". Titles are unique.
type KnowledgeMap struct {
	ID    types.KnowledgeMapID
	Title string
	Body  string
}

// Validate checks if the knowledge mapping is valid
func (k *KnowledgeMap) Validate() error {
	if k.Title == "" {
		return goerr.New("knowledge mapping title is required")
	}
	return nil
}

// SearchToken returns the identifier token this mapping is referenced by in
// ticket titles, e.g. "INC42".
func (k *KnowledgeMap) SearchToken() string {
	return KnowledgeTokenPrefix + k.ID.String()
}

// KnowledgeTokenPrefix is the literal substring that marks a knowledge
// mapping identifier inside a ticket title.
const KnowledgeTokenPrefix = "INC"

// Guidance is an advisory entry under a knowledge mapping. Titles are unique
// within their mapping. Deleting a mapping deletes its guidance entries.
type Guidance struct {
	ID             types.GuidanceID
	KnowledgeMapID types.KnowledgeMapID
	Title          string
	Body           string
}

// Validate checks if the guidance entry is valid
func (g *Guidance) Validate() error {
	if g.Title == "" {
		return goerr.New("guidance title is required")
	}
	if g.KnowledgeMapID == 0 {
		return goerr.New("guidance must belong to a knowledge mapping")
	}
	return nil
}
