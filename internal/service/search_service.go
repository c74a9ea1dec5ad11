package service

import (
	"encoding/json"
	"html"
	"log"
	"strings"

	"alumnihub/internal/dto"
	"alumnihub/internal/model"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

const membersIndex = "members"

// MemberSearchService maintains the member directory index. All methods are
// no-ops when Meilisearch is not configured, mirroring how the realtime
// features degrade without Redis.
type MemberSearchService interface {
	IndexMember(user *model.User) error
	RemoveMember(id string) error
	Search(query string) ([]dto.MemberDoc, error)
}

type memberSearchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewMemberSearchService(client meilisearch.ServiceManager) MemberSearchService {
	s := &memberSearchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	if client != nil {
		s.initIndex()
	}
	return s
}

func (s *memberSearchService) initIndex() {
	filterableAttrs := []string{"passing_year"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	if _, err := s.client.Index(membersIndex).UpdateFilterableAttributes(&filterableInterface); err != nil {
		log.Printf("Failed to update members filterable attributes: %v", err)
	}

	sortableAttrs := []string{"passing_year"}
	if _, err := s.client.Index(membersIndex).UpdateSortableAttributes(&sortableAttrs); err != nil {
		log.Printf("Failed to update members sortable attributes: %v", err)
	}
}

func (s *memberSearchService) IndexMember(user *model.User) error {
	if s.client == nil {
		return nil
	}

	doc := s.toMemberDoc(user)
	_, err := s.client.Index(membersIndex).AddDocuments([]dto.MemberDoc{doc}, strPtr("id"))
	return err
}

// toMemberDoc builds the index document. Profile fields are user-supplied,
// so they are stripped of markup before leaving for the index.
func (s *memberSearchService) toMemberDoc(user *model.User) dto.MemberDoc {
	return dto.MemberDoc{
		ID:          user.ID.String(),
		Name:        s.cleanText(user.Name),
		Bio:         s.cleanText(stringOrEmpty(user.Bio)),
		Occupation:  s.cleanText(stringOrEmpty(user.Occupation)),
		Location:    s.cleanText(stringOrEmpty(user.Location)),
		PassingYear: user.PassingYear,
		PhotoURL:    stringOrEmpty(user.PhotoURL),
	}
}

func (s *memberSearchService) cleanText(content string) string {
	sanitized := s.sanitizer.Sanitize(content)
	cleanText := html.UnescapeString(sanitized)
	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *memberSearchService) RemoveMember(id string) error {
	if s.client == nil {
		return nil
	}

	_, err := s.client.Index(membersIndex).DeleteDocument(id)
	return err
}

func (s *memberSearchService) Search(query string) ([]dto.MemberDoc, error) {
	docs := []dto.MemberDoc{}
	if s.client == nil {
		return docs, nil
	}

	res, err := s.client.Index(membersIndex).Search(query, &meilisearch.SearchRequest{
		Limit: 20,
	})
	if err != nil {
		return nil, err
	}

	// Round-trip through JSON to decode untyped hits.
	raw, err := json.Marshal(res.Hits)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	return docs, nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string {
	return &s
}
