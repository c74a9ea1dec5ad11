package dto

// MemberDoc is the member-directory document indexed into Meilisearch.
type MemberDoc struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	Occupation  string `json:"occupation"`
	Location    string `json:"location"`
	PassingYear int    `json:"passing_year"`
	PhotoURL    string `json:"photo_url"`
}
