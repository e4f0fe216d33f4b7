package models

// CompanyRecord represents a document of the company collection
type CompanyRecord struct {
	ID        interface{} `bson:"_id" json:"id"`
	ShortName *string     `bson:"short_name,omitempty" json:"shortName,omitempty"`
}

// MappingEntry is one company_id -> short_name pair of a mapping export.
// CompanyID is always the string form of the company identifier.
type MappingEntry struct {
	CompanyID string `json:"companyId"`
	ShortName string `json:"shortName"`
}

// JoinedRecord is a company id resolved against a mapping.
// ShortName is empty when the id was not found.
type JoinedRecord struct {
	CompanyID  string `json:"companyId"`
	ShortName  string `json:"shortName"`
	ProfileURL string `json:"profileUrl,omitempty"`
}
