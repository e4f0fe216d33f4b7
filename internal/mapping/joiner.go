package mapping

import "cptask-tools/internal/models"

// Resolver looks up a short name by company id
type Resolver interface {
	Lookup(id string) string
}

// JoinResult holds joined records in input order with resolution counts
type JoinResult struct {
	Records    []models.JoinedRecord
	Resolved   int
	Unresolved int
}

// Join resolves every id against index. Output has one record per input id,
// in input order; ids without a name keep an empty ShortName.
func Join(ids []string, index Resolver) JoinResult {
	result := JoinResult{Records: make([]models.JoinedRecord, len(ids))}
	for i, id := range ids {
		name := index.Lookup(id)
		result.Records[i] = models.JoinedRecord{CompanyID: id, ShortName: name}
		if name != "" {
			result.Resolved++
		} else {
			result.Unresolved++
		}
	}
	return result
}
