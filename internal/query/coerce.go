// Package query builds cp_task filters from operator parameters.
package query

import (
	"cptask-tools/internal/models"
	"strconv"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IDKind is the store type a company id is matched as
type IDKind int

const (
	IDInteger IDKind = iota + 1
	IDObjectID
	IDString
)

func (k IDKind) String() string {
	switch k {
	case IDInteger:
		return "integer"
	case IDObjectID:
		return "objectId"
	case IDString:
		return "string"
	}
	return "unknown"
}

// CompanyID is a company identifier coerced to its store type
type CompanyID struct {
	Kind IDKind
	Raw  string
	Int  int64
	OID  primitive.ObjectID
}

// Value returns the value to place in a filter
func (c CompanyID) Value() interface{} {
	switch c.Kind {
	case IDInteger:
		return c.Int
	case IDObjectID:
		return c.OID
	}
	return c.Raw
}

// CoerceCompanyID classifies s, checking in this order:
//  1. all decimal digits -> integer
//  2. exactly 24 characters that parse as an ObjectID -> ObjectID
//  3. anything else -> literal string
//
// A 24-digit string is therefore an integer. An all-digit string outside the
// int64 range keeps the integer kind and returns a validation error.
func CoerceCompanyID(s string) (CompanyID, error) {
	if isDigits(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return CompanyID{Kind: IDInteger, Raw: s},
				models.ValidationError("company id %s is outside the 64-bit integer range", s)
		}
		return CompanyID{Kind: IDInteger, Raw: s, Int: n}, nil
	}

	if utf8.RuneCountInString(s) == 24 {
		if oid, err := primitive.ObjectIDFromHex(s); err == nil {
			return CompanyID{Kind: IDObjectID, Raw: s, OID: oid}, nil
		}
	}

	return CompanyID{Kind: IDString, Raw: s}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
