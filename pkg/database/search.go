package database

import (
	"context"
	"strings"

	"github.com/iziplay/vufind-api/pkg/isbn"
)

// SearchByISBN finds records matching an ISBN10 or ISBN13 value, in either
// form. Hyphenated input is accepted.
func SearchByISBN(ctx context.Context, value string, limit, offset int) ([]Record, int64, error) {
	var values []string
	isbn10, isbn13 := isbn.Variants(value)
	for _, v := range []string{isbn10, isbn13} {
		if v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return []Record{}, 0, nil
	}

	var identifiers []RecordIdentifier
	if err := DB.WithContext(ctx).
		Where("type IN ? AND value IN ?", []string{IdentifierISBN10, IdentifierISBN13}, values).
		Find(&identifiers).Error; err != nil {
		return nil, 0, err
	}

	if len(identifiers) == 0 {
		return []Record{}, 0, nil
	}

	// Collect unique record IDs
	idSet := make(map[string]struct{})
	for _, id := range identifiers {
		idSet[id.Record] = struct{}{}
	}
	recordIDs := make([]string, 0, len(idSet))
	for id := range idSet {
		recordIDs = append(recordIDs, id)
	}

	var total int64
	if err := DB.WithContext(ctx).Model(&Record{}).Where("id IN ?", recordIDs).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []Record
	if err := DB.WithContext(ctx).
		Preload("Identifiers").
		Where("id IN ?", recordIDs).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// SearchByText finds records matching the given title, author, and/or publisher filters (AND logic, case-insensitive).
func SearchByText(ctx context.Context, title, author, publisher string, limit, offset int) ([]Record, int64, error) {
	q := DB.WithContext(ctx).Model(&Record{})

	if t := strings.TrimSpace(title); t != "" {
		q = q.Where("title ILIKE ?", "%"+t+"%")
	}
	if a := strings.TrimSpace(author); a != "" {
		q = q.Where("array_to_string(authors, '|') ILIKE ?", "%"+a+"%")
	}
	if p := strings.TrimSpace(publisher); p != "" {
		q = q.Where("array_to_string(publishers, '|') ILIKE ?", "%"+p+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []Record
	if err := q.
		Preload("Identifiers").
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
