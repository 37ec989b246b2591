package service

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"propertyhub/internal/apperr"
	"propertyhub/internal/models"
	"propertyhub/internal/store"
)

// maxRooms bounds rooms so the integer conversion cannot overflow
const maxRooms = math.MaxInt32

const (
	msgRequiredFields   = "Title, price, and location are required"
	msgInvalidPrice     = "Price must be a positive number"
	msgInvalidSize      = "Size must be a non-negative number"
	msgInvalidRooms     = "Rooms must be a non-negative number"
	msgInvalidStatus    = "Status must be one of: available, sold"
	msgInvalidType      = "Property type must be one of: apartment, house, villa, penthouse, commercial"
	msgEmptyTitle       = "Title cannot be empty"
	msgEmptyLocation    = "Location cannot be empty"
	msgInvalidTextField = "Title, location, description and image must be strings"
)

// isBlank mirrors a falsy check on a loosely typed JSON value
func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case float64:
		return x == 0 || math.IsNaN(x)
	case int:
		return x == 0
	case json.Number:
		return x == "" || x == "0"
	default:
		return false
	}
}

// parseNumber accepts JSON numbers, Go numeric values and numeric strings
func parseNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, !math.IsNaN(x) && !math.IsInf(x, 0)
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return 0, false
	}
}

// optionalString returns nil for null or empty values
func optionalString(v any) (*string, error) {
	if v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, apperr.Validation(msgInvalidTextField)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	return &s, nil
}

func requiredString(v any, emptyMsg string) (string, error) {
	s, err := optionalString(v)
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", apperr.Validation(emptyMsg)
	}
	return *s, nil
}

func parsePrice(v any) (float64, error) {
	price, ok := parseNumber(v)
	if !ok || price <= 0 {
		return 0, apperr.Validation(msgInvalidPrice)
	}
	return price, nil
}

// parseSize treats null and "" as absent
func parseSize(v any) (*float64, error) {
	if v == nil || v == "" {
		return nil, nil
	}
	size, ok := parseNumber(v)
	if !ok || size < 0 {
		return nil, apperr.Validation(msgInvalidSize)
	}
	return &size, nil
}

// parseRooms treats null and "" as absent and truncates fractional values
func parseRooms(v any) (*int, error) {
	if v == nil || v == "" {
		return nil, nil
	}
	f, ok := parseNumber(v)
	if !ok || f < 0 || f > maxRooms {
		return nil, apperr.Validation(msgInvalidRooms)
	}
	rooms := int(math.Trunc(f))
	return &rooms, nil
}

func parseStatus(v any, fallback bool) (models.PropertyStatus, error) {
	if fallback && isBlank(v) {
		return models.StatusAvailable, nil
	}
	s, _ := v.(string)
	status := models.PropertyStatus(strings.TrimSpace(s))
	if !status.Valid() {
		return "", apperr.Validation(msgInvalidStatus)
	}
	return status, nil
}

// parsePropertyType falls back to apartment for blank values
func parsePropertyType(v any) (models.PropertyType, error) {
	if isBlank(v) {
		return models.TypeApartment, nil
	}
	s, _ := v.(string)
	propertyType := models.PropertyType(strings.TrimSpace(s))
	if !propertyType.Valid() {
		return "", apperr.Validation(msgInvalidType)
	}
	return propertyType, nil
}

// newPropertyFromInput validates a create request and applies defaults
func newPropertyFromInput(in models.PropertyInput) (*models.Property, error) {
	if isBlank(in[models.FieldTitle]) || isBlank(in[models.FieldPrice]) || isBlank(in[models.FieldLocation]) {
		return nil, apperr.Validation(msgRequiredFields)
	}

	price, err := parsePrice(in[models.FieldPrice])
	if err != nil {
		return nil, err
	}
	title, err := requiredString(in[models.FieldTitle], msgRequiredFields)
	if err != nil {
		return nil, err
	}
	location, err := requiredString(in[models.FieldLocation], msgRequiredFields)
	if err != nil {
		return nil, err
	}
	description, err := optionalString(in[models.FieldDescription])
	if err != nil {
		return nil, err
	}
	status, err := parseStatus(in[models.FieldStatus], true)
	if err != nil {
		return nil, err
	}
	propertyType, err := parsePropertyType(in[models.FieldPropertyType])
	if err != nil {
		return nil, err
	}
	image, err := optionalString(in[models.FieldImage])
	if err != nil {
		return nil, err
	}
	size, err := parseSize(in[models.FieldSize])
	if err != nil {
		return nil, err
	}
	rooms, err := parseRooms(in[models.FieldRooms])
	if err != nil {
		return nil, err
	}

	p := &models.Property{
		Title:        title,
		Price:        price,
		Location:     location,
		Status:       status,
		PropertyType: propertyType,
		Image:        image,
		Size:         size,
		Rooms:        rooms,
	}
	if description != nil {
		p.Description = *description
	}
	return p, nil
}

// changesFromInput converts the supplied fields of an update request
func changesFromInput(in models.PropertyInput) (store.PropertyChanges, error) {
	var changes store.PropertyChanges

	if in.Has(models.FieldPrice) {
		price, err := parsePrice(in[models.FieldPrice])
		if err != nil {
			return changes, err
		}
		changes.Price = &price
	}
	if in.Has(models.FieldTitle) {
		title, err := requiredString(in[models.FieldTitle], msgEmptyTitle)
		if err != nil {
			return changes, err
		}
		changes.Title = &title
	}
	if in.Has(models.FieldLocation) {
		location, err := requiredString(in[models.FieldLocation], msgEmptyLocation)
		if err != nil {
			return changes, err
		}
		changes.Location = &location
	}
	if in.Has(models.FieldDescription) {
		description, err := optionalString(in[models.FieldDescription])
		if err != nil {
			return changes, err
		}
		empty := ""
		if description == nil {
			description = &empty
		}
		changes.Description = description
	}
	if in.Has(models.FieldStatus) {
		status, err := parseStatus(in[models.FieldStatus], false)
		if err != nil {
			return changes, err
		}
		changes.Status = &status
	}
	if in.Has(models.FieldPropertyType) {
		propertyType, err := parsePropertyType(in[models.FieldPropertyType])
		if err != nil {
			return changes, err
		}
		changes.PropertyType = &propertyType
	}
	if in.Has(models.FieldImage) {
		image, err := optionalString(in[models.FieldImage])
		if err != nil {
			return changes, err
		}
		changes.Image = store.Supplied(image)
	}
	if in.Has(models.FieldSize) {
		size, err := parseSize(in[models.FieldSize])
		if err != nil {
			return changes, err
		}
		changes.Size = store.Supplied(size)
	}
	if in.Has(models.FieldRooms) {
		rooms, err := parseRooms(in[models.FieldRooms])
		if err != nil {
			return changes, err
		}
		changes.Rooms = store.Supplied(rooms)
	}

	return changes, nil
}
