package models

// PropertyInput is the loosely typed body of a create or update request. Keys
// that are absent are "not supplied"; a JSON null is supplied-but-empty.
// Numbers may arrive as JSON numbers or numeric strings.
type PropertyInput map[string]any

const (
	FieldTitle        = "title"
	FieldPrice        = "price"
	FieldLocation     = "location"
	FieldDescription  = "description"
	FieldStatus       = "status"
	FieldPropertyType = "propertyType"
	FieldImage        = "image"
	FieldSize         = "size"
	FieldRooms        = "rooms"
)

// Has reports whether key was supplied
func (in PropertyInput) Has(key string) bool {
	_, ok := in[key]
	return ok
}
