package schema

// Embedded entity kind names.
const (
	EntityKindPrebuiltRef = "PrebuiltEntityRef"
	EntityKindClosedList  = "ClosedListEntity"
	EntityKindRegex       = "RegexEntity"
)

// prebuiltEntities is the fixed set of entity extractors the service ships.
var prebuiltEntities = map[string]bool{
	"Age":             true,
	"Boolean":         true,
	"City":            true,
	"Color":           true,
	"Country":         true,
	"Date":            true,
	"DateTime":        true,
	"Duration":        true,
	"Email":           true,
	"Event":           true,
	"Language":        true,
	"Money":           true,
	"Number":          true,
	"Ordinal":         true,
	"Organization":    true,
	"PersonName":      true,
	"Percentage":      true,
	"PhoneNumber":     true,
	"PointOfInterest": true,
	"Speed":           true,
	"State":           true,
	"StreetAddress":   true,
	"Temperature":     true,
	"URL":             true,
	"Weight":          true,
	"ZipCode":         true,
}

// IsPrebuiltEntity reports whether name is one of the built-in entity kinds.
func IsPrebuiltEntity(name string) bool {
	return prebuiltEntities[name]
}

// IsEmbeddedEntityKind reports whether kind names an inline entity
// definition form.
func IsEmbeddedEntityKind(kind string) bool {
	return kind == EntityKindClosedList || kind == EntityKindRegex
}
