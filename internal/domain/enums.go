package domain

type ProjectType string

const (
	ProjectWedding    ProjectType = "wedding"
	ProjectPortrait   ProjectType = "portrait"
	ProjectCommercial ProjectType = "commercial"
	ProjectEvent      ProjectType = "event"
	ProjectOther      ProjectType = "other"
)

// ValidProjectTypes is the canonical set of accepted project type strings.
var ValidProjectTypes = map[string]bool{
	"wedding": true, "portrait": true, "commercial": true,
	"event": true, "other": true,
}

type ProjectStatus string

const (
	ProjectDraftStatus ProjectStatus = "draft"
	ProjectConfirmed   ProjectStatus = "confirmed"
	ProjectArchived    ProjectStatus = "archived"
)

type EventType string

const (
	EventWedding    EventType = "wedding"
	EventEngagement EventType = "engagement"
	EventPortrait   EventType = "portrait"
	EventBirthday   EventType = "birthday"
	EventCorporate  EventType = "corporate"
	EventOther      EventType = "other"
)

// ValidEventTypes is the canonical set of accepted event type strings.
var ValidEventTypes = map[string]bool{
	"wedding": true, "engagement": true, "portrait": true,
	"birthday": true, "corporate": true, "other": true,
}

type CoordinatorRole string

const (
	RoleEventCoordinator      CoordinatorRole = "event"
	RoleProductionCoordinator CoordinatorRole = "production"
)

// ValidCoordinatorRoles is the canonical set of accepted coordinator role strings.
var ValidCoordinatorRoles = map[string]bool{
	"event": true, "production": true,
}
