package service

import (
	"MentorLink/internal/service/announcement"
	"MentorLink/internal/service/assistant"
	"MentorLink/internal/service/auth"
	"MentorLink/internal/service/authoring"
	"MentorLink/internal/service/catalog"
	"MentorLink/internal/service/enrollment"
	"MentorLink/internal/service/identity"
)

// Collection bundles the application services for the HTTP layer.
type Collection struct {
	Auth          *auth.AuthService
	Identity      *identity.IdentityService
	Catalog       *catalog.CatalogService
	Enrollments   *enrollment.EnrollmentService
	Authoring     *authoring.AuthoringService
	Announcements *announcement.AnnouncementService
	Assistant     *assistant.AssistantService
}
