package validation

import "github.com/escotech/escotech-api/pkg/models"

// Per-route rule lists. Each mutation route declares exactly one of
// these; handlers call Run before touching persistence.

// ContactRules validates public contact form submissions.
var ContactRules = []Rule{
	Required("fullName", "Full name"),
	Between("fullName", "Full name", 2, 100),
	Required("email", "Email"),
	Email("email"),
	Required("phone", "Phone number"),
	Between("phone", "Phone number", 10, 20),
	Required("message", "Message"),
	Between("message", "Message", 10, 2000),
}

// LoginRules validates admin login payloads.
var LoginRules = []Rule{
	Required("email", "Email"),
	Email("email"),
	Required("password", "Password"),
}

// RegisterRules validates new admin registration payloads.
var RegisterRules = []Rule{
	Required("name", "Name"),
	Between("name", "Name", 2, 100),
	Required("email", "Email"),
	Email("email"),
	Required("password", "Password"),
	MinLen("password", "Password", 6),
}

// ProjectRules validates project create payloads. The image arrives as
// a multipart file and is checked by the handler before these run.
var ProjectRules = []Rule{
	Required("title", "Title"),
	MaxLen("title", "Title", 200),
	Required("description", "Description"),
	Required("category", "Category"),
	OneOf("category", "Category must be either residential or commercial",
		models.CategoryResidential, models.CategoryCommercial),
	Required("location", "Location"),
	Bool("featured", "Featured must be a boolean"),
}

// TeamMemberRules validates team member create payloads.
var TeamMemberRules = []Rule{
	Required("name", "Name"),
	MaxLen("name", "Name", 100),
	Required("role", "Role"),
	MaxLen("role", "Role", 100),
	Required("description", "Description"),
	MinInt("order", "Order must be a non-negative integer", 0),
	Bool("isCEO", "isCEO must be a boolean"),
}

// ServiceRules validates service create and full-update payloads.
var ServiceRules = []Rule{
	Required("title", "Title"),
	MaxLen("title", "Title", 200),
	Required("description", "Description"),
	StringArray("features", "Features must be an array", "Each feature must be a non-empty string"),
	Required("icon", "Icon"),
	MinInt("order", "Order must be a non-negative integer", 0),
}

// MessageStatusRules validates the read-flag toggle payload.
var MessageStatusRules = []Rule{
	Required("isRead", "isRead"),
	Bool("isRead", "isRead must be a boolean"),
}
